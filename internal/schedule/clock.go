package schedule

import "time"

// Clock abstrai o "agora" para que testes fixem o dia corrente.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

func NewLocationClock(loc *time.Location) Clock {
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}
