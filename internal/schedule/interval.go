package schedule

import "time"

// Intervalo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps é o único teste de sobreposição do domínio: [a,b) e [c,d)
// conflitam sse a < d && c < b. Agendamentos, bloqueios e a checagem de
// almoço no caminho de escrita usam todos esta função.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
