package timezone

import "time"

// Fuso padrão para barbearias que nunca configuraram o próprio.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve um nome IANA. Vazio ou inválido cai no fuso padrão;
// LoadLocation("") devolveria UTC sem erro, por isso o guard explícito.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return NowIn(DefaultTimezone)
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
