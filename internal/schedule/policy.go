package schedule

import "time"

// Política comercial da loja. Valores nomeados para não espalhar literais
// pelo algoritmo; os defaults são regra fixa do produto.
type Policy struct {
	// Passo da grade de horários exibida, em minutos.
	CadenceMin int

	// Pausa de almoço [LunchStart, LunchEnd), "HH:mm", igual para todos
	// os barbeiros.
	LunchStart string
	LunchEnd   string

	// Dia fixo de fechamento da loja, independente do expediente
	// configurado por barbeiro.
	ClosedWeekday time.Weekday
}

func DefaultPolicy() Policy {
	return Policy{
		CadenceMin:    15,
		LunchStart:    "14:30",
		LunchEnd:      "15:00",
		ClosedWeekday: time.Sunday,
	}
}
