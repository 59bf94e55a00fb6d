package models

import "time"

// Uma linha por (barbeiro, dia da semana). Ausência = dia sem expediente.
// A pausa de almoço é política fixa da loja (ver internal/schedule), não
// configuração por barbeiro.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_barber_weekday,unique" json:"barber_id"`

	Weekday int `gorm:"index:idx_barber_weekday,unique" json:"weekday"`

	StartTime string `json:"start_time"` // "HH:mm"
	EndTime   string `json:"end_time"`   // "HH:mm"
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
