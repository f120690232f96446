package models

import (
	"time"

	"github.com/studiotrim/agenda-api/internal/money"
)

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name        string       `gorm:"size:100;not null" json:"name"`
	Description string       `gorm:"size:255" json:"description"`
	DurationMin int          `json:"duration_min"`
	PriceCents  money.Amount `json:"price_cents"`
	Active      bool         `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceLabel é o preço formatado para exibição ("R$ 50,00").
func (s Service) PriceLabel() string {
	return s.PriceCents.FormatBRL()
}
