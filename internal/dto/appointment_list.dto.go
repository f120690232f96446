package dto

import (
	"time"

	"github.com/studiotrim/agenda-api/internal/money"
)

type AppointmentListDTO struct {
	ID          uint         `json:"id"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Status      string       `json:"status"`
	ClientName  string       `json:"client_name"`
	ServiceName string       `json:"service_name"`
	PriceCents  money.Amount `json:"price_cents"`
	PriceLabel  string       `json:"price_label"`
}
