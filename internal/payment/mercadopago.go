// Package payment gera links de pagamento (MercadoPago) para
// agendamentos.
package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appcfg "github.com/studiotrim/agenda-api/internal/config"
	"github.com/studiotrim/agenda-api/internal/models"
)

type Link struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
}

type Provider struct {
	prefs preference.Client
}

// New retorna nil quando não há token configurado.
func New(cfg *appcfg.Config) (*Provider, error) {
	if cfg.MercadoPagoToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: %w", err)
	}

	return &Provider{prefs: preference.NewClient(mpCfg)}, nil
}

// LinkFor cria uma preferência de pagamento em BRL para o agendamento,
// usando o preço capturado na reserva.
func (p *Provider) LinkFor(ctx context.Context, ap *models.Appointment) (*Link, error) {
	title := ap.ServiceName
	if title == "" {
		title = "Agendamento"
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      title,
				Quantity:   1,
				UnitPrice:  ap.PriceCents.Float(),
				CurrencyID: "BRL",
			},
		},
		ExternalReference: fmt.Sprintf("appointment-%d", ap.ID),
	}

	res, err := p.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar preferência: %w", err)
	}

	return &Link{
		PreferenceID: res.ID,
		URL:          res.InitPoint,
	}, nil
}
