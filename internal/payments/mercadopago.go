package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

// DepositService cria a preferência de pagamento do sinal quando a
// barbearia exige depósito para confirmar o agendamento.
type DepositService struct {
	prefs preference.Client
}

// NewDepositService retorna nil quando não há token configurado; nesse
// caso a reserva segue sem cobrança de sinal.
func NewDepositService(accessToken string) (*DepositService, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &DepositService{
		prefs: preference.NewClient(cfg),
	}, nil
}

// CreateDepositPreference monta o checkout do sinal e devolve o link de
// pagamento. O agendamento já existe; o código público amarra o pagamento
// à reserva.
func (s *DepositService) CreateDepositPreference(
	ctx context.Context,
	shop *models.Barbershop,
	svc *models.Service,
	ap *models.Appointment,
) (string, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       fmt.Sprintf("Sinal - %s (%s)", svc.Name, shop.Name),
				Description: fmt.Sprintf("Reserva %s", ap.StartTime.Format("02/01/2006 15:04")),
				Quantity:    1,
				UnitPrice:   shop.DepositAmount,
				CurrencyID:  "BRL",
			},
		},
		ExternalReference: ap.PublicCode,
	}

	resp, err := s.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resp.InitPoint, nil
}
