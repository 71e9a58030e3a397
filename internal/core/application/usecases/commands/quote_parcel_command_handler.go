package commands

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/services"
)

// QuoteParcelCommandHandler computes the price breakdown and, when the discount
// ends up applied, records its use on the sender.
type QuoteParcelCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.Pricing
	clock      kernel.Clock
}

func NewQuoteParcelCommandHandler(uowFactory UoWFactory, pricing services.Pricing, clock kernel.Clock) QuoteParcelCommandHandler {
	return QuoteParcelCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		clock:      clock,
	}
}

func (h QuoteParcelCommandHandler) Handle(ctx context.Context, cmd QuoteParcelCommand) (services.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return services.Quote{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Quote{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clientRepo := uow.ClientRepository()

	p, err := uow.ParcelRepository().Get(ctx, cmd.TrackingCode())
	if err != nil {
		return services.Quote{}, err
	}
	sender, err := clientRepo.GetForUpdate(ctx, p.SenderID())
	if err != nil {
		return services.Quote{}, err
	}

	quote := h.pricing.Quote(p, sender, cmd.UseDiscount())
	if !quote.DiscountApplied {
		return quote, nil
	}

	if err = sender.UseDiscount(h.clock.Now()); err != nil {
		return services.Quote{}, err
	}
	if err = clientRepo.Update(ctx, sender); err != nil {
		return services.Quote{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Quote{}, err
	}

	return quote, nil
}
