package commands

import (
	"context"

	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
)

// SimulateDelayCommandHandler persists the parcel only when a delay was injected.
type SimulateDelayCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.ParcelLifecycle
	publisher  ports.NotificationPublisher
}

func NewSimulateDelayCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.ParcelLifecycle,
	publisher ports.NotificationPublisher,
) SimulateDelayCommandHandler {
	return SimulateDelayCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

func (h SimulateDelayCommandHandler) Handle(ctx context.Context, cmd SimulateDelayCommand) (services.DelayOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return services.DelayOutcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.DelayOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, cmd.TrackingCode())
	if err != nil {
		return services.DelayOutcome{}, err
	}

	seen := len(p.Notifications())
	outcome, err := h.lifecycle.SimulateDelay(p)
	if err != nil {
		return services.DelayOutcome{}, err
	}
	if !outcome.HasDelay {
		return outcome, nil
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return services.DelayOutcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.DelayOutcome{}, err
	}

	h.publisher.Publish(ctx, p.TrackingCode(), p.NotificationsSince(seen))

	return outcome, nil
}
