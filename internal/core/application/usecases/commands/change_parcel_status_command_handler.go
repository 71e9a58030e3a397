package commands

import (
	"context"

	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
)

// ChangeParcelStatusCommandHandler applies a status change and credits the
// confirming operator in one transaction.
//
// Example:
//
//	operatorID := 3
//	cmd, _ := NewChangeParcelStatusCommand("202610191015001234", parcel.AcceptedByOperator, "checked", &operatorID)
//	p, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsRequired) {
//	    // high value parcel without operator
//	}
type ChangeParcelStatusCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.ParcelLifecycle
	publisher  ports.NotificationPublisher
}

func NewChangeParcelStatusCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.ParcelLifecycle,
	publisher ports.NotificationPublisher,
) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown parcel or operator.
func (h ChangeParcelStatusCommandHandler) Handle(ctx context.Context, cmd ChangeParcelStatusCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	operatorRepo := uow.OperatorRepository()

	p, err := parcelRepo.Get(ctx, cmd.TrackingCode())
	if err != nil {
		return nil, err
	}

	var op *operator.Operator
	if cmd.OperatorID() != nil {
		op, err = operatorRepo.GetForUpdate(ctx, *cmd.OperatorID())
		if err != nil {
			return nil, err
		}
	}

	seen := len(p.Notifications())
	outcome, err := h.lifecycle.ChangeStatus(p, cmd.Status(), cmd.Note(), op)
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if outcome.Credit != nil {
		op.IncrementProcessed()
		if err = operatorRepo.Update(ctx, op); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, p.TrackingCode(), p.NotificationsSince(seen))

	return p, nil
}
