package commands

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
)

// CreateParcelResult is returned by CreateParcelCommandHandler.
type CreateParcelResult struct {
	Parcel *parcel.Parcel
	// FreeDeliveryDenied reports a free delivery request the sender was not eligible for.
	FreeDeliveryDenied bool
}

// CreateParcelCommandHandler resolves sender and receiver, generates a unique
// tracking code, creates the parcel and applies the returned client instructions
// in the same transaction. Notifications are published after commit.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.ParcelLifecycle
	codes      services.TrackingCodeGenerator
	clock      kernel.Clock
	publisher  ports.NotificationPublisher
}

func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.ParcelLifecycle,
	codes services.TrackingCodeGenerator,
	clock kernel.Clock,
	publisher ports.NotificationPublisher,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		codes:      codes,
		clock:      clock,
		publisher:  publisher,
	}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (CreateParcelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateParcelResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateParcelResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clientRepo := uow.ClientRepository()
	parcelRepo := uow.ParcelRepository()

	sender, err := clientRepo.GetForUpdate(ctx, cmd.SenderID())
	if err != nil {
		return CreateParcelResult{}, err
	}
	receiver, err := clientRepo.Get(ctx, cmd.ReceiverID())
	if err != nil {
		return CreateParcelResult{}, err
	}

	code, err := h.codes.Next(ctx, parcelRepo.Exists)
	if err != nil {
		return CreateParcelResult{}, err
	}

	outcome, err := h.lifecycle.Create(sender, receiver, code, cmd.request())
	if err != nil {
		return CreateParcelResult{}, err
	}

	if err = parcelRepo.Add(ctx, outcome.Parcel); err != nil {
		return CreateParcelResult{}, err
	}

	if err = h.apply(outcome.Instructions, sender); err != nil {
		return CreateParcelResult{}, err
	}
	if err = clientRepo.Update(ctx, sender); err != nil {
		return CreateParcelResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateParcelResult{}, err
	}

	h.publisher.Publish(ctx, outcome.Parcel.TrackingCode(), outcome.Parcel.Notifications())

	return CreateParcelResult{
		Parcel:             outcome.Parcel,
		FreeDeliveryDenied: outcome.FreeDeliveryDenied,
	}, nil
}

func (h CreateParcelCommandHandler) apply(instructions []services.Instruction, sender *client.Client) error {
	for _, in := range instructions {
		if in.ClientID != sender.ID() {
			return fmt.Errorf("instruction %s targets client %d, expected sender %d", in.Kind, in.ClientID, sender.ID())
		}
		switch in.Kind {
		case services.RecordSenderParcel:
			sender.RecordParcel()
		case services.ConsumeFreeDelivery:
			if err := sender.UseFreeDelivery(h.clock.Now()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown instruction %s", in.Kind)
		}
	}
	return nil
}
