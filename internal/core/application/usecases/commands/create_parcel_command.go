package commands

import (
	"errors"
	"fmt"
	"math"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrWeightIsInvalid = errs.NewValueIsInvalidErrorWithCause("weight", errors.New("weight must be greater than 0"))
)

// CreateParcelParams are the raw inputs of a parcel creation request.
type CreateParcelParams struct {
	SenderID          int
	ReceiverID        int
	Type              parcel.Type
	Content           parcel.Content
	Weight            float64
	DeclaredValue     decimal.Decimal
	Courier           parcel.Courier
	Channel           parcel.Channel
	ReceiverCountry   string
	Insured           bool
	InsuredValue      decimal.Decimal
	Dangerous         bool
	WantsFreeDelivery bool
}

// CreateParcelCommand registers a new parcel from sender to receiver.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(CreateParcelParams{
//	    SenderID: 1, ReceiverID: 2,
//	    Type: parcel.Local, Content: parcel.Document, Weight: 2,
//	    DeclaredValue: decimal.NewFromInt(100),
//	    Courier: parcel.NovaPoshta, Channel: parcel.Office,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct {
	params CreateParcelParams

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand checks the shape of the request. Channel ceilings and the
// dangerous goods rule are enforced by the parcel aggregate.
func NewCreateParcelCommand(params CreateParcelParams) (CreateParcelCommand, error) {
	var weightErr error
	if params.Weight <= 0 || math.IsNaN(params.Weight) || math.IsInf(params.Weight, 0) {
		weightErr = ErrWeightIsInvalid
	}

	if err := errors.Join(
		positiveID("senderId", params.SenderID),
		positiveID("receiverId", params.ReceiverID),
		params.Type.Validate(),
		params.Content.Validate(),
		params.Courier.Validate(),
		params.Channel.Validate(),
		weightErr,
		nonNegative("declaredValue", params.DeclaredValue),
		nonNegative("insuredValue", params.InsuredValue),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) SenderID() int   { return c.params.SenderID }
func (c CreateParcelCommand) ReceiverID() int { return c.params.ReceiverID }

func (c CreateParcelCommand) request() services.CreateRequest {
	return services.CreateRequest{
		Type:              c.params.Type,
		Content:           c.params.Content,
		Weight:            c.params.Weight,
		DeclaredValue:     c.params.DeclaredValue,
		Courier:           c.params.Courier,
		Channel:           c.params.Channel,
		ReceiverCountry:   c.params.ReceiverCountry,
		Insured:           c.params.Insured,
		InsuredValue:      c.params.InsuredValue,
		Dangerous:         c.params.Dangerous,
		WantsFreeDelivery: c.params.WantsFreeDelivery,
	}
}

func positiveID(name string, id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsOutOfRangeError(name, v.String(), 0, nil)
	}
	return nil
}
