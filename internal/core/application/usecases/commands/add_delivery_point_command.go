package commands

import (
	"errors"
	"strings"

	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrAddDeliveryPointCommandIsNotConstructed = errors.New(
	"AddDeliveryPointCommand must be created via NewAddDeliveryPointCommand constructor",
)

// AddDeliveryPointCommand registers a hand-over location for a delivery channel.
type AddDeliveryPointCommand struct {
	channel      parcel.Channel
	address      string
	postalCode   string
	organization string

	guard guard.ConstructorGuard
}

func NewAddDeliveryPointCommand(channel parcel.Channel, address, postalCode, organization string) (AddDeliveryPointCommand, error) {
	cmd := AddDeliveryPointCommand{
		channel:      channel,
		address:      strings.TrimSpace(address),
		postalCode:   strings.TrimSpace(postalCode),
		organization: strings.TrimSpace(organization),
		guard:        guard.NewConstructorGuard(),
	}

	var err error
	if cmd.address == "" {
		err = errors.Join(err, deliverypoint.ErrAddressIsRequired)
	}
	if cmd.postalCode == "" {
		err = errors.Join(err, deliverypoint.ErrPostalCodeIsRequired)
	}
	if err = errors.Join(err, channel.Validate()); err != nil {
		return AddDeliveryPointCommand{}, err
	}

	return cmd, nil
}

func (c AddDeliveryPointCommand) Validate() error {
	return c.guard.Validate(ErrAddDeliveryPointCommandIsNotConstructed)
}

func (c AddDeliveryPointCommand) Channel() parcel.Channel { return c.channel }
func (c AddDeliveryPointCommand) Address() string         { return c.address }
func (c AddDeliveryPointCommand) PostalCode() string      { return c.postalCode }
func (c AddDeliveryPointCommand) Organization() string    { return c.organization }
