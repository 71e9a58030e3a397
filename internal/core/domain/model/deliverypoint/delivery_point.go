// Package deliverypoint provides DeliveryPoint, reference data describing a place
// where parcels of a given channel can be handed over.
package deliverypoint

import (
	"errors"
	"fmt"
	"strings"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

var (
	ErrAddressIsRequired    = errs.NewValueIsRequiredError("address")
	ErrPostalCodeIsRequired = errs.NewValueIsRequiredError("postalCode")
	// ErrDeliveryPointIsNotConstructed is returned when using a zero-value DeliveryPoint.
	ErrDeliveryPointIsNotConstructed = errors.New("DeliveryPoint must be created via NewDeliveryPoint")
)

// DeliveryPoint is an office, parcel locker, address zone or taxi rank. It is not
// linked to individual parcels.
type DeliveryPoint struct {
	id           int
	channel      parcel.Channel
	address      string
	postalCode   string
	organization string
	guard        guard.ConstructorGuard
}

// NewDeliveryPoint validates and creates a delivery point. organization may be empty.
func NewDeliveryPoint(id int, channel parcel.Channel, address, postalCode, organization string) (*DeliveryPoint, error) {
	dp := &DeliveryPoint{
		organization: strings.TrimSpace(organization),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dp.setID(id),
		dp.setChannel(channel),
		dp.setAddress(address, postalCode),
	); err != nil {
		return nil, err
	}

	return dp, nil
}

func (d *DeliveryPoint) Validate() error {
	if d == nil {
		return ErrDeliveryPointIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryPointIsNotConstructed)
}

func (d *DeliveryPoint) ID() int                 { return d.id }
func (d *DeliveryPoint) Channel() parcel.Channel { return d.channel }
func (d *DeliveryPoint) Address() string         { return d.address }
func (d *DeliveryPoint) PostalCode() string      { return d.postalCode }
func (d *DeliveryPoint) Organization() string    { return d.organization }

func (d *DeliveryPoint) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	d.id = id
	return nil
}

func (d *DeliveryPoint) setChannel(channel parcel.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	d.channel = channel
	return nil
}

func (d *DeliveryPoint) setAddress(address, postalCode string) error {
	address = strings.TrimSpace(address)
	postalCode = strings.TrimSpace(postalCode)

	var err error
	if address == "" {
		err = errors.Join(err, ErrAddressIsRequired)
	}
	if postalCode == "" {
		err = errors.Join(err, ErrPostalCodeIsRequired)
	}
	if err != nil {
		return err
	}

	d.address = address
	d.postalCode = postalCode
	return nil
}
