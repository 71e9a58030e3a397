package commands

import (
	"errors"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrSimulateDelayCommandIsNotConstructed = errors.New(
	"SimulateDelayCommand must be created via NewSimulateDelayCommand constructor",
)

// SimulateDelayCommand rolls the dice for a random delivery delay on one parcel.
type SimulateDelayCommand struct {
	trackingCode parcel.TrackingCode

	guard guard.ConstructorGuard
}

func NewSimulateDelayCommand(trackingCode string) (SimulateDelayCommand, error) {
	code, err := parcel.NewTrackingCode(trackingCode)
	if err != nil {
		return SimulateDelayCommand{}, err
	}
	return SimulateDelayCommand{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (c SimulateDelayCommand) Validate() error {
	return c.guard.Validate(ErrSimulateDelayCommandIsNotConstructed)
}

func (c SimulateDelayCommand) TrackingCode() parcel.TrackingCode { return c.trackingCode }
