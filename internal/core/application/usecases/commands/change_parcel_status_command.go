package commands

import (
	"errors"
	"strings"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
	"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
)

// ChangeParcelStatusCommand moves a parcel to a new status, optionally confirmed by
// an operator.
type ChangeParcelStatusCommand struct {
	trackingCode parcel.TrackingCode
	status       parcel.Status
	note         string
	operatorID   *int

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand validates the tracking code format, the target
// status and, when given, the operator id.
func NewChangeParcelStatusCommand(
	trackingCode string,
	status parcel.Status,
	note string,
	operatorID *int,
) (ChangeParcelStatusCommand, error) {
	code, codeErr := parcel.NewTrackingCode(trackingCode)

	var opErr error
	if operatorID != nil {
		opErr = positiveID("operatorId", *operatorID)
	}

	if err := errors.Join(codeErr, status.Validate(), opErr); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	cmd := ChangeParcelStatusCommand{
		trackingCode: code,
		status:       status,
		note:         strings.TrimSpace(note),
		guard:        guard.NewConstructorGuard(),
	}
	if operatorID != nil {
		id := *operatorID
		cmd.operatorID = &id
	}
	return cmd, nil
}

func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

func (c ChangeParcelStatusCommand) TrackingCode() parcel.TrackingCode { return c.trackingCode }
func (c ChangeParcelStatusCommand) Status() parcel.Status             { return c.status }
func (c ChangeParcelStatusCommand) Note() string                      { return c.note }
func (c ChangeParcelStatusCommand) OperatorID() *int                  { return c.operatorID }
