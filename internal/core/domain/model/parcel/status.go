package parcel

import (
	"fmt"
	"strings"

	"postal/internal/pkg/errs"
)

// Status is the delivery state of a parcel.
//
// State transitions:
//
//	AwaitingShipment ──> AcceptedByOperator ──> InTransit ──> AtWarehouse ──> Delivered
//	        │                    │                  │              │
//	        └────────────────────┴──────────────────┴──────────────┴──────> Lost
//
// Each step moves to the immediate successor only. Delivered and Lost are terminal.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	AwaitingShipment
	AcceptedByOperator
	InTransit
	AtWarehouse
	Delivered
	Lost
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{AwaitingShipment, AcceptedByOperator, InTransit, AtWarehouse, Delivered, Lost}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "Unknown",
		AwaitingShipment:   "AwaitingShipment",
		AcceptedByOperator: "AcceptedByOperator",
		InTransit:          "InTransit",
		AtWarehouse:        "AtWarehouse",
		Delivered:          "Delivered",
		Lost:               "Lost",
	}
}

// ParseStatus converts a status name into a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a parcel status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s < AwaitingShipment || s > Lost {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further changes are accepted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Lost
}

// successor returns the next status of the forward chain.
func (s Status) successor() (Status, bool) {
	switch s {
	case AwaitingShipment:
		return AcceptedByOperator, true
	case AcceptedByOperator:
		return InTransit, true
	case InTransit:
		return AtWarehouse, true
	case AtWarehouse:
		return Delivered, true
	case StatusUnknown, Delivered, Lost:
	}
	return StatusUnknown, false
}

// ValidateTransition checks that next is reachable from s without performing it.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal, cannot change to %s", s, next),
		)
	}
	if next == Lost {
		return nil
	}
	if succ, ok := s.successor(); ok && succ == next {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("cannot change from %s to %s", s, next),
	)
}

// TransitionTo returns next if the transition is allowed.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.ValidateTransition(next); err != nil {
		return StatusUnknown, err
	}
	return next, nil
}
