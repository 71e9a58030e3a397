// Package operator provides the Operator aggregate: a postal clerk who confirms
// parcels and whose processed-parcel counter feeds the statistics.
package operator

import (
	"errors"
	"fmt"
	"strings"

	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

// DefaultEfficiency is assigned to newly registered operators. It is not
// recomputed by any operation.
const DefaultEfficiency = 100.0

var (
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrOperatorIsNotConstructed is returned when using a zero-value Operator.
	ErrOperatorIsNotConstructed = errors.New("Operator must be created via NewOperator or RestoreOperator")
)

// Operator represents a clerk able to confirm high-value parcels.
type Operator struct {
	id         int
	name       string
	processed  int
	efficiency float64
	guard      guard.ConstructorGuard
}

// NewOperator registers an operator with no processed parcels.
func NewOperator(id int, name string) (*Operator, error) {
	return RestoreOperator(id, name, 0, DefaultEfficiency)
}

// RestoreOperator rebuilds an Operator from persisted state.
func RestoreOperator(id int, name string, processed int, efficiency float64) (*Operator, error) {
	o := &Operator{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		o.setProcessed(processed),
		o.setEfficiency(efficiency),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Operator) Validate() error {
	if o == nil {
		return ErrOperatorIsNotConstructed
	}
	return o.guard.Validate(ErrOperatorIsNotConstructed)
}

func (o *Operator) ID() int             { return o.id }
func (o *Operator) Name() string        { return o.name }
func (o *Operator) Processed() int      { return o.processed }
func (o *Operator) Efficiency() float64 { return o.efficiency }

// IncrementProcessed credits the operator with exactly one handled parcel.
func (o *Operator) IncrementProcessed() {
	o.processed++
}

func (o *Operator) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Operator) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	o.name = name
	return nil
}

func (o *Operator) setProcessed(processed int) error {
	if processed < 0 {
		return errs.NewValueIsOutOfRangeError("processed", processed, 0, nil)
	}
	o.processed = processed
	return nil
}

func (o *Operator) setEfficiency(efficiency float64) error {
	if efficiency < 0 || efficiency > 100 {
		return errs.NewValueIsOutOfRangeError("efficiency", efficiency, 0, 100)
	}
	o.efficiency = efficiency
	return nil
}
