// Package queries contains read operations for retrieving system state.
// Query handlers read through repositories outside of any transaction and return
// detached copies of aggregates or read models built from them.
package queries

import (
	"errors"
	"fmt"

	"postal/internal/core/ports"
	"postal/internal/pkg/errs"
)

// Repositories gives read access to every aggregate. A unit of work that was never
// begun satisfies it.
type Repositories interface {
	ParcelRepository() ports.ParcelRepository
	ClientRepository() ports.ClientRepository
	OperatorRepository() ports.OperatorRepository
	DeliveryPointRepository() ports.DeliveryPointRepository
}

func positiveID(name string, id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func errNotConstructed(name string) error {
	return errors.New(name + " must be created via New" + name + " constructor")
}
