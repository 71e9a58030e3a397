// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: constructor validation, a transaction
// scoped by a unit of work, domain logic, persistence and, after commit, the
// outbound side effects.
package commands

import (
	"context"

	"postal/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	OperatorRepoFactory interface {
		OperatorRepository() ports.OperatorRepository
	}

	DeliveryPointRepoFactory interface {
		DeliveryPointRepository() ports.DeliveryPointRepository
	}

	// UoW spans parcels and the directories they touch. Used by the parcel
	// lifecycle commands.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcels := uow.ParcelRepository()
	//   clients := uow.ClientRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		ClientRepoFactory
		OperatorRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// ClientUoW manages clients. Parcels are read to protect referenced clients.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
		ParcelRepoFactory
	}

	ClientUoWFactory interface {
		Create() ClientUoW
	}

	OperatorUoW interface {
		TxManager
		OperatorRepoFactory
	}

	OperatorUoWFactory interface {
		Create() OperatorUoW
	}

	DeliveryPointUoW interface {
		TxManager
		DeliveryPointRepoFactory
	}

	DeliveryPointUoWFactory interface {
		Create() DeliveryPointUoW
	}
)
