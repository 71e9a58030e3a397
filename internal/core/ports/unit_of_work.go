package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained from
// it operate inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if there is no active transaction.
	Commit(ctx context.Context) error

	// Rollback returns an error if there is no active transaction. Calling it after
	// Commit is safe and only reports that error.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	ClientRepository() ClientRepository
	OperatorRepository() OperatorRepository
	DeliveryPointRepository() DeliveryPointRepository
}
