package memory

import (
	"context"

	"postal/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork holds the store lock from Begin until Commit or Rollback. Rollback
// restores the tables captured by Begin.
type UnitOfWork struct {
	store  *Store
	active bool
	backup tables
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.backup = u.store.data.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return errNoActiveTransaction
	}

	u.active = false
	u.backup = tables{}
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return errNoActiveTransaction
	}

	u.store.data = u.backup
	u.active = false
	u.backup = tables{}
	u.store.mu.Unlock()
	return nil
}

// run executes fn against the tables, taking the lock unless the unit of work
// already holds it.
func (u *UnitOfWork) run(fn func(t *tables) error) error {
	if !u.active {
		u.store.mu.Lock()
		defer u.store.mu.Unlock()
	}
	return fn(&u.store.data)
}

func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &parcelRepository{uow: u}
}

func (u *UnitOfWork) ClientRepository() ports.ClientRepository {
	return &clientRepository{uow: u}
}

func (u *UnitOfWork) OperatorRepository() ports.OperatorRepository {
	return &operatorRepository{uow: u}
}

func (u *UnitOfWork) DeliveryPointRepository() ports.DeliveryPointRepository {
	return &deliveryPointRepository{uow: u}
}
