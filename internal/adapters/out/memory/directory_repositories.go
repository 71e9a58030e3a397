package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strconv"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/operator"
	"postal/internal/pkg/errs"
)

func errAlreadyExists(name string, id int) error {
	return errs.NewValueIsInvalidErrorWithCause(name, errors.New(name+" "+strconv.Itoa(id)+" already exists"))
}

type clientRepository struct {
	uow *UnitOfWork
}

func (r *clientRepository) NextID(_ context.Context) (int, error) {
	var id int
	err := r.uow.run(func(t *tables) error {
		id = nextID(t.clients)
		return nil
	})
	return id, err
}

func (r *clientRepository) Add(_ context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		if _, ok := t.clients[aggregate.ID()]; ok {
			return errAlreadyExists("clientId", aggregate.ID())
		}
		t.clients[aggregate.ID()] = clientToRecord(aggregate)
		return nil
	})
}

func (r *clientRepository) Update(_ context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		if _, ok := t.clients[aggregate.ID()]; !ok {
			return errs.NewObjectNotFoundError("clientId", aggregate.ID())
		}
		t.clients[aggregate.ID()] = clientToRecord(aggregate)
		return nil
	})
}

// GetForUpdate needs no row lock: a unit of work already holds the store exclusively.
func (r *clientRepository) GetForUpdate(ctx context.Context, id int) (*client.Client, error) {
	return r.Get(ctx, id)
}

func (r *clientRepository) Get(_ context.Context, id int) (*client.Client, error) {
	var c *client.Client
	err := r.uow.run(func(t *tables) error {
		rec, ok := t.clients[id]
		if !ok {
			return errs.NewObjectNotFoundError("clientId", id)
		}
		var err error
		c, err = rec.restore()
		return err
	})
	return c, err
}

func (r *clientRepository) Delete(_ context.Context, id int) error {
	return r.uow.run(func(t *tables) error {
		if _, ok := t.clients[id]; !ok {
			return errs.NewObjectNotFoundError("clientId", id)
		}
		delete(t.clients, id)
		return nil
	})
}

func (r *clientRepository) List(ctx context.Context) ([]*client.Client, error) {
	return r.Search(ctx, "")
}

func (r *clientRepository) Search(_ context.Context, query string) ([]*client.Client, error) {
	var out []*client.Client
	err := r.uow.run(func(t *tables) error {
		for _, id := range slices.Sorted(maps.Keys(t.clients)) {
			c, err := t.clients[id].restore()
			if err != nil {
				return err
			}
			if c.MatchesQuery(query) {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

type operatorRepository struct {
	uow *UnitOfWork
}

func (r *operatorRepository) NextID(_ context.Context) (int, error) {
	var id int
	err := r.uow.run(func(t *tables) error {
		id = nextID(t.operators)
		return nil
	})
	return id, err
}

func (r *operatorRepository) Add(_ context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		if _, ok := t.operators[aggregate.ID()]; ok {
			return errAlreadyExists("operatorId", aggregate.ID())
		}
		t.operators[aggregate.ID()] = operatorToRecord(aggregate)
		return nil
	})
}

func (r *operatorRepository) Update(_ context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		if _, ok := t.operators[aggregate.ID()]; !ok {
			return errs.NewObjectNotFoundError("operatorId", aggregate.ID())
		}
		t.operators[aggregate.ID()] = operatorToRecord(aggregate)
		return nil
	})
}

func (r *operatorRepository) GetForUpdate(ctx context.Context, id int) (*operator.Operator, error) {
	return r.Get(ctx, id)
}

func (r *operatorRepository) Get(_ context.Context, id int) (*operator.Operator, error) {
	var o *operator.Operator
	err := r.uow.run(func(t *tables) error {
		rec, ok := t.operators[id]
		if !ok {
			return errs.NewObjectNotFoundError("operatorId", id)
		}
		var err error
		o, err = rec.restore()
		return err
	})
	return o, err
}

func (r *operatorRepository) Delete(_ context.Context, id int) error {
	return r.uow.run(func(t *tables) error {
		if _, ok := t.operators[id]; !ok {
			return errs.NewObjectNotFoundError("operatorId", id)
		}
		delete(t.operators, id)
		return nil
	})
}

func (r *operatorRepository) List(_ context.Context) ([]*operator.Operator, error) {
	var out []*operator.Operator
	err := r.uow.run(func(t *tables) error {
		for _, id := range slices.Sorted(maps.Keys(t.operators)) {
			o, err := t.operators[id].restore()
			if err != nil {
				return err
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

type deliveryPointRepository struct {
	uow *UnitOfWork
}

func (r *deliveryPointRepository) NextID(_ context.Context) (int, error) {
	var id int
	err := r.uow.run(func(t *tables) error {
		id = nextID(t.points)
		return nil
	})
	return id, err
}

func (r *deliveryPointRepository) Add(_ context.Context, aggregate *deliverypoint.DeliveryPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		if _, ok := t.points[aggregate.ID()]; ok {
			return errAlreadyExists("deliveryPointId", aggregate.ID())
		}
		t.points[aggregate.ID()] = aggregate
		return nil
	})
}

func (r *deliveryPointRepository) Get(_ context.Context, id int) (*deliverypoint.DeliveryPoint, error) {
	var dp *deliverypoint.DeliveryPoint
	err := r.uow.run(func(t *tables) error {
		var ok bool
		if dp, ok = t.points[id]; !ok {
			return errs.NewObjectNotFoundError("deliveryPointId", id)
		}
		return nil
	})
	return dp, err
}

func (r *deliveryPointRepository) Delete(_ context.Context, id int) error {
	return r.uow.run(func(t *tables) error {
		if _, ok := t.points[id]; !ok {
			return errs.NewObjectNotFoundError("deliveryPointId", id)
		}
		delete(t.points, id)
		return nil
	})
}

func (r *deliveryPointRepository) List(_ context.Context) ([]*deliverypoint.DeliveryPoint, error) {
	var out []*deliverypoint.DeliveryPoint
	err := r.uow.run(func(t *tables) error {
		for _, id := range slices.Sorted(maps.Keys(t.points)) {
			out = append(out, t.points[id])
		}
		return nil
	})
	return out, err
}
