package ports

import (
	"context"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/operator"
)

// ClientRepository persists clients. Identifiers are sequential: NextID returns
// one more than the highest stored id.
type ClientRepository interface {
	NextID(ctx context.Context) (int, error)
	Add(ctx context.Context, aggregate *client.Client) error
	Update(ctx context.Context, aggregate *client.Client) error
	Get(ctx context.Context, id int) (*client.Client, error)
	// GetForUpdate is Get that keeps the row locked until the unit of work ends.
	GetForUpdate(ctx context.Context, id int) (*client.Client, error)
	Delete(ctx context.Context, id int) error
	// List returns clients ordered by id.
	List(ctx context.Context) ([]*client.Client, error)
	// Search applies client.Client.MatchesQuery semantics.
	Search(ctx context.Context, query string) ([]*client.Client, error)
}

type OperatorRepository interface {
	NextID(ctx context.Context) (int, error)
	Add(ctx context.Context, aggregate *operator.Operator) error
	Update(ctx context.Context, aggregate *operator.Operator) error
	Get(ctx context.Context, id int) (*operator.Operator, error)
	GetForUpdate(ctx context.Context, id int) (*operator.Operator, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*operator.Operator, error)
}

type DeliveryPointRepository interface {
	NextID(ctx context.Context) (int, error)
	Add(ctx context.Context, aggregate *deliverypoint.DeliveryPoint) error
	Get(ctx context.Context, id int) (*deliverypoint.DeliveryPoint, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*deliverypoint.DeliveryPoint, error)
}
