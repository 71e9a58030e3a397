// Package ports defines the contracts between the postal core and its adapters:
// repositories for every aggregate, the unit of work that scopes them to one
// transaction, and the outbound notification, session and authentication ports.
package ports

import (
	"context"

	"postal/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates, including
// their status history and notification log.
type ParcelRepository interface {
	// Add persists a new parcel. The tracking code must not exist yet.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists status, estimate and the newly appended history and notifications.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns errs.ObjectNotFoundError when the code is unknown.
	Get(ctx context.Context, code parcel.TrackingCode) (*parcel.Parcel, error)

	Exists(ctx context.Context, code parcel.TrackingCode) (bool, error)

	// List returns every parcel ordered by creation time, oldest first.
	List(ctx context.Context) ([]*parcel.Parcel, error)

	// CountBySender returns the number of parcels sent by a client. The client side
	// calls this; parcels never query clients.
	CountBySender(ctx context.Context, clientID int) (int, error)

	// ReferencesClient reports whether any parcel has the client as sender or receiver.
	ReferencesClient(ctx context.Context, clientID int) (bool, error)
}
