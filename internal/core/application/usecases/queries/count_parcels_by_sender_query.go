package queries

import (
	"context"

	"postal/internal/pkg/guard"
)

var ErrCountParcelsBySenderQueryIsNotConstructed = errNotConstructed("CountParcelsBySenderQuery")

type CountParcelsBySenderQuery struct {
	senderID int

	guard guard.ConstructorGuard
}

func NewCountParcelsBySenderQuery(senderID int) (CountParcelsBySenderQuery, error) {
	if err := positiveID("senderId", senderID); err != nil {
		return CountParcelsBySenderQuery{}, err
	}
	return CountParcelsBySenderQuery{senderID: senderID, guard: guard.NewConstructorGuard()}, nil
}

func (q CountParcelsBySenderQuery) Validate() error {
	return q.guard.Validate(ErrCountParcelsBySenderQueryIsNotConstructed)
}

type CountParcelsBySenderQueryHandler struct {
	repos Repositories
}

func NewCountParcelsBySenderQueryHandler(repos Repositories) CountParcelsBySenderQueryHandler {
	return CountParcelsBySenderQueryHandler{repos: repos}
}

// Handle counts parcels on the parcel side. An unknown sender simply has none.
func (h CountParcelsBySenderQueryHandler) Handle(ctx context.Context, query CountParcelsBySenderQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	return h.repos.ParcelRepository().CountBySender(ctx, query.senderID)
}
