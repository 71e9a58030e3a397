package queries

import (
	"context"

	"postal/internal/core/domain/model/parcel"
)

type SearchParcelsQueryHandler struct {
	repos Repositories
}

func NewSearchParcelsQueryHandler(repos Repositories) SearchParcelsQueryHandler {
	return SearchParcelsQueryHandler{repos: repos}
}

// Handle returns the matching parcels ordered by creation time.
func (h SearchParcelsQueryHandler) Handle(ctx context.Context, query SearchParcelsQuery) ([]*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := parcel.Filter{
		Query:  query.text,
		Status: query.status,
		Date:   query.date,
	}

	if query.text != "" {
		clients, err := h.repos.ClientRepository().Search(ctx, query.text)
		if err != nil {
			return nil, err
		}
		filter.MatchingClients = make(map[int]struct{}, len(clients))
		for _, c := range clients {
			filter.MatchingClients[c.ID()] = struct{}{}
		}
	}

	all, err := h.repos.ParcelRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*parcel.Parcel, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
