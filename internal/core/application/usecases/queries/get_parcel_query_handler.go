package queries

import (
	"context"

	"postal/internal/core/domain/model/parcel"
)

type GetParcelQueryHandler struct {
	repos Repositories
}

func NewGetParcelQueryHandler(repos Repositories) GetParcelQueryHandler {
	return GetParcelQueryHandler{repos: repos}
}

// Handle returns errs.ObjectNotFoundError for unknown tracking codes.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repos.ParcelRepository().Get(ctx, query.TrackingCode())
}
