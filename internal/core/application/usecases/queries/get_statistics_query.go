package queries

import (
	"context"
	"errors"
	"time"

	"postal/internal/core/domain/services"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

var ErrGetStatisticsQueryIsNotConstructed = errNotConstructed("GetStatisticsQuery")

// GetStatisticsQuery covers parcels created within [from, to]. Either bound may
// be nil.
type GetStatisticsQuery struct {
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

func NewGetStatisticsQuery(from, to *time.Time) (GetStatisticsQuery, error) {
	if from != nil && to != nil && to.Before(*from) {
		return GetStatisticsQuery{}, errs.NewValueIsInvalidErrorWithCause("period", errors.New("to is before from"))
	}
	q := GetStatisticsQuery{guard: guard.NewConstructorGuard()}
	if from != nil {
		f := *from
		q.from = &f
	}
	if to != nil {
		t := *to
		q.to = &t
	}
	return q, nil
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

type GetStatisticsQueryHandler struct {
	repos Repositories
}

func NewGetStatisticsQueryHandler(repos Repositories) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{repos: repos}
}

func (h GetStatisticsQueryHandler) Handle(ctx context.Context, query GetStatisticsQuery) (services.Statistics, error) {
	if err := query.Validate(); err != nil {
		return services.Statistics{}, err
	}

	parcels, err := h.repos.ParcelRepository().List(ctx)
	if err != nil {
		return services.Statistics{}, err
	}
	operators, err := h.repos.OperatorRepository().List(ctx)
	if err != nil {
		return services.Statistics{}, err
	}

	return services.ComputeStatistics(parcels, operators, query.from, query.to), nil
}
