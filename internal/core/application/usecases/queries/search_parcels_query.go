package queries

import (
	"strings"
	"time"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrSearchParcelsQueryIsNotConstructed = errNotConstructed("SearchParcelsQuery")

// SearchParcelsQuery combines a free-text query with optional status and creation
// date filters. All criteria must hold.
//
// The free-text query matches a substring of the tracking code, or any parcel
// whose sender or receiver matches the client search for the same text.
//
// Example:
//
//	status := parcel.InTransit
//	query, err := NewSearchParcelsQuery("Shevchenko", &status, nil)
//	if err != nil {
//	    return err
//	}
//	parcels, err := handler.Handle(ctx, query)
type SearchParcelsQuery struct {
	text   string
	status *parcel.Status
	date   *time.Time

	guard guard.ConstructorGuard
}

func NewSearchParcelsQuery(text string, status *parcel.Status, date *time.Time) (SearchParcelsQuery, error) {
	q := SearchParcelsQuery{text: strings.TrimSpace(text), guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return SearchParcelsQuery{}, err
		}
		s := *status
		q.status = &s
	}
	if date != nil {
		d := *date
		q.date = &d
	}
	return q, nil
}

func (q SearchParcelsQuery) Validate() error {
	return q.guard.Validate(ErrSearchParcelsQueryIsNotConstructed)
}

func (q SearchParcelsQuery) Text() string { return q.text }
