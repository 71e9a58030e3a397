package queries

import (
	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errNotConstructed("GetParcelQuery")

// GetParcelQuery looks a parcel up by tracking code, including its full history
// and notification log.
type GetParcelQuery struct {
	trackingCode parcel.TrackingCode

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(trackingCode string) (GetParcelQuery, error) {
	code, err := parcel.NewTrackingCode(trackingCode)
	if err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) TrackingCode() parcel.TrackingCode { return q.trackingCode }
