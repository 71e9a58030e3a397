package services_test

import (
	"testing"
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC)

// scriptedRandom replays fixed draws. IntN returns the next int modulo n.
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

var _ kernel.RandomSource = (*scriptedRandom)(nil)

func newClient(t *testing.T, id, parcelCount int) *client.Client {
	t.Helper()
	c, err := client.RestoreClient(id, client.Contacts{
		FullName: "Client " + string(rune('A'+id)),
		Phone:    "+38050000000" + string(rune('0'+id%10)),
	}, client.Individual, parcelCount, nil, nil)
	require.NoError(t, err)
	return c
}

func trackingCode(t *testing.T, suffix int) parcel.TrackingCode {
	t.Helper()
	code, err := parcel.GenerateTrackingCode(now, suffix)
	require.NoError(t, err)
	return code
}

type parcelOption func(*parcel.Spec)

func newParcel(t *testing.T, opts ...parcelOption) *parcel.Parcel {
	t.Helper()
	spec := parcel.Spec{
		TrackingCode:  trackingCode(t, 1234),
		SenderID:      1,
		ReceiverID:    2,
		Type:          parcel.Local,
		Content:       parcel.Document,
		Weight:        2,
		DeclaredValue: decimal.NewFromInt(100),
		Courier:       parcel.Ukrposhta,
		Channel:       parcel.Office,
		EstimatedDays: 3,
	}
	for _, opt := range opts {
		opt(&spec)
	}
	p, err := parcel.NewParcel(spec, now)
	require.NoError(t, err)
	return p
}
