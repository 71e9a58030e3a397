package parcel_test

import (
	"math"
	"testing"
	"time"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC)

func validSpec(t *testing.T) parcel.Spec {
	t.Helper()
	code, err := parcel.GenerateTrackingCode(createdAt, 1234)
	require.NoError(t, err)
	return parcel.Spec{
		TrackingCode:  code,
		SenderID:      1,
		ReceiverID:    2,
		Type:          parcel.Local,
		Content:       parcel.Document,
		Weight:        2,
		DeclaredValue: decimal.NewFromInt(100),
		Courier:       parcel.NovaPoshta,
		Channel:       parcel.Office,
		EstimatedDays: 3,
	}
}

func newParcel(t *testing.T, mutate func(*parcel.Spec)) *parcel.Parcel {
	t.Helper()
	spec := validSpec(t)
	if mutate != nil {
		mutate(&spec)
	}
	p, err := parcel.NewParcel(spec, createdAt)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("should create awaiting parcel with initial history and notification", func(t *testing.T) {
		p := newParcel(t, nil)

		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.AwaitingShipment, p.Status())
		assert.Equal(t, createdAt, p.CreatedAt())
		assert.Equal(t, parcel.HomeCountry, p.SenderCountry())
		assert.Equal(t, parcel.HomeCountry, p.ReceiverCountry())
		assert.Equal(t, 3, p.EstimatedDeliveryDays())

		history := p.History()
		require.Len(t, history, 1)
		assert.Equal(t, parcel.AwaitingShipment, history[0].Status)
		assert.Equal(t, createdAt, history[0].Timestamp)

		notifications := p.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, parcel.AwaitingShipment, notifications[0].Status)
		require.NoError(t, notifications[0].ID.Validate())
		assert.False(t, notifications[0].HasDelay())
	})

	t.Run("weight ceiling is inclusive", func(t *testing.T) {
		p := newParcel(t, func(s *parcel.Spec) {
			s.Channel = parcel.Parcelbox
			s.Weight = 30.0
		})
		assert.InDelta(t, 30.0, p.Weight(), 1e-9)

		spec := validSpec(t)
		spec.Channel = parcel.Parcelbox
		spec.Weight = 30.01
		_, err := parcel.NewParcel(spec, createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	invalid := []struct {
		name    string
		mutate  func(*parcel.Spec)
		wantErr error
	}{
		{"zero weight", func(s *parcel.Spec) { s.Weight = 0 }, errs.ErrValueIsOutOfRange},
		{"NaN weight", func(s *parcel.Spec) { s.Weight = math.NaN() }, errs.ErrValueIsOutOfRange},
		{"infinite weight", func(s *parcel.Spec) { s.Weight = math.Inf(1) }, errs.ErrValueIsOutOfRange},
		{"taxi overweight", func(s *parcel.Spec) { s.Channel = parcel.Taxi; s.Weight = 21 }, errs.ErrValueIsOutOfRange},
		{"negative declared value", func(s *parcel.Spec) { s.DeclaredValue = decimal.NewFromInt(-1) }, errs.ErrValueIsOutOfRange},
		{"negative insured value", func(s *parcel.Spec) { s.InsuredValue = decimal.NewFromInt(-1) }, errs.ErrValueIsOutOfRange},
		{"missing sender", func(s *parcel.Spec) { s.SenderID = 0 }, errs.ErrValueIsInvalid},
		{"unknown channel", func(s *parcel.Spec) { s.Channel = parcel.ChannelUnknown }, errs.ErrValueIsInvalid},
		{"missing tracking code", func(s *parcel.Spec) { s.TrackingCode = parcel.TrackingCode{} }, parcel.ErrTrackingCodeIsNotConstructed},
		{"dangerous international", func(s *parcel.Spec) {
			s.Type = parcel.International
			s.Dangerous = true
		}, parcel.ErrDangerousInternational},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec(t)
			tt.mutate(&spec)

			p, err := parcel.NewParcel(spec, createdAt)

			assert.Nil(t, p)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("dangerous local is allowed", func(t *testing.T) {
		p := newParcel(t, func(s *parcel.Spec) { s.Dangerous = true })
		assert.Equal(t, parcel.Local, p.Type())
	})
}

func TestParcel_ChangeStatus(t *testing.T) {
	later := createdAt.Add(time.Hour)

	t.Run("appends history and notification", func(t *testing.T) {
		p := newParcel(t, nil)

		require.NoError(t, p.ChangeStatus(parcel.AcceptedByOperator, " checked ", nil, later))

		assert.Equal(t, parcel.AcceptedByOperator, p.Status())
		history := p.History()
		require.Len(t, history, 2)
		assert.Equal(t, parcel.StatusChange{Status: parcel.AcceptedByOperator, Timestamp: later, Note: "checked"}, history[1])
		notifications := p.Notifications()
		require.Len(t, notifications, 2)
		assert.Equal(t, "checked", notifications[1].Note)
	})

	t.Run("high value acceptance requires operator", func(t *testing.T) {
		p := newParcel(t, func(s *parcel.Spec) { s.DeclaredValue = decimal.NewFromInt(6000) })
		require.True(t, p.RequiresOperatorConfirmation())

		err := p.ChangeStatus(parcel.AcceptedByOperator, "", nil, later)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "operatorId")
		assert.Equal(t, parcel.AwaitingShipment, p.Status())
		assert.Len(t, p.History(), 1, "a rejected change appends nothing")

		operatorID := 7
		require.NoError(t, p.ChangeStatus(parcel.AcceptedByOperator, "", &operatorID, later))
		assert.Equal(t, parcel.AcceptedByOperator, p.Status())
	})

	t.Run("threshold itself needs no operator", func(t *testing.T) {
		p := newParcel(t, func(s *parcel.Spec) { s.DeclaredValue = decimal.NewFromInt(5000) })
		assert.False(t, p.RequiresOperatorConfirmation())
		require.NoError(t, p.ChangeStatus(parcel.AcceptedByOperator, "", nil, later))
	})

	t.Run("terminal status rejects further changes", func(t *testing.T) {
		p := newParcel(t, nil)
		require.NoError(t, p.ChangeStatus(parcel.Lost, "", nil, later))

		err := p.ChangeStatus(parcel.AcceptedByOperator, "", nil, later)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.Lost, p.Status())
	})

	t.Run("full forward chain", func(t *testing.T) {
		p := newParcel(t, nil)
		for _, s := range []parcel.Status{parcel.AcceptedByOperator, parcel.InTransit, parcel.AtWarehouse, parcel.Delivered} {
			require.NoError(t, p.ChangeStatus(s, "", nil, later))
		}
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.Len(t, p.History(), 5)
	})
}

func TestParcel_ApplyDelay(t *testing.T) {
	p := newParcel(t, nil)
	before := len(p.Notifications())

	require.NoError(t, p.ApplyDelay(parcel.BadWeather, 4, createdAt))

	assert.Equal(t, 7, p.EstimatedDeliveryDays())
	added := p.NotificationsSince(before)
	require.Len(t, added, 1)
	assert.True(t, added[0].HasDelay())
	assert.Equal(t, parcel.BadWeather, *added[0].DelayReason)
	assert.Equal(t, 4, *added[0].DelayDays)
	assert.Equal(t, parcel.AwaitingShipment, added[0].Status)

	require.ErrorIs(t, p.ApplyDelay(parcel.BadWeather, 0, createdAt), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, p.ApplyDelay(parcel.DelayReasonUnknown, 2, createdAt), errs.ErrValueIsInvalid)
	assert.Equal(t, 7, p.EstimatedDeliveryDays())
}

func TestParcel_NotificationsAreCopies(t *testing.T) {
	p := newParcel(t, nil)
	require.NoError(t, p.ApplyDelay(parcel.Holiday, 2, createdAt))

	notifications := p.Notifications()
	*notifications[1].DelayDays = 99

	assert.Equal(t, 2, *p.Notifications()[1].DelayDays)
}

func TestRestoreParcel(t *testing.T) {
	original := newParcel(t, func(s *parcel.Spec) {
		s.Type = parcel.International
		s.ReceiverCountry = "Poland"
		s.Insured = true
		s.InsuredValue = decimal.NewFromInt(1000)
		s.Priority = true
	})
	require.NoError(t, original.ChangeStatus(parcel.AcceptedByOperator, "ok", nil, createdAt))

	restored, err := parcel.RestoreParcel(original.State())

	require.NoError(t, err)
	assert.Equal(t, original.Status(), restored.Status())
	assert.Equal(t, "Poland", restored.ReceiverCountry())
	assert.Equal(t, original.History(), restored.History())
	assert.Equal(t, original.Notifications(), restored.Notifications())
	assert.True(t, restored.PriorityProcessing())
	assert.Equal(t, original.State(), restored.State())

	_, err = parcel.RestoreParcel(parcel.State{})
	require.Error(t, err)
}

func TestFilter_Matches(t *testing.T) {
	p := newParcel(t, nil)
	inTransit := parcel.InTransit
	awaiting := parcel.AwaitingShipment
	sameDay := time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC)
	otherDay := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter parcel.Filter
		want   bool
	}{
		{"empty filter", parcel.Filter{}, true},
		{"code substring", parcel.Filter{Query: "1019101500"}, true},
		{"client match", parcel.Filter{Query: "Koval", MatchingClients: map[int]struct{}{2: {}}}, true},
		{"no match", parcel.Filter{Query: "Koval", MatchingClients: map[int]struct{}{9: {}}}, false},
		{"status match", parcel.Filter{Status: &awaiting}, true},
		{"status mismatch", parcel.Filter{Status: &inTransit}, false},
		{"same day ignores time", parcel.Filter{Date: &sameDay}, true},
		{"other day", parcel.Filter{Date: &otherDay}, false},
		{"conjunction fails on one", parcel.Filter{Status: &awaiting, Date: &otherDay}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestFilter_MatchesDayInCreationZone(t *testing.T) {
	kyiv := time.FixedZone("UTC+3", 3*60*60)
	p, err := parcel.NewParcel(validSpec(t), time.Date(2026, time.October, 19, 1, 30, 0, 0, kyiv))
	require.NoError(t, err)

	day, err := time.Parse(time.DateOnly, "2026-10-19")
	require.NoError(t, err)
	assert.True(t, parcel.Filter{Date: &day}.Matches(p))

	previous, err := time.Parse(time.DateOnly, "2026-10-18")
	require.NoError(t, err)
	assert.False(t, parcel.Filter{Date: &previous}.Matches(p))

	local, err := time.ParseInLocation(time.DateOnly, "2026-10-19", kyiv)
	require.NoError(t, err)
	assert.True(t, parcel.Filter{Date: &local}.Matches(p))
}
