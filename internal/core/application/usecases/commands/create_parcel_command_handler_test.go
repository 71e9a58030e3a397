package commands_test

import (
	"errors"
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/loyalty"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateParcelCommandHandler_Handle(t *testing.T) {
	t.Run("should create parcel, count it for the sender and publish the first notification", func(t *testing.T) {
		// Given
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		cmd, err := commands.NewCreateParcelCommand(parcelParams(1, 2, 300))
		require.NoError(t, err)

		// When
		result, err := f.createParcelHandler().Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.False(t, result.FreeDeliveryDenied)

		stored := f.getParcel(t, result.Parcel.TrackingCode())
		assert.Equal(t, parcel.AwaitingShipment, stored.Status())
		assert.Equal(t, 1, stored.SenderID())
		assert.Equal(t, now, stored.CreatedAt())
		assert.GreaterOrEqual(t, stored.EstimatedDeliveryDays(), 2)
		assert.Less(t, stored.EstimatedDeliveryDays(), 6)
		assert.False(t, stored.PriorityProcessing())

		assert.Equal(t, 1, f.getClient(t, 1).ParcelCount())
		assert.Equal(t, 0, f.getClient(t, 2).ParcelCount())

		published := f.publisher.For(stored.TrackingCode())
		require.Len(t, published, 1)
		assert.Equal(t, parcel.AwaitingShipment, published[0].Status)
	})

	t.Run("should promote the sender when the count crosses a tier threshold", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, loyalty.ActiveThreshold-1)
		f.addClient(t, 2, 0)

		f.addParcel(t, 1, 2, 100)

		sender := f.getClient(t, 1)
		assert.Equal(t, loyalty.ActiveThreshold, sender.ParcelCount())
		assert.Equal(t, loyalty.Active, sender.Tier())
	})

	t.Run("should give priority processing to legend senders", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, loyalty.LegendThreshold)
		f.addClient(t, 2, 0)

		p := f.addParcel(t, 1, 2, 100)

		assert.True(t, p.PriorityProcessing())
	})

	t.Run("should consume free delivery once a year", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		params := parcelParams(1, 2, 100)
		params.WantsFreeDelivery = true
		cmd, err := commands.NewCreateParcelCommand(params)
		require.NoError(t, err)
		h := f.createParcelHandler()

		first, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		second, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)

		assert.True(t, first.Parcel.FreeDelivery())
		assert.False(t, first.FreeDeliveryDenied)
		assert.False(t, second.Parcel.FreeDelivery())
		assert.True(t, second.FreeDeliveryDenied)

		sender := f.getClient(t, 1)
		require.NotNil(t, sender.LastFreeDelivery())
		assert.Equal(t, now, *sender.LastFreeDelivery())
		assert.Equal(t, 2, sender.ParcelCount())
	})

	t.Run("should fail with not found for an unknown receiver and leave the sender untouched", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		cmd, err := commands.NewCreateParcelCommand(parcelParams(1, 99, 100))
		require.NoError(t, err)

		_, err = f.createParcelHandler().Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, 0, f.getClient(t, 1).ParcelCount())
	})

	t.Run("should reject an overweight parcel without side effects", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		params := parcelParams(1, 2, 100)
		params.Channel = parcel.Parcelbox
		params.Weight = 30.01
		cmd, err := commands.NewCreateParcelCommand(params)
		require.NoError(t, err)

		_, err = f.createParcelHandler().Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		parcels, err := f.repos.ParcelRepository().List(t.Context())
		require.NoError(t, err)
		assert.Empty(t, parcels)
		assert.Equal(t, 0, f.getClient(t, 1).ParcelCount())
	})

	t.Run("should reject dangerous international parcels", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		params := parcelParams(1, 2, 100)
		params.Type = parcel.International
		params.ReceiverCountry = "Poland"
		params.Dangerous = true
		cmd, err := commands.NewCreateParcelCommand(params)
		require.NoError(t, err)

		_, err = f.createParcelHandler().Handle(t.Context(), cmd)

		require.ErrorIs(t, err, parcel.ErrDangerousInternational)
	})

	t.Run("should not publish when commit fails", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		ctx := t.Context()
		cmd, err := commands.NewCreateParcelCommand(parcelParams(1, 2, 100))
		require.NoError(t, err)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("ClientRepository").Return(f.repos.ClientRepository())
		uow.On("ParcelRepository").Return(f.repos.ParcelRepository())
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewCreateParcelCommandHandler(
			uowFactory(func() commands.UoW { return uow }),
			f.lifecycle(),
			services.NewTrackingCodeGenerator(f.clock, f.random),
			f.clock,
			f.publisher,
		)

		_, err = h.Handle(ctx, cmd)

		require.EqualError(t, err, "commit error")
		assert.Empty(t, f.publisher.published)
		uow.AssertExpectations(t)
	})

	t.Run("should fail on begin error", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()
		cmd, err := commands.NewCreateParcelCommand(parcelParams(1, 2, 100))
		require.NoError(t, err)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

		h := commands.NewCreateParcelCommandHandler(
			uowFactory(func() commands.UoW { return uow }),
			f.lifecycle(),
			services.NewTrackingCodeGenerator(f.clock, f.random),
			f.clock,
			f.publisher,
		)

		_, err = h.Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.createParcelHandler().Handle(t.Context(), commands.CreateParcelCommand{})

		require.ErrorIs(t, err, commands.ErrCreateParcelCommandIsNotConstructed)
	})
}
