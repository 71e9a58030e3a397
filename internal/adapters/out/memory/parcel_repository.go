package memory

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"
)

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.TrackingCode().String()
	return r.uow.run(func(t *tables) error {
		if _, ok := t.parcels[key]; ok {
			return errs.NewValueIsInvalidErrorWithCause("trackingCode", errors.New("parcel "+key+" already exists"))
		}
		t.parcels[key] = aggregate.State()
		return nil
	})
}

func (r *parcelRepository) Update(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := aggregate.TrackingCode().String()
	return r.uow.run(func(t *tables) error {
		if _, ok := t.parcels[key]; !ok {
			return errs.NewObjectNotFoundError("trackingCode", key)
		}
		t.parcels[key] = aggregate.State()
		return nil
	})
}

func (r *parcelRepository) Get(_ context.Context, code parcel.TrackingCode) (*parcel.Parcel, error) {
	var p *parcel.Parcel
	err := r.uow.run(func(t *tables) error {
		st, ok := t.parcels[code.String()]
		if !ok {
			return errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		var err error
		p, err = parcel.RestoreParcel(st)
		return err
	})
	return p, err
}

func (r *parcelRepository) Exists(_ context.Context, code parcel.TrackingCode) (bool, error) {
	var ok bool
	err := r.uow.run(func(t *tables) error {
		_, ok = t.parcels[code.String()]
		return nil
	})
	return ok, err
}

func (r *parcelRepository) List(_ context.Context) ([]*parcel.Parcel, error) {
	var out []*parcel.Parcel
	err := r.uow.run(func(t *tables) error {
		var err error
		out, err = restoreParcels(t.parcels)
		return err
	})
	return out, err
}

func (r *parcelRepository) CountBySender(_ context.Context, clientID int) (int, error) {
	var n int
	err := r.uow.run(func(t *tables) error {
		for _, st := range t.parcels {
			if st.SenderID == clientID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *parcelRepository) ReferencesClient(_ context.Context, clientID int) (bool, error) {
	var found bool
	err := r.uow.run(func(t *tables) error {
		for _, st := range t.parcels {
			if st.SenderID == clientID || st.ReceiverID == clientID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}
