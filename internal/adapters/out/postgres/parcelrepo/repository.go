package parcelrepo

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository. Only status and the
// delivery estimate change after creation; Update rewrites those two columns and
// appends the history and notification rows that are not stored yet.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("trackingCode",
				errors.New("parcel "+dto.TrackingCode+" already exists"))
		}
		return err
	}

	return nil
}

func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ParcelDTO{}).
		Where("tracking_code = ?", dto.TrackingCode).
		Updates(map[string]any{"status": dto.Status, "estimated_days": dto.EstimatedDays})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trackingCode", dto.TrackingCode)
	}

	var stored int64
	if err := db.Model(&StatusChangeDTO{}).Where("tracking_code = ?", dto.TrackingCode).Count(&stored).Error; err != nil {
		return err
	}
	if tail := dto.History[min(int(stored), len(dto.History)):]; len(tail) > 0 {
		if err := db.Create(&tail).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&NotificationDTO{}).Where("tracking_code = ?", dto.TrackingCode).Count(&stored).Error; err != nil {
		return err
	}
	if tail := dto.Notifications[min(int(stored), len(dto.Notifications)):]; len(tail) > 0 {
		if err := db.Create(&tail).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, code parcel.TrackingCode) (*parcel.Parcel, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withChildren(ctx).First(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) Exists(ctx context.Context, code parcel.TrackingCode) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("tracking_code = ?", code.String()).Count(&n).Error
	return n > 0, err
}

func (r *GormParcelRepository) List(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.withChildren(ctx).Order("created_at, tracking_code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

func (r *GormParcelRepository) CountBySender(ctx context.Context, clientID int) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("sender_id = ?", clientID).Count(&n).Error
	return int(n), err
}

func (r *GormParcelRepository) ReferencesClient(ctx context.Context, clientID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("sender_id = ? OR receiver_id = ?", clientID, clientID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormParcelRepository) withChildren(ctx context.Context) *gorm.DB {
	bySeq := func(db *gorm.DB) *gorm.DB { return db.Order("seq") }
	return r.db.WithContext(ctx).
		Preload("History", bySeq).
		Preload("Notifications", bySeq)
}
