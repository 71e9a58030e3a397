// Package deliverypointrepo persists delivery points with GORM.
package deliverypointrepo

import (
	"context"
	"errors"
	"strconv"

	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
)

type DeliveryPointDTO struct {
	ID           int    `gorm:"primaryKey;autoIncrement:false"`
	Channel      int    `gorm:"type:smallint;not null;index"`
	Address      string `gorm:"type:text;not null"`
	PostalCode   string `gorm:"type:varchar(16);not null"`
	Organization string `gorm:"type:varchar(255)"`
}

func (DeliveryPointDTO) TableName() string {
	return "delivery_points"
}

type GormDeliveryPointRepository struct {
	db *gorm.DB
}

func NewGormDeliveryPointRepository(db *gorm.DB) *GormDeliveryPointRepository {
	return &GormDeliveryPointRepository{db: db}
}

func (r *GormDeliveryPointRepository) NextID(ctx context.Context) (int, error) {
	var id int
	err := r.db.WithContext(ctx).Model(&DeliveryPointDTO{}).Select("COALESCE(MAX(id), 0) + 1").Scan(&id).Error
	return id, err
}

func (r *GormDeliveryPointRepository) Add(ctx context.Context, aggregate *deliverypoint.DeliveryPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DeliveryPointDTO{
		ID:           aggregate.ID(),
		Channel:      int(aggregate.Channel()),
		Address:      aggregate.Address(),
		PostalCode:   aggregate.PostalCode(),
		Organization: aggregate.Organization(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("deliveryPointId",
				errors.New("deliveryPointId "+strconv.Itoa(dto.ID)+" already exists"))
		}
		return err
	}

	return nil
}

func (r *GormDeliveryPointRepository) Get(ctx context.Context, id int) (*deliverypoint.DeliveryPoint, error) {
	var dto DeliveryPointDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryPointId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryPointRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&DeliveryPointDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryPointId", id)
	}

	return nil
}

func (r *GormDeliveryPointRepository) List(ctx context.Context) ([]*deliverypoint.DeliveryPoint, error) {
	var dtos []DeliveryPointDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	points := make([]*deliverypoint.DeliveryPoint, 0, len(dtos))
	for _, dto := range dtos {
		dp, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		points = append(points, dp)
	}

	return points, nil
}

func toDomain(dto DeliveryPointDTO) (*deliverypoint.DeliveryPoint, error) {
	return deliverypoint.NewDeliveryPoint(dto.ID, parcel.Channel(dto.Channel), dto.Address, dto.PostalCode, dto.Organization)
}
