// Package operatorrepo persists operators with GORM.
package operatorrepo

import (
	"context"
	"errors"
	"strconv"

	"postal/internal/core/domain/model/operator"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OperatorDTO struct {
	ID         int    `gorm:"primaryKey;autoIncrement:false"`
	Name       string `gorm:"type:varchar(255);not null"`
	Processed  int    `gorm:"not null"`
	Efficiency float64
}

func (OperatorDTO) TableName() string {
	return "operators"
}

type GormOperatorRepository struct {
	db *gorm.DB
}

func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

func (r *GormOperatorRepository) NextID(ctx context.Context) (int, error) {
	var id int
	err := r.db.WithContext(ctx).Model(&OperatorDTO{}).Select("COALESCE(MAX(id), 0) + 1").Scan(&id).Error
	return id, err
}

func (r *GormOperatorRepository) Add(ctx context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("operatorId",
				errors.New("operatorId "+strconv.Itoa(dto.ID)+" already exists"))
		}
		return err
	}

	return nil
}

func (r *GormOperatorRepository) Update(ctx context.Context, aggregate *operator.Operator) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OperatorDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("operatorId", dto.ID)
	}

	return nil
}

func (r *GormOperatorRepository) Get(ctx context.Context, id int) (*operator.Operator, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormOperatorRepository) GetForUpdate(ctx context.Context, id int) (*operator.Operator, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOperatorRepository) get(db *gorm.DB, id int) (*operator.Operator, error) {
	var dto OperatorDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("operatorId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOperatorRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&OperatorDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("operatorId", id)
	}

	return nil
}

func (r *GormOperatorRepository) List(ctx context.Context) ([]*operator.Operator, error) {
	var dtos []OperatorDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	operators := make([]*operator.Operator, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		operators = append(operators, o)
	}

	return operators, nil
}

func fromDomain(o *operator.Operator) OperatorDTO {
	return OperatorDTO{
		ID:         o.ID(),
		Name:       o.Name(),
		Processed:  o.Processed(),
		Efficiency: o.Efficiency(),
	}
}

func toDomain(dto OperatorDTO) (*operator.Operator, error) {
	return operator.RestoreOperator(dto.ID, dto.Name, dto.Processed, dto.Efficiency)
}
