package clientrepo

import (
	"context"
	"errors"
	"strconv"

	"postal/internal/core/domain/model/client"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// NextID returns one more than the highest stored id, or 1 for an empty table.
func (r *GormClientRepository) NextID(ctx context.Context) (int, error) {
	var id int
	err := r.db.WithContext(ctx).Model(&ClientDTO{}).Select("COALESCE(MAX(id), 0) + 1").Scan(&id).Error
	return id, err
}

func (r *GormClientRepository) Add(ctx context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("clientId",
				errors.New("clientId "+strconv.Itoa(dto.ID)+" already exists"))
		}
		return err
	}

	return nil
}

func (r *GormClientRepository) Update(ctx context.Context, aggregate *client.Client) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ClientDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("clientId", dto.ID)
	}

	return nil
}

func (r *GormClientRepository) Get(ctx context.Context, id int) (*client.Client, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the client with SELECT ... FOR UPDATE, so concurrent
// transactions touching the same counters and gates queue behind each other.
func (r *GormClientRepository) GetForUpdate(ctx context.Context, id int) (*client.Client, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormClientRepository) get(db *gorm.DB, id int) (*client.Client, error) {
	var dto ClientDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("clientId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormClientRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&ClientDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("clientId", id)
	}

	return nil
}

func (r *GormClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	return r.Search(ctx, "")
}

// Search filters in process with client.Client.MatchesQuery so that both storage
// backends match exactly the same clients.
func (r *GormClientRepository) Search(ctx context.Context, query string) ([]*client.Client, error) {
	var dtos []ClientDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	clients := make([]*client.Client, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		if c.MatchesQuery(query) {
			clients = append(clients, c)
		}
	}

	return clients, nil
}
