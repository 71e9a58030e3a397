// Package clientrepo persists client aggregates with GORM. The loyalty tier is
// not stored; it is derived from the parcel count when a client is restored.
package clientrepo

import (
	"time"

	"postal/internal/core/domain/model/client"
)

type ClientDTO struct {
	ID               int    `gorm:"primaryKey;autoIncrement:false"`
	FullName         string `gorm:"type:varchar(255);not null"`
	Phone            string `gorm:"type:varchar(32);not null"`
	Email            string `gorm:"type:varchar(255)"`
	Address          string `gorm:"type:text"`
	Category         int    `gorm:"type:smallint;not null"`
	ParcelCount      int    `gorm:"not null"`
	LastDiscountUse  *time.Time
	LastFreeDelivery *time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	contacts := c.Contacts()
	return ClientDTO{
		ID:               c.ID(),
		FullName:         contacts.FullName,
		Phone:            contacts.Phone,
		Email:            contacts.Email,
		Address:          contacts.Address,
		Category:         int(c.Category()),
		ParcelCount:      c.ParcelCount(),
		LastDiscountUse:  c.LastDiscountUse(),
		LastFreeDelivery: c.LastFreeDelivery(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	return client.RestoreClient(
		dto.ID,
		client.Contacts{
			FullName: dto.FullName,
			Phone:    dto.Phone,
			Email:    dto.Email,
			Address:  dto.Address,
		},
		client.Category(dto.Category),
		dto.ParcelCount,
		dto.LastDiscountUse,
		dto.LastFreeDelivery,
	)
}
