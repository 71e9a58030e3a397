// Package parcelrepo persists parcel aggregates with GORM. A parcel is stored as
// one row in parcels plus its append-only status history and notification log
// in child tables ordered by Seq.
package parcelrepo

import (
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO maps the parcel aggregate root to the parcels table.
type ParcelDTO struct {
	TrackingCode    string            `gorm:"type:varchar(18);primaryKey"`
	SenderID        int               `gorm:"not null;index"`
	ReceiverID      int               `gorm:"not null;index"`
	Type            int               `gorm:"type:smallint;not null"`
	Content         int               `gorm:"type:smallint;not null"`
	Weight          float64           `gorm:"not null"`
	DeclaredValue   decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Status          int               `gorm:"type:smallint;not null;index"`
	Courier         int               `gorm:"type:smallint;not null"`
	Channel         int               `gorm:"type:smallint;not null"`
	CreatedAt       time.Time         `gorm:"not null;index"`
	SenderCountry   string            `gorm:"type:varchar(100);not null"`
	ReceiverCountry string            `gorm:"type:varchar(100);not null;index"`
	Insured         bool              `gorm:"not null"`
	InsuredValue    decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	EstimatedDays   int               `gorm:"not null"`
	Priority        bool              `gorm:"not null"`
	FreeDelivery    bool              `gorm:"not null"`
	History         []StatusChangeDTO `gorm:"foreignKey:TrackingCode;constraint:OnDelete:CASCADE"`
	Notifications   []NotificationDTO `gorm:"foreignKey:TrackingCode;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusChangeDTO is one row of a parcel's status history.
type StatusChangeDTO struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	TrackingCode string    `gorm:"type:varchar(18);not null;uniqueIndex:idx_status_changes_seq"`
	Seq          int       `gorm:"not null;uniqueIndex:idx_status_changes_seq"`
	Status       int       `gorm:"type:smallint;not null"`
	Timestamp    time.Time `gorm:"not null"`
	Note         string    `gorm:"type:text"`
}

func (StatusChangeDTO) TableName() string {
	return "parcel_status_changes"
}

// NotificationDTO is one row of a parcel's notification log.
type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode string    `gorm:"type:varchar(18);not null;uniqueIndex:idx_notifications_seq"`
	Seq          int       `gorm:"not null;uniqueIndex:idx_notifications_seq"`
	Timestamp    time.Time `gorm:"not null"`
	Status       int       `gorm:"type:smallint;not null"`
	Note         string    `gorm:"type:text"`
	DelayReason  *int      `gorm:"type:smallint"`
	DelayDays    *int
}

func (NotificationDTO) TableName() string {
	return "parcel_notifications"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	st := p.State()
	code := st.TrackingCode.String()

	dto := ParcelDTO{
		TrackingCode:    code,
		SenderID:        st.SenderID,
		ReceiverID:      st.ReceiverID,
		Type:            int(st.Type),
		Content:         int(st.Content),
		Weight:          st.Weight,
		DeclaredValue:   st.DeclaredValue,
		Status:          int(st.Status),
		Courier:         int(st.Courier),
		Channel:         int(st.Channel),
		CreatedAt:       st.CreatedAt,
		SenderCountry:   st.SenderCountry,
		ReceiverCountry: st.ReceiverCountry,
		Insured:         st.Insured,
		InsuredValue:    st.InsuredValue,
		EstimatedDays:   st.EstimatedDays,
		Priority:        st.Priority,
		FreeDelivery:    st.FreeDelivery,
		History:         make([]StatusChangeDTO, 0, len(st.History)),
		Notifications:   make([]NotificationDTO, 0, len(st.Notifications)),
	}

	for i, h := range st.History {
		dto.History = append(dto.History, StatusChangeDTO{
			TrackingCode: code,
			Seq:          i,
			Status:       int(h.Status),
			Timestamp:    h.Timestamp,
			Note:         h.Note,
		})
	}

	for i, n := range st.Notifications {
		var reason *int
		if n.DelayReason != nil {
			r := int(*n.DelayReason)
			reason = &r
		}
		dto.Notifications = append(dto.Notifications, NotificationDTO{
			ID:           n.ID.Bytes(),
			TrackingCode: code,
			Seq:          i,
			Timestamp:    n.Timestamp,
			Status:       int(n.Status),
			Note:         n.Note,
			DelayReason:  reason,
			DelayDays:    n.DelayDays,
		})
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	code, err := parcel.NewTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	history := make([]parcel.StatusChange, 0, len(dto.History))
	for _, h := range dto.History {
		history = append(history, parcel.StatusChange{
			Status:    parcel.Status(h.Status),
			Timestamp: h.Timestamp,
			Note:      h.Note,
		})
	}

	notifications := make([]parcel.Notification, 0, len(dto.Notifications))
	for _, n := range dto.Notifications {
		id, err := kernel.UUIDFromBytes(n.ID[:])
		if err != nil {
			return nil, err
		}
		var reason *parcel.DelayReason
		if n.DelayReason != nil {
			r := parcel.DelayReason(*n.DelayReason)
			reason = &r
		}
		notifications = append(notifications, parcel.Notification{
			ID:          id,
			Timestamp:   n.Timestamp,
			Status:      parcel.Status(n.Status),
			Note:        n.Note,
			DelayReason: reason,
			DelayDays:   n.DelayDays,
		})
	}

	return parcel.RestoreParcel(parcel.State{
		TrackingCode:    code,
		SenderID:        dto.SenderID,
		ReceiverID:      dto.ReceiverID,
		Type:            parcel.Type(dto.Type),
		Content:         parcel.Content(dto.Content),
		Weight:          dto.Weight,
		DeclaredValue:   dto.DeclaredValue,
		Status:          parcel.Status(dto.Status),
		Courier:         parcel.Courier(dto.Courier),
		Channel:         parcel.Channel(dto.Channel),
		CreatedAt:       dto.CreatedAt,
		History:         history,
		Notifications:   notifications,
		SenderCountry:   dto.SenderCountry,
		ReceiverCountry: dto.ReceiverCountry,
		Insured:         dto.Insured,
		InsuredValue:    dto.InsuredValue,
		EstimatedDays:   dto.EstimatedDays,
		Priority:        dto.Priority,
		FreeDelivery:    dto.FreeDelivery,
	})
}
