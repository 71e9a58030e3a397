package snapshot

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
)

// Enumerations are written by name; money is a decimal string.

type statusChangeDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type notificationDTO struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	DelayReason *string   `json:"delayReason,omitempty"`
	DelayDays   *int      `json:"delayDays,omitempty"`
}

type parcelDTO struct {
	TrackingCode          string            `json:"trackingCode"`
	SenderID              int               `json:"senderId"`
	ReceiverID            int               `json:"receiverId"`
	Type                  string            `json:"type"`
	Content               string            `json:"content"`
	Weight                float64           `json:"weight"`
	DeclaredValue         decimal.Decimal   `json:"declaredValue"`
	Status                string            `json:"status"`
	Courier               string            `json:"courier"`
	Channel               string            `json:"channel"`
	CreatedAt             time.Time         `json:"createdAt"`
	History               []statusChangeDTO `json:"history"`
	Notifications         []notificationDTO `json:"notifications"`
	SenderCountry         string            `json:"senderCountry"`
	ReceiverCountry       string            `json:"receiverCountry"`
	Insured               bool              `json:"insured"`
	InsuredValue          decimal.Decimal   `json:"insuredValue"`
	EstimatedDeliveryDays int               `json:"estimatedDeliveryDays"`
	PriorityProcessing    bool              `json:"priorityProcessing"`
	FreeDelivery          bool              `json:"freeDelivery"`
}

type clientDTO struct {
	ID               int        `json:"id"`
	FullName         string     `json:"fullName"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email,omitempty"`
	Address          string     `json:"address,omitempty"`
	Category         string     `json:"category"`
	Tier             string     `json:"tier"`
	ParcelCount      int        `json:"parcelCount"`
	LastDiscountUse  *time.Time `json:"lastDiscountUse,omitempty"`
	LastFreeDelivery *time.Time `json:"lastFreeDelivery,omitempty"`
}

type operatorDTO struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Processed  int     `json:"processed"`
	Efficiency float64 `json:"efficiency"`
}

type deliveryPointDTO struct {
	ID           int    `json:"id"`
	Channel      string `json:"channel"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	Organization string `json:"organization,omitempty"`
}

func parcelToDTO(p *parcel.Parcel) parcelDTO {
	st := p.State()
	dto := parcelDTO{
		TrackingCode:          st.TrackingCode.String(),
		SenderID:              st.SenderID,
		ReceiverID:            st.ReceiverID,
		Type:                  st.Type.String(),
		Content:               st.Content.String(),
		Weight:                st.Weight,
		DeclaredValue:         st.DeclaredValue,
		Status:                st.Status.String(),
		Courier:               st.Courier.String(),
		Channel:               st.Channel.String(),
		CreatedAt:             st.CreatedAt,
		History:               make([]statusChangeDTO, 0, len(st.History)),
		Notifications:         make([]notificationDTO, 0, len(st.Notifications)),
		SenderCountry:         st.SenderCountry,
		ReceiverCountry:       st.ReceiverCountry,
		Insured:               st.Insured,
		InsuredValue:          st.InsuredValue,
		EstimatedDeliveryDays: st.EstimatedDays,
		PriorityProcessing:    st.Priority,
		FreeDelivery:          st.FreeDelivery,
	}
	for _, h := range st.History {
		dto.History = append(dto.History, statusChangeDTO{Status: h.Status.String(), Timestamp: h.Timestamp, Note: h.Note})
	}
	for _, n := range st.Notifications {
		nd := notificationDTO{ID: n.ID.String(), Timestamp: n.Timestamp, Status: n.Status.String(), Note: n.Note, DelayDays: n.DelayDays}
		if n.DelayReason != nil {
			r := n.DelayReason.String()
			nd.DelayReason = &r
		}
		dto.Notifications = append(dto.Notifications, nd)
	}
	return dto
}

func parcelFromDTO(dto parcelDTO) (*parcel.Parcel, error) {
	code, codeErr := parcel.NewTrackingCode(dto.TrackingCode)
	typ, typeErr := parcel.ParseType(dto.Type)
	content, contentErr := parcel.ParseContent(dto.Content)
	status, statusErr := parcel.ParseStatus(dto.Status)
	courier, courierErr := parcel.ParseCourier(dto.Courier)
	channel, channelErr := parcel.ParseChannel(dto.Channel)
	if err := errors.Join(codeErr, typeErr, contentErr, statusErr, courierErr, channelErr); err != nil {
		return nil, err
	}

	history := make([]parcel.StatusChange, 0, len(dto.History))
	for _, h := range dto.History {
		s, err := parcel.ParseStatus(h.Status)
		if err != nil {
			return nil, err
		}
		history = append(history, parcel.StatusChange{Status: s, Timestamp: h.Timestamp, Note: h.Note})
	}

	notifications := make([]parcel.Notification, 0, len(dto.Notifications))
	for _, n := range dto.Notifications {
		id, err := kernel.UUIDFromString(n.ID)
		if err != nil {
			return nil, err
		}
		s, err := parcel.ParseStatus(n.Status)
		if err != nil {
			return nil, err
		}
		out := parcel.Notification{ID: id, Timestamp: n.Timestamp, Status: s, Note: n.Note, DelayDays: n.DelayDays}
		if n.DelayReason != nil {
			r, err := parcel.ParseDelayReason(*n.DelayReason)
			if err != nil {
				return nil, err
			}
			out.DelayReason = &r
		}
		notifications = append(notifications, out)
	}

	return parcel.RestoreParcel(parcel.State{
		TrackingCode:    code,
		SenderID:        dto.SenderID,
		ReceiverID:      dto.ReceiverID,
		Type:            typ,
		Content:         content,
		Weight:          dto.Weight,
		DeclaredValue:   dto.DeclaredValue,
		Status:          status,
		Courier:         courier,
		Channel:         channel,
		CreatedAt:       dto.CreatedAt,
		History:         history,
		Notifications:   notifications,
		SenderCountry:   dto.SenderCountry,
		ReceiverCountry: dto.ReceiverCountry,
		Insured:         dto.Insured,
		InsuredValue:    dto.InsuredValue,
		EstimatedDays:   dto.EstimatedDeliveryDays,
		Priority:        dto.PriorityProcessing,
		FreeDelivery:    dto.FreeDelivery,
	})
}

func clientToDTO(c *client.Client) clientDTO {
	contacts := c.Contacts()
	return clientDTO{
		ID:               c.ID(),
		FullName:         contacts.FullName,
		Phone:            contacts.Phone,
		Email:            contacts.Email,
		Address:          contacts.Address,
		Category:         c.Category().String(),
		Tier:             c.Tier().String(),
		ParcelCount:      c.ParcelCount(),
		LastDiscountUse:  c.LastDiscountUse(),
		LastFreeDelivery: c.LastFreeDelivery(),
	}
}

// clientFromDTO ignores the stored tier; it is derived from the parcel count.
func clientFromDTO(dto clientDTO) (*client.Client, error) {
	category, err := client.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(dto.ID, client.Contacts{
		FullName: dto.FullName,
		Phone:    dto.Phone,
		Email:    dto.Email,
		Address:  dto.Address,
	}, category, dto.ParcelCount, dto.LastDiscountUse, dto.LastFreeDelivery)
}

func operatorToDTO(o *operator.Operator) operatorDTO {
	return operatorDTO{ID: o.ID(), Name: o.Name(), Processed: o.Processed(), Efficiency: o.Efficiency()}
}

func operatorFromDTO(dto operatorDTO) (*operator.Operator, error) {
	return operator.RestoreOperator(dto.ID, dto.Name, dto.Processed, dto.Efficiency)
}

func deliveryPointToDTO(dp *deliverypoint.DeliveryPoint) deliveryPointDTO {
	return deliveryPointDTO{
		ID:           dp.ID(),
		Channel:      dp.Channel().String(),
		Address:      dp.Address(),
		PostalCode:   dp.PostalCode(),
		Organization: dp.Organization(),
	}
}

func deliveryPointFromDTO(dto deliveryPointDTO) (*deliverypoint.DeliveryPoint, error) {
	channel, err := parcel.ParseChannel(dto.Channel)
	if err != nil {
		return nil, err
	}
	return deliverypoint.NewDeliveryPoint(dto.ID, channel, dto.Address, dto.PostalCode, dto.Organization)
}
