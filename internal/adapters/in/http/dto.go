package http

import (
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ContactsRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address"`
}

func (r ContactsRequest) toDomain() client.Contacts {
	return client.Contacts{FullName: r.FullName, Phone: r.Phone, Email: r.Email, Address: r.Address}
}

type RegisterClientRequest struct {
	ContactsRequest
	Category string `json:"category" validate:"required"`
}

type ClientResponse struct {
	ID               int        `json:"id"`
	FullName         string     `json:"fullName"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Address          string     `json:"address"`
	Category         string     `json:"category"`
	Tier             string     `json:"tier"`
	ParcelCount      int        `json:"parcelCount"`
	LastDiscountUse  *time.Time `json:"lastDiscountUse,omitempty"`
	LastFreeDelivery *time.Time `json:"lastFreeDelivery,omitempty"`
}

func clientResponse(c *client.Client) ClientResponse {
	contacts := c.Contacts()
	return ClientResponse{
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

type CountResponse struct {
	Count int `json:"count"`
}

type RegisterOperatorRequest struct {
	Name string `json:"name" validate:"required"`
}

type OperatorResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Processed  int     `json:"processed"`
	Efficiency float64 `json:"efficiency"`
}

func operatorResponse(o *operator.Operator) OperatorResponse {
	return OperatorResponse{ID: o.ID(), Name: o.Name(), Processed: o.Processed(), Efficiency: o.Efficiency()}
}

type AddDeliveryPointRequest struct {
	Channel      string `json:"channel" validate:"required"`
	Address      string `json:"address" validate:"required"`
	PostalCode   string `json:"postalCode"`
	Organization string `json:"organization"`
}

type DeliveryPointResponse struct {
	ID           int    `json:"id"`
	Channel      string `json:"channel"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	Organization string `json:"organization"`
}

func deliveryPointResponse(d *deliverypoint.DeliveryPoint) DeliveryPointResponse {
	return DeliveryPointResponse{
		ID:           d.ID(),
		Channel:      d.Channel().String(),
		Address:      d.Address(),
		PostalCode:   d.PostalCode(),
		Organization: d.Organization(),
	}
}

type CreateParcelRequest struct {
	SenderID          int             `json:"senderId" validate:"required,gt=0"`
	ReceiverID        int             `json:"receiverId" validate:"required,gt=0"`
	Type              string          `json:"type" validate:"required"`
	Content           string          `json:"content" validate:"required"`
	Weight            float64         `json:"weight" validate:"gt=0"`
	DeclaredValue     decimal.Decimal `json:"declaredValue"`
	Courier           string          `json:"courier" validate:"required"`
	Channel           string          `json:"channel" validate:"required"`
	ReceiverCountry   string          `json:"receiverCountry"`
	Insured           bool            `json:"insured"`
	InsuredValue      decimal.Decimal `json:"insuredValue"`
	Dangerous         bool            `json:"dangerous"`
	WantsFreeDelivery bool            `json:"wantsFreeDelivery"`
}

type ChangeStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	Note       string `json:"note"`
	OperatorID *int   `json:"operatorId" validate:"omitempty,gt=0"`
}

type QuoteRequest struct {
	UseDiscount bool `json:"useDiscount"`
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type NotificationResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	DelayReason string    `json:"delayReason,omitempty"`
	DelayDays   *int      `json:"delayDays,omitempty"`
}

type ParcelResponse struct {
	TrackingCode          string                 `json:"trackingCode"`
	SenderID              int                    `json:"senderId"`
	ReceiverID            int                    `json:"receiverId"`
	Type                  string                 `json:"type"`
	Content               string                 `json:"content"`
	Weight                float64                `json:"weight"`
	DeclaredValue         decimal.Decimal        `json:"declaredValue"`
	Status                string                 `json:"status"`
	Courier               string                 `json:"courier"`
	Channel               string                 `json:"channel"`
	CreatedAt             time.Time              `json:"createdAt"`
	SenderCountry         string                 `json:"senderCountry"`
	ReceiverCountry       string                 `json:"receiverCountry"`
	Insured               bool                   `json:"insured"`
	InsuredValue          decimal.Decimal        `json:"insuredValue"`
	EstimatedDeliveryDays int                    `json:"estimatedDeliveryDays"`
	PriorityProcessing    bool                   `json:"priorityProcessing"`
	FreeDelivery          bool                   `json:"freeDelivery"`
	History               []StatusChangeResponse `json:"history"`
	Notifications         []NotificationResponse `json:"notifications"`
}

func parcelResponse(p *parcel.Parcel) ParcelResponse {
	history := make([]StatusChangeResponse, 0, len(p.History()))
	for _, h := range p.History() {
		history = append(history, StatusChangeResponse{Status: h.Status.String(), Timestamp: h.Timestamp, Note: h.Note})
	}

	notifications := make([]NotificationResponse, 0, len(p.Notifications()))
	for _, n := range p.Notifications() {
		resp := NotificationResponse{
			ID:        n.ID.String(),
			Timestamp: n.Timestamp,
			Status:    n.Status.String(),
			Note:      n.Note,
			DelayDays: n.DelayDays,
		}
		if n.DelayReason != nil {
			resp.DelayReason = n.DelayReason.String()
		}
		notifications = append(notifications, resp)
	}

	return ParcelResponse{
		TrackingCode:          p.TrackingCode().String(),
		SenderID:              p.SenderID(),
		ReceiverID:            p.ReceiverID(),
		Type:                  p.Type().String(),
		Content:               p.Content().String(),
		Weight:                p.Weight(),
		DeclaredValue:         p.DeclaredValue(),
		Status:                p.Status().String(),
		Courier:               p.Courier().String(),
		Channel:               p.Channel().String(),
		CreatedAt:             p.CreatedAt(),
		SenderCountry:         p.SenderCountry(),
		ReceiverCountry:       p.ReceiverCountry(),
		Insured:               p.Insured(),
		InsuredValue:          p.InsuredValue(),
		EstimatedDeliveryDays: p.EstimatedDeliveryDays(),
		PriorityProcessing:    p.PriorityProcessing(),
		FreeDelivery:          p.FreeDelivery(),
		History:               history,
		Notifications:         notifications,
	}
}

type CreateParcelResponse struct {
	Parcel             ParcelResponse `json:"parcel"`
	FreeDeliveryDenied bool           `json:"freeDeliveryDenied"`
}

type DelayResponse struct {
	HasDelay    bool   `json:"hasDelay"`
	Reason      string `json:"reason,omitempty"`
	Days        int    `json:"days,omitempty"`
	NewEstimate int    `json:"newEstimate"`
}

func delayResponse(o services.DelayOutcome) DelayResponse {
	resp := DelayResponse{HasDelay: o.HasDelay, NewEstimate: o.NewEstimate}
	if o.HasDelay {
		resp.Reason = o.Reason.String()
		resp.Days = o.Days
	}
	return resp
}

type QuoteResponse struct {
	BaseCost        decimal.Decimal `json:"baseCost"`
	ImportTax       decimal.Decimal `json:"importTax"`
	Total           decimal.Decimal `json:"total"`
	Final           decimal.Decimal `json:"final"`
	DiscountRate    decimal.Decimal `json:"discountRate"`
	DiscountApplied bool            `json:"discountApplied"`
	DiscountDenied  bool            `json:"discountDenied"`
	HolidayRate     bool            `json:"holidayRate"`
	FreeDelivery    bool            `json:"freeDelivery"`
}

func quoteResponse(q services.Quote) QuoteResponse {
	return QuoteResponse{
		BaseCost:        q.BaseCost,
		ImportTax:       q.ImportTax,
		Total:           q.Total,
		Final:           q.Final,
		DiscountRate:    q.DiscountRate,
		DiscountApplied: q.DiscountApplied,
		DiscountDenied:  q.DiscountDenied,
		HolidayRate:     q.HolidayRate,
		FreeDelivery:    q.FreeDelivery,
	}
}

type StatisticsResponse struct {
	From                 *time.Time       `json:"from,omitempty"`
	To                   *time.Time       `json:"to,omitempty"`
	Total                int              `json:"total"`
	ByStatus             map[string]int   `json:"byStatus"`
	AvgLocalDays         *float64         `json:"avgLocalDays"`
	AvgInternationalDays *float64         `json:"avgInternationalDays"`
	TopOperators         []OperatorRank   `json:"topOperators"`
	Destinations         []DestinationRow `json:"destinations"`
}

type OperatorRank struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Processed int    `json:"processed"`
}

type DestinationRow struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// NewStatisticsResponse flattens statistics for JSON output.
func NewStatisticsResponse(s services.Statistics) StatisticsResponse {
	resp := StatisticsResponse{
		From:                 s.From,
		To:                   s.To,
		Total:                s.Total,
		ByStatus:             make(map[string]int, len(s.ByStatus)),
		AvgLocalDays:         s.AvgLocalDays,
		AvgInternationalDays: s.AvgInternationalDays,
		TopOperators:         make([]OperatorRank, 0, len(s.TopOperators)),
		Destinations:         make([]DestinationRow, 0, len(s.Destinations)),
	}
	for _, sc := range s.ByStatus {
		resp.ByStatus[sc.Status.String()] = sc.Count
	}
	for _, o := range s.TopOperators {
		resp.TopOperators = append(resp.TopOperators, OperatorRank{ID: o.ID, Name: o.Name, Processed: o.Processed})
	}
	for _, d := range s.Destinations {
		resp.Destinations = append(resp.Destinations, DestinationRow{Country: d.Country, Count: d.Count})
	}
	return resp
}
