package parcel

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// HomeCountry is the sender country of every parcel and the default receiver country.
const HomeCountry = "Ukraine"

// ConfirmationThreshold is the declared value above which acceptance needs an operator.
var ConfirmationThreshold = decimal.NewFromInt(5000)

var (
	// ErrParcelIsNotConstructed is returned when using a zero-value Parcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrDangerousInternational rejects dangerous goods on international parcels.
	ErrDangerousInternational = errs.NewValueIsInvalidErrorWithCause(
		"dangerous",
		errors.New("international shipping of dangerous goods is prohibited"),
	)
)

// Spec carries the attributes of a parcel about to be created. Derived fields
// (estimated days, priority, free delivery) are decided by the lifecycle service.
type Spec struct {
	TrackingCode    TrackingCode
	SenderID        int
	ReceiverID      int
	Type            Type
	Content         Content
	Weight          float64
	DeclaredValue   decimal.Decimal
	Courier         Courier
	Channel         Channel
	ReceiverCountry string
	Insured         bool
	InsuredValue    decimal.Decimal
	Dangerous       bool
	EstimatedDays   int
	Priority        bool
	FreeDelivery    bool
}

// Parcel is the aggregate root of a shipment.
//
// Parcel follows these invariants:
//   - Weight is in (0, channel ceiling]
//   - Declared and insured values are not negative
//   - The first history entry and the first notification record AwaitingShipment
//   - History and notifications only grow
//   - Status changes follow Status.ValidateTransition
type Parcel struct {
	trackingCode    TrackingCode
	senderID        int
	receiverID      int
	parcelType      Type
	content         Content
	weight          float64
	declaredValue   decimal.Decimal
	status          Status
	courier         Courier
	channel         Channel
	createdAt       time.Time
	history         []StatusChange
	notifications   []Notification
	senderCountry   string
	receiverCountry string
	insured         bool
	insuredValue    decimal.Decimal
	estimatedDays   int
	priority        bool
	freeDelivery    bool
	guard           guard.ConstructorGuard
}

// NewParcel creates a parcel in AwaitingShipment with one history entry and one
// notification, both stamped with now.
//
// Example:
//
//	p, err := parcel.NewParcel(parcel.Spec{
//	    TrackingCode:  code,
//	    SenderID:      1,
//	    ReceiverID:    2,
//	    Type:          parcel.Local,
//	    Content:       parcel.Document,
//	    Weight:        2,
//	    DeclaredValue: decimal.NewFromInt(100),
//	    Courier:       parcel.NovaPoshta,
//	    Channel:       parcel.Office,
//	    EstimatedDays: 3,
//	}, time.Now())
func NewParcel(spec Spec, now time.Time) (*Parcel, error) {
	p := &Parcel{
		status:        AwaitingShipment,
		createdAt:     now,
		senderCountry: HomeCountry,
		priority:      spec.Priority,
		freeDelivery:  spec.FreeDelivery,
		insured:       spec.Insured,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setTrackingCode(spec.TrackingCode),
		p.setParties(spec.SenderID, spec.ReceiverID),
		p.setKind(spec.Type, spec.Content, spec.Courier, spec.Dangerous),
		p.setChannelAndWeight(spec.Channel, spec.Weight),
		p.setValues(spec.DeclaredValue, spec.InsuredValue),
		p.setEstimatedDays(spec.EstimatedDays),
	); err != nil {
		return nil, err
	}

	p.setReceiverCountry(spec.ReceiverCountry)

	p.history = []StatusChange{{Status: AwaitingShipment, Timestamp: now}}
	p.notifications = []Notification{newNotification(AwaitingShipment, "", now)}

	return p, nil
}

// State is the full persisted form of a parcel.
type State struct {
	TrackingCode    TrackingCode
	SenderID        int
	ReceiverID      int
	Type            Type
	Content         Content
	Weight          float64
	DeclaredValue   decimal.Decimal
	Status          Status
	Courier         Courier
	Channel         Channel
	CreatedAt       time.Time
	History         []StatusChange
	Notifications   []Notification
	SenderCountry   string
	ReceiverCountry string
	Insured         bool
	InsuredValue    decimal.Decimal
	EstimatedDays   int
	Priority        bool
	FreeDelivery    bool
}

// RestoreParcel rebuilds a Parcel from persisted state. The weight ceiling is not
// re-checked so that records written under older limits still load.
func RestoreParcel(s State) (*Parcel, error) {
	p := &Parcel{
		createdAt:       s.CreatedAt,
		senderCountry:   s.SenderCountry,
		receiverCountry: s.ReceiverCountry,
		insured:         s.Insured,
		priority:        s.Priority,
		freeDelivery:    s.FreeDelivery,
		guard:           guard.NewConstructorGuard(),
	}

	var weightErr error
	if !positiveFinite(s.Weight) {
		weightErr = errs.NewValueIsOutOfRangeError("weight", s.Weight, 0, nil)
	}

	if err := errors.Join(
		p.setTrackingCode(s.TrackingCode),
		p.setParties(s.SenderID, s.ReceiverID),
		p.setKind(s.Type, s.Content, s.Courier, false),
		s.Channel.Validate(),
		weightErr,
		p.setValues(s.DeclaredValue, s.InsuredValue),
		s.Status.Validate(),
		p.setEstimatedDays(s.EstimatedDays),
	); err != nil {
		return nil, err
	}

	p.channel = s.Channel
	p.weight = s.Weight
	p.status = s.Status
	p.history = slices.Clone(s.History)
	p.notifications = make([]Notification, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		p.notifications = append(p.notifications, cloneNotification(n))
	}
	if p.senderCountry == "" {
		p.senderCountry = HomeCountry
	}
	if p.receiverCountry == "" {
		p.receiverCountry = HomeCountry
	}

	return p, nil
}

// State returns the persisted form of the parcel. Slices are copied.
func (p *Parcel) State() State {
	return State{
		TrackingCode:    p.trackingCode,
		SenderID:        p.senderID,
		ReceiverID:      p.receiverID,
		Type:            p.parcelType,
		Content:         p.content,
		Weight:          p.weight,
		DeclaredValue:   p.declaredValue,
		Status:          p.status,
		Courier:         p.courier,
		Channel:         p.channel,
		CreatedAt:       p.createdAt,
		History:         p.History(),
		Notifications:   p.Notifications(),
		SenderCountry:   p.senderCountry,
		ReceiverCountry: p.receiverCountry,
		Insured:         p.insured,
		InsuredValue:    p.insuredValue,
		EstimatedDays:   p.estimatedDays,
		Priority:        p.priority,
		FreeDelivery:    p.freeDelivery,
	}
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) TrackingCode() TrackingCode     { return p.trackingCode }
func (p *Parcel) SenderID() int                  { return p.senderID }
func (p *Parcel) ReceiverID() int                { return p.receiverID }
func (p *Parcel) Type() Type                     { return p.parcelType }
func (p *Parcel) Content() Content               { return p.content }
func (p *Parcel) Weight() float64                { return p.weight }
func (p *Parcel) DeclaredValue() decimal.Decimal { return p.declaredValue }
func (p *Parcel) Status() Status                 { return p.status }
func (p *Parcel) Courier() Courier               { return p.courier }
func (p *Parcel) Channel() Channel               { return p.channel }
func (p *Parcel) CreatedAt() time.Time           { return p.createdAt }
func (p *Parcel) SenderCountry() string          { return p.senderCountry }
func (p *Parcel) ReceiverCountry() string        { return p.receiverCountry }
func (p *Parcel) Insured() bool                  { return p.insured }
func (p *Parcel) InsuredValue() decimal.Decimal  { return p.insuredValue }
func (p *Parcel) EstimatedDeliveryDays() int     { return p.estimatedDays }
func (p *Parcel) PriorityProcessing() bool       { return p.priority }
func (p *Parcel) FreeDelivery() bool             { return p.freeDelivery }
func (p *Parcel) History() []StatusChange        { return slices.Clone(p.history) }
func (p *Parcel) IsSender(clientID int) bool     { return p.senderID == clientID }
func (p *Parcel) References(clientID int) bool {
	return p.senderID == clientID || p.receiverID == clientID
}

// Notifications returns a copy of the notification log.
func (p *Parcel) Notifications() []Notification {
	out := make([]Notification, 0, len(p.notifications))
	for _, n := range p.notifications {
		out = append(out, cloneNotification(n))
	}
	return out
}

// NotificationsSince returns the notifications appended after the first n.
func (p *Parcel) NotificationsSince(n int) []Notification {
	if n >= len(p.notifications) {
		return nil
	}
	return p.Notifications()[max(n, 0):]
}

// RequiresOperatorConfirmation is true when the declared value exceeds
// ConfirmationThreshold.
func (p *Parcel) RequiresOperatorConfirmation() bool {
	return p.declaredValue.GreaterThan(ConfirmationThreshold)
}

// ChangeStatus moves the parcel to next and appends a history entry and a
// notification carrying note.
//
// Accepting a parcel that RequiresOperatorConfirmation fails with a
// ValueIsRequired error when operatorID is nil. Resolving the operator is the
// caller's job.
func (p *Parcel) ChangeStatus(next Status, note string, operatorID *int, now time.Time) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if newStatus == AcceptedByOperator && p.RequiresOperatorConfirmation() && operatorID == nil {
		return errs.NewValueIsRequiredErrorWithCause(
			"operatorId",
			fmt.Errorf("declared value %s exceeds %s and needs operator confirmation",
				p.declaredValue.StringFixed(2), ConfirmationThreshold.String()),
		)
	}

	note = strings.TrimSpace(note)
	p.status = newStatus
	p.history = append(p.history, StatusChange{Status: newStatus, Timestamp: now, Note: note})
	p.notifications = append(p.notifications, newNotification(newStatus, note, now))
	return nil
}

// ApplyDelay adds days to the estimate and appends a delay notification in the
// current status.
func (p *Parcel) ApplyDelay(reason DelayReason, days int, now time.Time) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	if days <= 0 {
		return errs.NewValueIsOutOfRangeError("delayDays", days, 1, nil)
	}

	p.estimatedDays += days
	n := newNotification(p.status, "", now)
	n.DelayReason = &reason
	n.DelayDays = &days
	p.notifications = append(p.notifications, n)
	return nil
}

func (p *Parcel) setTrackingCode(code TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setParties(senderID, receiverID int) error {
	var err error
	if senderID <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("senderId", fmt.Errorf("%d is not greater than 0", senderID)))
	}
	if receiverID <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("receiverId", fmt.Errorf("%d is not greater than 0", receiverID)))
	}
	if err != nil {
		return err
	}
	p.senderID = senderID
	p.receiverID = receiverID
	return nil
}

func (p *Parcel) setKind(t Type, c Content, courier Courier, dangerous bool) error {
	if err := errors.Join(t.Validate(), c.Validate(), courier.Validate()); err != nil {
		return err
	}
	if dangerous && t == International {
		return ErrDangerousInternational
	}
	p.parcelType = t
	p.content = c
	p.courier = courier
	return nil
}

func (p *Parcel) setChannelAndWeight(channel Channel, weight float64) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	if !positiveFinite(weight) || weight > channel.MaxWeight() {
		return errs.NewValueIsOutOfRangeErrorWithCause("weight", weight, 0, channel.MaxWeight(),
			fmt.Errorf("%s accepts up to %.0f kg", channel, channel.MaxWeight()))
	}
	p.channel = channel
	p.weight = weight
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p *Parcel) setValues(declared, insured decimal.Decimal) error {
	var err error
	if declared.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("declaredValue", declared.String(), 0, nil))
	}
	if insured.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("insuredValue", insured.String(), 0, nil))
	}
	if err != nil {
		return err
	}
	p.declaredValue = declared
	p.insuredValue = insured
	return nil
}

func (p *Parcel) setEstimatedDays(days int) error {
	if days < 0 {
		return errs.NewValueIsOutOfRangeError("estimatedDeliveryDays", days, 0, nil)
	}
	p.estimatedDays = days
	return nil
}

func (p *Parcel) setReceiverCountry(country string) {
	country = strings.TrimSpace(country)
	if country == "" {
		country = HomeCountry
	}
	p.receiverCountry = country
}
