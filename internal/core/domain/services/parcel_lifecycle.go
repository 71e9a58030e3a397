package services

import (
	"errors"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DelayProbability is the chance that one SimulateDelay call injects a delay.
const DelayProbability = 0.05

// Estimated delivery windows in days, half-open.
const (
	localMinDays         = 2
	localMaxDays         = 6
	internationalMinDays = 7
	internationalMaxDays = 15
	minDelayDays         = 1
	maxDelayDays         = 6
)

var (
	ErrSenderIsRequired   = errs.NewValueIsRequiredError("sender")
	ErrReceiverIsRequired = errs.NewValueIsRequiredError("receiver")
	ErrParcelIsRequired   = errs.NewValueIsRequiredError("parcel")
)

// CreateRequest carries the caller-supplied attributes of a new parcel.
type CreateRequest struct {
	Type              parcel.Type
	Content           parcel.Content
	Weight            float64
	DeclaredValue     decimal.Decimal
	Courier           parcel.Courier
	Channel           parcel.Channel
	ReceiverCountry   string
	Insured           bool
	InsuredValue      decimal.Decimal
	Dangerous         bool
	WantsFreeDelivery bool
}

// InstructionKind names a client mutation the orchestrating caller must perform
// after a parcel is created.
type InstructionKind int

const (
	// RecordSenderParcel increments the sender's parcel count and recomputes the tier.
	RecordSenderParcel InstructionKind = iota + 1
	// ConsumeFreeDelivery marks the sender's yearly free delivery as used.
	ConsumeFreeDelivery
)

func (k InstructionKind) String() string {
	switch k {
	case RecordSenderParcel:
		return "RecordSenderParcel"
	case ConsumeFreeDelivery:
		return "ConsumeFreeDelivery"
	}
	return "Unknown"
}

// Instruction is one pending client mutation.
type Instruction struct {
	Kind     InstructionKind
	ClientID int
}

// CreateOutcome is the result of ParcelLifecycle.Create.
type CreateOutcome struct {
	Parcel       *parcel.Parcel
	Instructions []Instruction
	// FreeDeliveryDenied is set when free delivery was requested but the sender
	// was not eligible. The parcel is still created, at full price.
	FreeDeliveryDenied bool
}

// OperatorCredit tells the caller which operator confirmed a parcel.
type OperatorCredit struct {
	OperatorID int
}

// StatusOutcome is the result of ParcelLifecycle.ChangeStatus.
type StatusOutcome struct {
	Parcel *parcel.Parcel
	// Credit is set only when an operator moved the parcel to AcceptedByOperator.
	Credit *OperatorCredit
}

// DelayOutcome is the result of ParcelLifecycle.SimulateDelay.
type DelayOutcome struct {
	HasDelay    bool
	Reason      parcel.DelayReason
	Days        int
	NewEstimate int
}

// ParcelLifecycle creates parcels and drives their state machine. It decides
// derived fields (estimated delivery window, priority, free delivery) and returns
// the client and operator side effects as explicit outcomes instead of applying them.
type ParcelLifecycle struct {
	clock  kernel.Clock
	random kernel.RandomSource
}

func NewParcelLifecycle(clock kernel.Clock, random kernel.RandomSource) ParcelLifecycle {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if random == nil {
		random = kernel.NewRandomSource(0, 0)
	}
	return ParcelLifecycle{clock: clock, random: random}
}

// Create builds a new parcel from req for sender and receiver under code.
//
// Business rules applied:
//   - Estimated delivery days are drawn from [2,6) for Local and [7,15) for International
//   - Priority processing is set iff the sender is a Legend at creation time
//   - Free delivery is granted iff requested and the sender's yearly gate is open
func (l ParcelLifecycle) Create(
	sender *client.Client,
	receiver *client.Client,
	code parcel.TrackingCode,
	req CreateRequest,
) (CreateOutcome, error) {
	if err := errors.Join(validateClient(sender, ErrSenderIsRequired), validateClient(receiver, ErrReceiverIsRequired)); err != nil {
		return CreateOutcome{}, err
	}

	now := l.clock.Now()
	freeDelivery := req.WantsFreeDelivery && sender.CanUseFreeDelivery(now)

	p, err := parcel.NewParcel(parcel.Spec{
		TrackingCode:    code,
		SenderID:        sender.ID(),
		ReceiverID:      receiver.ID(),
		Type:            req.Type,
		Content:         req.Content,
		Weight:          req.Weight,
		DeclaredValue:   req.DeclaredValue,
		Courier:         req.Courier,
		Channel:         req.Channel,
		ReceiverCountry: req.ReceiverCountry,
		Insured:         req.Insured,
		InsuredValue:    req.InsuredValue,
		Dangerous:       req.Dangerous,
		EstimatedDays:   l.estimateDays(req.Type),
		Priority:        sender.IsLegend(),
		FreeDelivery:    freeDelivery,
	}, now)
	if err != nil {
		return CreateOutcome{}, err
	}

	out := CreateOutcome{
		Parcel:             p,
		Instructions:       []Instruction{{Kind: RecordSenderParcel, ClientID: sender.ID()}},
		FreeDeliveryDenied: req.WantsFreeDelivery && !freeDelivery,
	}
	if freeDelivery {
		out.Instructions = append(out.Instructions, Instruction{Kind: ConsumeFreeDelivery, ClientID: sender.ID()})
	}
	return out, nil
}

// ChangeStatus moves p to next. op is the resolved confirming operator or nil.
// The operator is credited once per parcel, on the move to AcceptedByOperator.
// An operator named on any other change is recorded in history only.
func (l ParcelLifecycle) ChangeStatus(p *parcel.Parcel, next parcel.Status, note string, op *operator.Operator) (StatusOutcome, error) {
	if p == nil {
		return StatusOutcome{}, ErrParcelIsRequired
	}
	if err := p.Validate(); err != nil {
		return StatusOutcome{}, err
	}

	var operatorID *int
	if op != nil {
		if err := op.Validate(); err != nil {
			return StatusOutcome{}, err
		}
		id := op.ID()
		operatorID = &id
	}

	if err := p.ChangeStatus(next, note, operatorID, l.clock.Now()); err != nil {
		return StatusOutcome{}, err
	}

	out := StatusOutcome{Parcel: p}
	if operatorID != nil && next == parcel.AcceptedByOperator {
		out.Credit = &OperatorCredit{OperatorID: *operatorID}
	}
	return out, nil
}

// SimulateDelay injects a random delay with probability DelayProbability. Each call
// draws independently; repeated calls are not idempotent.
func (l ParcelLifecycle) SimulateDelay(p *parcel.Parcel) (DelayOutcome, error) {
	if p == nil {
		return DelayOutcome{}, ErrParcelIsRequired
	}
	if err := p.Validate(); err != nil {
		return DelayOutcome{}, err
	}

	if l.random.Float64() >= DelayProbability {
		return DelayOutcome{NewEstimate: p.EstimatedDeliveryDays()}, nil
	}

	reason := parcel.DelayReasons[l.random.IntN(len(parcel.DelayReasons))]
	days := kernel.IntInRange(l.random, minDelayDays, maxDelayDays)
	if err := p.ApplyDelay(reason, days, l.clock.Now()); err != nil {
		return DelayOutcome{}, err
	}

	return DelayOutcome{
		HasDelay:    true,
		Reason:      reason,
		Days:        days,
		NewEstimate: p.EstimatedDeliveryDays(),
	}, nil
}

func (l ParcelLifecycle) estimateDays(t parcel.Type) int {
	if t == parcel.International {
		return kernel.IntInRange(l.random, internationalMinDays, internationalMaxDays)
	}
	return kernel.IntInRange(l.random, localMinDays, localMaxDays)
}

func validateClient(c *client.Client, missing error) error {
	if c == nil {
		return missing
	}
	return c.Validate()
}
