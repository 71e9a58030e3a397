package parcel

import (
	"fmt"
	"strings"

	"postal/internal/pkg/errs"
)

// parseName finds the value whose name matches s case-insensitively.
func parseName[T comparable](kind string, s string, names map[T]string, unknown T) (T, error) {
	for v, name := range names {
		if v != unknown && strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return unknown, errs.NewValueIsInvalidErrorWithCause(kind+" is invalid", fmt.Errorf("%q is not a valid %s", s, kind))
}

func nameOf[T comparable](v T, names map[T]string) string {
	if s, ok := names[v]; ok {
		return s
	}
	return "Unknown"
}

func validateName[T comparable](kind string, v T, names map[T]string, unknown T) error {
	if _, ok := names[v]; !ok || v == unknown {
		return errs.NewValueIsInvalidErrorWithCause(kind+" is invalid", fmt.Errorf("%v is not a valid %s", v, kind))
	}
	return nil
}

// Type separates domestic from international shipping.
type Type int

const (
	TypeUnknown Type = iota
	Local
	International
)

var typeNames = map[Type]string{
	Local:         "Local",
	International: "International",
}

func ParseType(s string) (Type, error) { return parseName("type", s, typeNames, TypeUnknown) }
func (t Type) String() string          { return nameOf(t, typeNames) }
func (t Type) Validate() error         { return validateName("type", t, typeNames, TypeUnknown) }

// Content is the content category of a parcel.
type Content int

const (
	ContentUnknown Content = iota
	Document
	Package
	Fragile
)

var contentNames = map[Content]string{
	Document: "Document",
	Package:  "Package",
	Fragile:  "Fragile",
}

func ParseContent(s string) (Content, error) {
	return parseName("content", s, contentNames, ContentUnknown)
}
func (c Content) String() string  { return nameOf(c, contentNames) }
func (c Content) Validate() error { return validateName("content", c, contentNames, ContentUnknown) }

// Channel is the delivery mechanism for the final leg.
type Channel int

const (
	ChannelUnknown Channel = iota
	Office
	Parcelbox
	Address
	Taxi
)

var channelNames = map[Channel]string{
	Office:    "Office",
	Parcelbox: "Parcelbox",
	Address:   "Address",
	Taxi:      "Taxi",
}

func ParseChannel(s string) (Channel, error) {
	return parseName("channel", s, channelNames, ChannelUnknown)
}
func (c Channel) String() string  { return nameOf(c, channelNames) }
func (c Channel) Validate() error { return validateName("channel", c, channelNames, ChannelUnknown) }

// MaxWeight is the weight ceiling in kilograms for the channel.
func (c Channel) MaxWeight() float64 {
	switch c {
	case Parcelbox:
		return 30
	case Address:
		return 50
	case Taxi:
		return 20
	case Office, ChannelUnknown:
	}
	return 100
}

// Courier is the carrier service selected for the parcel.
type Courier int

const (
	CourierUnknown Courier = iota
	Ukrposhta
	NovaPoshta
	MeestExpress
)

var courierNames = map[Courier]string{
	Ukrposhta:    "Ukrposhta",
	NovaPoshta:   "NovaPoshta",
	MeestExpress: "MeestExpress",
}

func ParseCourier(s string) (Courier, error) {
	return parseName("courier", s, courierNames, CourierUnknown)
}
func (c Courier) String() string  { return nameOf(c, courierNames) }
func (c Courier) Validate() error { return validateName("courier", c, courierNames, CourierUnknown) }

// DelayReason explains an injected delivery delay.
type DelayReason int

const (
	DelayReasonUnknown DelayReason = iota
	Holiday
	Accident
	BorderDelay
	TransportBreakdown
	BadWeather
	CustomsInspection
)

// DelayReasons is the fixed set delays are drawn from.
var DelayReasons = []DelayReason{Holiday, Accident, BorderDelay, TransportBreakdown, BadWeather, CustomsInspection}

var delayReasonNames = map[DelayReason]string{
	Holiday:            "Holiday",
	Accident:           "Accident",
	BorderDelay:        "BorderDelay",
	TransportBreakdown: "TransportBreakdown",
	BadWeather:         "BadWeather",
	CustomsInspection:  "CustomsInspection",
}

func ParseDelayReason(s string) (DelayReason, error) {
	return parseName("delay reason", s, delayReasonNames, DelayReasonUnknown)
}
func (r DelayReason) String() string { return nameOf(r, delayReasonNames) }
func (r DelayReason) Validate() error {
	return validateName("delay reason", r, delayReasonNames, DelayReasonUnknown)
}
