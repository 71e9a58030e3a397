package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/loyalty"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("fullName")
	ErrPhoneIsRequired    = errs.NewValueIsRequiredError("phone")
	// ErrClientIsNotConstructed is returned when using a zero-value Client.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient or RestoreClient")
)

// Contacts groups the mutable contact fields of a client.
type Contacts struct {
	FullName string
	Phone    string
	Email    string
	Address  string
}

// Client is the aggregate root for a registered customer.
//
// The loyalty fields (tier, parcel count, last discount and free delivery use) are
// only changed through RecordParcel, UseDiscount and UseFreeDelivery, so the tier
// always matches the parcel count.
type Client struct {
	id               int
	contacts         Contacts
	category         Category
	tier             loyalty.Tier
	parcelCount      int
	lastDiscountUse  *time.Time
	lastFreeDelivery *time.Time
	guard            guard.ConstructorGuard
}

// NewClient registers a new Beginner client with no parcels.
//
// Example:
//
//	c, err := client.NewClient(7, client.Contacts{FullName: "Olena Koval", Phone: "+380501112233"}, client.Individual)
func NewClient(id int, contacts Contacts, category Category) (*Client, error) {
	c := &Client{
		tier:  loyalty.Beginner,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setContacts(contacts),
		c.setCategory(category),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreClient rebuilds a Client from persisted state. The tier is derived from
// parcelCount; a stored tier that disagrees with the count is ignored.
func RestoreClient(
	id int,
	contacts Contacts,
	category Category,
	parcelCount int,
	lastDiscountUse *time.Time,
	lastFreeDelivery *time.Time,
) (*Client, error) {
	c := &Client{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setContacts(contacts),
		c.setCategory(category),
		c.setParcelCount(parcelCount),
	); err != nil {
		return nil, err
	}

	c.lastDiscountUse = copyTime(lastDiscountUse)
	c.lastFreeDelivery = copyTime(lastFreeDelivery)

	return c, nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

func (c *Client) ID() int                      { return c.id }
func (c *Client) Contacts() Contacts           { return c.contacts }
func (c *Client) FullName() string             { return c.contacts.FullName }
func (c *Client) Category() Category           { return c.category }
func (c *Client) Tier() loyalty.Tier           { return c.tier }
func (c *Client) ParcelCount() int             { return c.parcelCount }
func (c *Client) LastDiscountUse() *time.Time  { return copyTime(c.lastDiscountUse) }
func (c *Client) LastFreeDelivery() *time.Time { return copyTime(c.lastFreeDelivery) }
func (c *Client) IsLegend() bool               { return c.tier == loyalty.Legend }

// UpdateContacts replaces the contact fields. Loyalty state is untouched.
func (c *Client) UpdateContacts(contacts Contacts) error {
	return c.setContacts(contacts)
}

// RecordParcel increments the parcel count and recomputes the tier.
func (c *Client) RecordParcel() {
	c.parcelCount++
	c.tier = loyalty.TierFor(c.parcelCount)
}

// CanUseDiscount reports whether the monthly discount gate is open at now.
func (c *Client) CanUseDiscount(now time.Time) bool {
	return loyalty.DiscountAvailable(c.lastDiscountUse, now)
}

// DiscountRate is the rate a discounted parcel would get at now, including the
// Legend holiday override. It does not look at the gate.
func (c *Client) DiscountRate(now time.Time) decimal.Decimal {
	return loyalty.EffectiveDiscountRate(c.tier, now)
}

// UseDiscount records now as the last discount use. It fails with a policy error
// while the gate is closed.
func (c *Client) UseDiscount(now time.Time) error {
	if !c.CanUseDiscount(now) {
		return errs.NewPolicyDeniedError("discount", fmt.Sprintf("client %d used a discount on %s",
			c.id, c.lastDiscountUse.Format(time.DateOnly)))
	}
	c.lastDiscountUse = &now
	return nil
}

// CanUseFreeDelivery reports whether the client is a Legend with the yearly gate open.
func (c *Client) CanUseFreeDelivery(now time.Time) bool {
	return loyalty.FreeDeliveryAvailable(c.tier, c.lastFreeDelivery, now)
}

// UseFreeDelivery records now as the last free delivery.
func (c *Client) UseFreeDelivery(now time.Time) error {
	if !c.CanUseFreeDelivery(now) {
		return errs.NewPolicyDeniedError("freeDelivery", fmt.Sprintf("client %d is %s and not eligible", c.id, c.tier))
	}
	c.lastFreeDelivery = &now
	return nil
}

// MatchesQuery is the free-text client search: a case-insensitive substring match
// over full name, email and address, and a plain substring match over the phone.
// An empty query matches every client.
func (c *Client) MatchesQuery(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.contacts.FullName), q) ||
		strings.Contains(strings.ToLower(c.contacts.Email), q) ||
		strings.Contains(strings.ToLower(c.contacts.Address), q) ||
		strings.Contains(c.contacts.Phone, query)
}

func (c *Client) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id
	return nil
}

func (c *Client) setContacts(contacts Contacts) error {
	contacts.FullName = strings.TrimSpace(contacts.FullName)
	contacts.Phone = strings.TrimSpace(contacts.Phone)
	contacts.Email = strings.TrimSpace(contacts.Email)
	contacts.Address = strings.TrimSpace(contacts.Address)

	var err error
	if contacts.FullName == "" {
		err = errors.Join(err, ErrFullNameIsRequired)
	}
	if contacts.Phone == "" {
		err = errors.Join(err, ErrPhoneIsRequired)
	}
	if err != nil {
		return err
	}

	c.contacts = contacts
	return nil
}

func (c *Client) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}

func (c *Client) setParcelCount(count int) error {
	if count < 0 {
		return errs.NewValueIsOutOfRangeError("parcelCount", count, 0, nil)
	}
	c.parcelCount = count
	c.tier = loyalty.TierFor(count)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
