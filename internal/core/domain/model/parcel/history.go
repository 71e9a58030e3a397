package parcel

import (
	"time"

	"postal/internal/core/domain/model/kernel"
)

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	Note      string
}

// Notification is one entry of the client-facing notification log. Delay
// notifications carry the reason and the number of days added.
type Notification struct {
	ID          kernel.UUID
	Timestamp   time.Time
	Status      Status
	Note        string
	DelayReason *DelayReason
	DelayDays   *int
}

// HasDelay reports whether the notification announces a delay.
func (n Notification) HasDelay() bool {
	return n.DelayReason != nil
}

func newNotification(status Status, note string, now time.Time) Notification {
	return Notification{
		ID:        kernel.NewUUID(),
		Timestamp: now,
		Status:    status,
		Note:      note,
	}
}

func cloneNotification(n Notification) Notification {
	out := n
	if n.DelayReason != nil {
		r := *n.DelayReason
		out.DelayReason = &r
	}
	if n.DelayDays != nil {
		d := *n.DelayDays
		out.DelayDays = &d
	}
	return out
}
