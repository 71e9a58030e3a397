package parcel

import (
	"strings"
	"time"
)

// Filter is a conjunction of optional search criteria. The zero Filter matches
// every parcel.
type Filter struct {
	// Query matches a substring of the tracking code, or any parcel whose sender
	// or receiver is in MatchingClients.
	Query string
	// MatchingClients holds the ids returned by the client search for Query.
	MatchingClients map[int]struct{}
	Status          *Status
	// Date matches the calendar day of the creation time in the zone it was
	// recorded in. Only the year, month and day of Date are used.
	Date *time.Time
}

func (f Filter) Matches(p *Parcel) bool {
	if q := strings.TrimSpace(f.Query); q != "" && !f.matchesQuery(p, q) {
		return false
	}
	if f.Status != nil && p.status != *f.Status {
		return false
	}
	if f.Date != nil && !sameDay(p.createdAt, *f.Date) {
		return false
	}
	return true
}

func (f Filter) matchesQuery(p *Parcel, q string) bool {
	if strings.Contains(p.trackingCode.String(), q) {
		return true
	}
	_, sender := f.MatchingClients[p.senderID]
	_, receiver := f.MatchingClients[p.receiverID]
	return sender || receiver
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
