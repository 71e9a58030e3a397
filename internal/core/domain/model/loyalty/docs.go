// Package loyalty derives a client's entitlements from their sending history.
//
// The package includes:
//   - Tier: the loyalty classification derived from the lifetime parcel count
//   - Rate helpers: the tier discount and the Legend holiday override
//   - Gating: minimum-elapsed-time rules for the monthly discount and the yearly
//     free delivery perk
//
// Key business rules:
//   - Tier is a monotonic function of the parcel count: >=200 Legend, >=51 Pro,
//     >=11 Active, otherwise Beginner
//   - Discount rates are 5%, 10%, 15% and 20%; a Legend gets 35% between
//     Dec 20 and Jan 7 inclusive
//   - The discount may be used again after 30 days, free delivery after 365 days
//     and only by a Legend
//
// Everything here is pure: callers pass "now" explicitly.
package loyalty
