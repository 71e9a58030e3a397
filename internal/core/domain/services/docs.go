// Package services holds the domain services of the postal core: the pricing
// rules, the parcel lifecycle, tracking code generation and the statistics
// aggregator. They operate on aggregates passed in by the application layer and
// never touch storage themselves.
package services
