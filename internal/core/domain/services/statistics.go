package services

import (
	"cmp"
	"slices"
	"time"

	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
)

// TopOperatorsLimit is the number of operators reported in Statistics.TopOperators.
const TopOperatorsLimit = 3

type StatusCount struct {
	Status parcel.Status
	Count  int
}

type OperatorRank struct {
	ID        int
	Name      string
	Processed int
}

type DestinationCount struct {
	Country string
	Count   int
}

// Statistics summarizes parcels created in a period.
type Statistics struct {
	From  *time.Time
	To    *time.Time
	Total int
	// ByStatus lists every status in lifecycle order, including zero counts.
	ByStatus []StatusCount
	// AvgLocalDays and AvgInternationalDays average the estimated delivery days of
	// delivered parcels. Nil when no such parcel exists.
	AvgLocalDays         *float64
	AvgInternationalDays *float64
	TopOperators         []OperatorRank
	// Destinations are ordered by count descending, then country ascending.
	Destinations []DestinationCount
}

// ComputeStatistics aggregates parcels whose creation time lies in [from, to].
// Nil bounds are open. Operators are ranked over their lifetime counters.
func ComputeStatistics(parcels []*parcel.Parcel, operators []*operator.Operator, from, to *time.Time) Statistics {
	stats := Statistics{From: from, To: to}

	byStatus := make(map[parcel.Status]int, len(parcel.Statuses))
	byCountry := map[string]int{}
	var localSum, localN, intlSum, intlN int

	for _, p := range parcels {
		if p == nil {
			continue
		}
		if from != nil && p.CreatedAt().Before(*from) {
			continue
		}
		if to != nil && p.CreatedAt().After(*to) {
			continue
		}

		stats.Total++
		byStatus[p.Status()]++
		byCountry[p.ReceiverCountry()]++

		if p.Status() != parcel.Delivered {
			continue
		}
		switch p.Type() {
		case parcel.Local:
			localSum += p.EstimatedDeliveryDays()
			localN++
		case parcel.International:
			intlSum += p.EstimatedDeliveryDays()
			intlN++
		case parcel.TypeUnknown:
		}
	}

	for _, s := range parcel.Statuses {
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: s, Count: byStatus[s]})
	}
	stats.AvgLocalDays = average(localSum, localN)
	stats.AvgInternationalDays = average(intlSum, intlN)

	for country, n := range byCountry {
		stats.Destinations = append(stats.Destinations, DestinationCount{Country: country, Count: n})
	}
	slices.SortFunc(stats.Destinations, func(a, b DestinationCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})

	for _, o := range operators {
		if o != nil {
			stats.TopOperators = append(stats.TopOperators, OperatorRank{ID: o.ID(), Name: o.Name(), Processed: o.Processed()})
		}
	}
	slices.SortStableFunc(stats.TopOperators, func(a, b OperatorRank) int {
		if c := cmp.Compare(b.Processed, a.Processed); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(stats.TopOperators) > TopOperatorsLimit {
		stats.TopOperators = stats.TopOperators[:TopOperatorsLimit]
	}

	return stats
}

// Count returns the number of parcels in status s.
func (s Statistics) Count(status parcel.Status) int {
	for _, sc := range s.ByStatus {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}

func average(sum, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := float64(sum) / float64(n)
	return &v
}
