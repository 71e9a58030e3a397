package services

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"
)

// MaxTrackingCodeAttempts bounds the collision retries of TrackingCodeGenerator.
const MaxTrackingCodeAttempts = 10

// TrackingCodeExists reports whether a code is already taken.
type TrackingCodeExists func(ctx context.Context, code parcel.TrackingCode) (bool, error)

// TrackingCodeGenerator produces "yyyyMMddHHmmss"+suffix codes and retries with a
// fresh suffix when the candidate is already taken.
type TrackingCodeGenerator struct {
	clock  kernel.Clock
	random kernel.RandomSource
}

func NewTrackingCodeGenerator(clock kernel.Clock, random kernel.RandomSource) TrackingCodeGenerator {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if random == nil {
		random = kernel.NewRandomSource(0, 0)
	}
	return TrackingCodeGenerator{clock: clock, random: random}
}

// Next returns an unused code or an error after MaxTrackingCodeAttempts collisions.
func (g TrackingCodeGenerator) Next(ctx context.Context, exists TrackingCodeExists) (parcel.TrackingCode, error) {
	now := g.clock.Now()
	for range MaxTrackingCodeAttempts {
		suffix := kernel.IntInRange(g.random, parcel.MinTrackingSuffix, parcel.MaxTrackingSuffix+1)
		code, err := parcel.GenerateTrackingCode(now, suffix)
		if err != nil {
			return parcel.TrackingCode{}, err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return parcel.TrackingCode{}, err
		}
		if !taken {
			return code, nil
		}
	}
	return parcel.TrackingCode{}, fmt.Errorf("no free tracking code after %d attempts", MaxTrackingCodeAttempts)
}
