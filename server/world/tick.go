package world

import (
	"context"
	"math"
	"time"
)

const (
	tpsSampleSize       = 20
	tpsWarningThreshold = 0.95
)

// Run ticks the World TickRate times per second with the viewer passed until
// ctx is cancelled. The tick rate achieved is sampled over every
// tpsSampleSize ticks and a warning is logged once when it drops below 95% of
// TickRate.
func (w *World) Run(ctx context.Context, viewer Viewer) error {
	tc := time.NewTicker(time.Second / time.Duration(w.conf.TickRate))
	defer tc.Stop()

	threshold := float64(w.conf.TickRate) * tpsWarningThreshold
	lastTick := time.Now()
	var (
		durationSum time.Duration
		ticksCount  int
		warned      bool
	)
	for {
		select {
		case <-tc.C:
			tickStart := time.Now()
			duration := tickStart.Sub(lastTick)
			lastTick = tickStart
			if duration > 0 {
				durationSum += duration
				ticksCount++
				if ticksCount >= tpsSampleSize {
					avg := durationSum / time.Duration(ticksCount)
					tps := 1.0 / avg.Seconds()
					w.tps.Store(math.Float64bits(tps))
					if tps < threshold {
						if !warned {
							w.conf.Log.Warn("TPS dropped below threshold.", "tps", tps, "target", w.conf.TickRate)
							warned = true
						}
					} else if warned {
						warned = false
					}
					durationSum = 0
					ticksCount = 0
				}
			}
			w.Tick(viewer.Position())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
