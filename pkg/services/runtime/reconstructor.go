// Package runtime reconstructs the actual running time of a resource from a
// sparse, possibly incomplete sequence of lifecycle audit events.
package runtime

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Reconstruction is the outcome of one reconstruction call. Synthetic is set
// when no events existed at all and the single interval was estimated from
// the launch time; callers flag such results low-confidence.
type Reconstruction struct {
	Intervals []domain.Interval
	Synthetic bool
}

// TotalHours is the measured running time across all intervals.
func (r Reconstruction) TotalHours() float64 {
	return domain.TotalDuration(r.Intervals).Hours()
}

// Reconstruct converts the resource's ordered event stream within
// [windowStart, now] into non-overlapping, chronologically ordered running
// intervals clipped to that window.
//
// Ambiguous events (duplicate starts, unpaired stops with no earlier
// boundary to anchor on) are logged and discarded, never fatal.
func Reconstruct(
	ctx context.Context,
	res domain.Resource,
	events []domain.AuditEvent,
	windowStart, now time.Time,
) Reconstruction {
	logger := zerolog.Ctx(ctx)

	relevant := filterLifecycleEvents(events)
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Timestamp.Before(relevant[j].Timestamp)
	})

	if len(relevant) == 0 {
		return reconstructWithoutEvents(res, windowStart, now)
	}

	var intervals []domain.Interval
	var sessionStart *time.Time

	for _, ev := range relevant {
		switch ev.Name {
		case domain.EventStart:
			if sessionStart != nil {
				logger.Debug().
					Str("resource", res.ID).
					Time("at", ev.Timestamp).
					Msg("duplicate start event ignored")
				continue
			}
			ts := ev.Timestamp
			sessionStart = &ts

		case domain.EventStop, domain.EventTerminate:
			if sessionStart != nil {
				intervals = appendClipped(intervals, *sessionStart, ev.Timestamp, windowStart, now)
				sessionStart = nil
				continue
			}
			// The stream opens with a stop: the resource was already running
			// when the window began. Only the first event may anchor on the
			// launch time; any later unpaired stop (stop-then-terminate and
			// the like) has no session to close and is discarded.
			if len(intervals) > 0 {
				logger.Debug().
					Str("resource", res.ID).
					Time("at", ev.Timestamp).
					Msg("unpaired stop event ignored")
				continue
			}
			if res.LaunchTime == nil {
				logger.Debug().
					Str("resource", res.ID).
					Time("at", ev.Timestamp).
					Msg("unpaired stop event with unknown launch time discarded")
				continue
			}
			start := windowStart
			if res.LaunchTime.After(start) {
				start = *res.LaunchTime
			}
			intervals = appendClipped(intervals, start, ev.Timestamp, windowStart, now)
		}
	}

	if sessionStart != nil {
		if res.State == domain.ResourceStateRunning {
			intervals = appendClipped(intervals, *sessionStart, now, windowStart, now)
		} else {
			// The resource stopped outside the observed window. Missing
			// data, not an error.
			logger.Debug().
				Str("resource", res.ID).
				Time("session_start", *sessionStart).
				Msg("open session for non-running resource discarded")
		}
	}

	return Reconstruction{Intervals: intervals}
}

// reconstructWithoutEvents handles the zero-event edge: a running resource
// with a known launch time yields one estimated interval; anything else is
// explicit "no data", never invented.
func reconstructWithoutEvents(res domain.Resource, windowStart, now time.Time) Reconstruction {
	if res.State != domain.ResourceStateRunning || res.LaunchTime == nil {
		return Reconstruction{}
	}
	start := *res.LaunchTime
	if windowStart.After(start) {
		start = windowStart
	}
	if !now.After(start) {
		return Reconstruction{}
	}
	return Reconstruction{
		Intervals: []domain.Interval{{Start: start, End: now}},
		Synthetic: true,
	}
}

func filterLifecycleEvents(events []domain.AuditEvent) []domain.AuditEvent {
	out := make([]domain.AuditEvent, 0, len(events))
	for _, ev := range events {
		switch ev.Name {
		case domain.EventStart, domain.EventStop, domain.EventTerminate:
			out = append(out, ev)
		}
	}
	return out
}

// appendClipped clips [start, end] to [windowStart, now] and appends the
// result when it still has positive length.
func appendClipped(intervals []domain.Interval, start, end, windowStart, now time.Time) []domain.Interval {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(now) {
		end = now
	}
	if !end.After(start) {
		return intervals
	}
	return append(intervals, domain.Interval{Start: start, End: end})
}
