package cli

import (
	"fmt"
	"strings"
	"time"
)

const (
	// etaWarmup is the minimum elapsed time before an estimate is shown.
	etaWarmup = 100 * time.Millisecond
	// etaSmoothing weights the latest observed rate in the moving average.
	etaSmoothing = 0.3
	// maxETA caps estimates produced by a near-zero rate.
	maxETA = 24 * time.Hour
)

// ProgressWithETA extends ProgressState with an estimate of the time left
// in a verification batch.
type ProgressWithETA struct {
	*ProgressState
	now       func() time.Time
	startTime time.Time
	lastAt    time.Time
	lastValue float64
	// rate is the smoothed fraction of the batch completed per second.
	rate float64
}

// NewProgressWithETA creates a progress tracker with ETA estimation.
//
// Parameters:
//   - numWorkers: The number of workers reporting progress.
//
// Returns:
//   - *ProgressWithETA: A new progress tracker.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	return newProgressWithClock(numWorkers, time.Now)
}

func newProgressWithClock(numWorkers int, now func() time.Time) *ProgressWithETA {
	start := now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		now:           now,
		startTime:     start,
		lastAt:        start,
	}
}

// UpdateWithETA records a worker's progress and refreshes the rate. The
// first rate is the batch average since start; later ones are blended in
// with weight etaSmoothing.
//
// Returns:
//   - progress: The average progress (0.0 to 1.0).
//   - eta: The time remaining, 0 while warming up.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	t := p.now()
	elapsed := t.Sub(p.startTime)
	if elapsed < etaWarmup || progress <= 0 {
		p.lastAt, p.lastValue = t, progress
		return progress, 0
	}

	if dt := t.Sub(p.lastAt).Seconds(); dt > 0 && progress > p.lastValue {
		if p.rate == 0 {
			p.rate = progress / elapsed.Seconds()
		} else {
			instant := (progress - p.lastValue) / dt
			p.rate += etaSmoothing * (instant - p.rate)
		}
		p.lastAt, p.lastValue = t, progress
	}
	return progress, p.GetETA()
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	progress := p.CalculateAverage()
	if p.rate <= 0 || progress >= 1 {
		return 0
	}
	seconds := (1 - progress) / p.rate
	if seconds >= maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an estimate compactly: "< 1s", "45s", "2m30s", "1h15m".
// Zero or negative estimates read "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta >= time.Hour:
		eta = eta.Truncate(time.Minute)
	default:
		eta = eta.Truncate(time.Second)
	}
	s := eta.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// FormatProgressBarWithETA combines the progress percentage, a bar and the
// estimate, e.g. "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
