package cli

import (
	"strings"
	"testing"
	"time"
)

// fakeClock is advanced by hand so that rates are exact.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func within(got, want, tol time.Duration) bool { return got >= want-tol && got <= want+tol }

func TestNewProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(3)
	if p.ProgressState == nil || p.numWorkers != 3 {
		t.Fatalf("unexpected state %+v", p.ProgressState)
	}
	if p.rate != 0 || p.startTime.IsZero() {
		t.Errorf("rate = %f, start = %v", p.rate, p.startTime)
	}
	if p.GetETA() != 0 {
		t.Error("no estimate before any progress")
	}
}

func TestUpdateWithETAWarmup(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	p := newProgressWithClock(2, clock.now)

	clock.advance(50 * time.Millisecond)
	progress, eta := p.UpdateWithETA(0, 0.5)
	if progress != 0.25 || eta != 0 {
		t.Errorf("warmup update = (%f, %v), want (0.25, 0)", progress, eta)
	}
	if p.rate != 0 {
		t.Error("no rate may be derived during warmup")
	}
}

func TestUpdateWithETASmoothing(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	p := newProgressWithClock(1, clock.now)

	// First rate: 0.2 of the batch in 200ms, so 1.0/s and 800ms left.
	clock.advance(200 * time.Millisecond)
	_, eta := p.UpdateWithETA(0, 0.2)
	if !within(eta, 800*time.Millisecond, time.Millisecond) {
		t.Errorf("first ETA = %v, want 800ms", eta)
	}

	// Instant rate 0.5/s blends into 0.85/s; 0.7 left.
	clock.advance(200 * time.Millisecond)
	_, eta = p.UpdateWithETA(0, 0.3)
	if !within(eta, 823*time.Millisecond, 2*time.Millisecond) {
		t.Errorf("smoothed ETA = %v, want about 823ms", eta)
	}

	// No progress: the rate is kept.
	rate := p.rate
	clock.advance(time.Second)
	p.UpdateWithETA(0, 0.3)
	if p.rate != rate {
		t.Errorf("rate changed without progress: %f -> %f", rate, p.rate)
	}

	_, eta = p.UpdateWithETA(0, 1)
	if eta != 0 {
		t.Errorf("finished batch ETA = %v", eta)
	}
}

func TestGetETACapped(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.001)
	p.rate = 1e-9
	if got := p.GetETA(); got != maxETA {
		t.Errorf("ETA = %v, want cap %v", got, maxETA)
	}

	p.rate = 0.1
	p.Update(0, 0.5)
	if got := p.GetETA(); !within(got, 5*time.Second, time.Millisecond) {
		t.Errorf("ETA = %v, want 5s", got)
	}
}

func TestUpdateWithETAInvalidIndex(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	p.UpdateWithETA(5, 0.5)
	p.UpdateWithETA(-1, 0.5)
	if got := p.CalculateAverage(); got != 0 {
		t.Errorf("out-of-range updates must be ignored, average = %f", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{time.Second, "1s"},
		{10 * time.Second, "10s"},
		{45*time.Second + 900*time.Millisecond, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{10 * time.Minute, "10m"},
		{time.Hour, "1h"},
		{time.Hour + 5*time.Second, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{3*time.Hour + 10*time.Minute, "3h10m"},
		{2 * time.Hour, "2h"},
	}
	for _, tc := range testCases {
		if got := FormatETA(tc.eta); got != tc.expected {
			t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	want := " 50.00% [" + progressBar(0.5, 10) + "] ETA: 30s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !strings.HasSuffix(FormatProgressBarWithETA(1, 0, 4), "ETA: calculating...") {
		t.Error("a zero estimate should read calculating...")
	}
}
