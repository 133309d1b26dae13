package cli

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/galois/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"}, // Truncates
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		contains string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},  // Cap at 1.0
		{-0.1, 10, "░░░░░░░░░░"}, // Floor at 0.0
	}

	for _, tt := range tests {
		got := progressBar(tt.progress, tt.length)
		if got != tt.contains {
			t.Errorf("progressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.contains)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	ps.Update(7, 1.0)  // ignored
	ps.Update(-1, 1.0) // ignored
	if got := ps.CalculateAverage(); got != 0.375 {
		t.Errorf("CalculateAverage() = %f, want 0.375", got)
	}
	if NewProgressState(0).CalculateAverage() != 0 {
		t.Error("an empty state should report no progress")
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestColors(t *testing.T) {
	ui.InitTheme(true)
	for name, c := range map[string]string{
		"reset": ColorReset(), "red": ColorRed(), "green": ColorGreen(),
		"yellow": ColorYellow(), "blue": ColorBlue(), "magenta": ColorMagenta(),
		"cyan": ColorCyan(), "bold": ColorBold(), "underline": ColorUnderline(),
	} {
		if c != "" {
			t.Errorf("%s should be empty without colors, got %q", name, c)
		}
	}

	ui.SetCurrentTheme(ui.DarkTheme)
	defer ui.SetCurrentTheme(ui.NoColorTheme)
	if ColorRed() != ui.DarkTheme.Error || ColorBold() != ui.DarkTheme.Bold {
		t.Error("color helpers must delegate to the current theme")
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan ProgressUpdate)
	var out syncBuffer

	go func() {
		progressChan <- ProgressUpdate{WorkerIndex: 0, Value: 0.5}
		progressChan <- ProgressUpdate{WorkerIndex: 1, Value: 1.0}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if got := out.String(); got != "Progress:  75.00% ["+progressBar(0.75, ProgressBarWidth)+"]\n" {
		t.Errorf("unexpected final progress line %q", got)
	}
}

func TestDisplayProgress_ZeroWorkers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan ProgressUpdate, 1)
	progressChan <- ProgressUpdate{Value: 1}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Should drain and return immediately
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a spinner.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
