package vectorize

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Update(50)
	tracker.Update(100)

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100", "finish should set to total")
	assert.Contains(t, output, "100.0%", "finish should show 100%")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0", "should handle zero total")
}

func TestProgressTracker_UpdateBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(150)

	assert.Contains(t, buf.String(), "100/100", "should not exceed total")
}

func TestProgressTracker_Rate(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()
	time.Sleep(50 * time.Millisecond)
	tracker.Update(100)

	tracker.Finish()

	assert.Contains(t, buf.String(), "movies/s", "should show rate")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Update(10)
	tracker.Finish()

	assert.Equal(t, "", buf.String(), "should have no output when not started")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()

	buf.Reset()
	tracker.Update(50)
	assert.Equal(t, "", buf.String(), "should not print under interval")

	buf.Reset()
	tracker.Update(100)
	assert.NotEmpty(t, buf.String(), "should print at interval")

	buf.Reset()
	tracker.Update(250)
	assert.NotEmpty(t, buf.String(), "should print beyond interval")
}

func TestProgressTracker_FormattedOutput(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 5000, 1000)

	tracker.Start()
	tracker.Update(2500)
	tracker.Update(5000)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\r")
	if assert.NotEmpty(t, lines) {
		lastLine := lines[len(lines)-1]
		assert.Contains(t, lastLine, "/", "should have progress fraction")
		assert.Contains(t, lastLine, "%", "should have percentage")
	}
}
