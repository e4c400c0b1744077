package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
	now = time.Now
}

// clock returns a fake time.Now that advances step at each call.
func clock(step time.Duration) func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("cell size %.1f", 6.2)
	Info("%d atoms", 3)
	Warn("no reference for %s", "HOH")
	now = clock(1500 * time.Microsecond)
	done := Stage("Filter")
	done()

	assert.Equal(t, "[DEBUG] cell size 6.2\n[INFO] 3 atoms\n[WARN] no reference for HOH\n\n=== Filter ===\n[INFO] Filter done in 1.5ms\n", buf.String())
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("x")
	Info("x")
	Warn("x")
	Stage("x")()

	assert.Zero(t, buf.Len())
}
