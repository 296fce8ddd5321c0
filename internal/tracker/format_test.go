package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

func Test_FormatClock_Pads_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{100*time.Hour + 1500*time.Millisecond, "100:00:01"},
		{-time.Minute, "00:00:00"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, tracker.FormatClock(testCase.in), "FormatClock(%s)", testCase.in)
	}
}

func Test_FormatHMS_Uses_Unit_Suffixes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00h 00m 00s", tracker.FormatHMS(0))
	assert.Equal(t, "01h 02m 03s", tracker.FormatHMS(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26h 00m 00s", tracker.FormatHMS(26*time.Hour))
}
