package showtimes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowtimeOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	showtime := &Showtime{
		StartsAt: base,                    // 19:00
		EndsAt:   base.Add(2 * time.Hour), // 21:00
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "partial overlap at the tail",
			start: base.Add(1 * time.Hour),
			end:   base.Add(3 * time.Hour),
			want:  true,
		},
		{
			name:  "partial overlap at the head",
			start: base.Add(-1 * time.Hour),
			end:   base.Add(30 * time.Minute),
			want:  true,
		},
		{
			name:  "candidate contained inside existing",
			start: base.Add(30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "existing contained inside candidate",
			start: base.Add(-1 * time.Hour),
			end:   base.Add(3 * time.Hour),
			want:  true,
		},
		{
			name:  "identical interval",
			start: base,
			end:   base.Add(2 * time.Hour),
			want:  true,
		},
		{
			name:  "back to back after, shared boundary",
			start: base.Add(2 * time.Hour),
			end:   base.Add(4 * time.Hour),
			want:  false,
		},
		{
			name:  "back to back before, shared boundary",
			start: base.Add(-2 * time.Hour),
			end:   base,
			want:  false,
		},
		{
			name:  "fully before",
			start: base.Add(-3 * time.Hour),
			end:   base.Add(-1 * time.Hour),
			want:  false,
		},
		{
			name:  "fully after",
			start: base.Add(5 * time.Hour),
			end:   base.Add(7 * time.Hour),
			want:  false,
		},
		{
			name:  "one minute of overlap",
			start: base.Add(2*time.Hour - time.Minute),
			end:   base.Add(3 * time.Hour),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, showtime.Overlaps(tt.start, tt.end))
		})
	}
}

func TestShowtimeHasStarted(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	future := &Showtime{StartsAt: now.Add(time.Minute)}
	assert.False(t, future.HasStarted(now))

	past := &Showtime{StartsAt: now.Add(-time.Minute)}
	assert.True(t, past.HasStarted(now))

	// A screening starting exactly now counts as started
	exact := &Showtime{StartsAt: now}
	assert.True(t, exact.HasStarted(now))
}
