package timegrid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slotline/booking-api/internal/httperr"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "plain", input: "09:30", want: 570, ok: true},
		{name: "midnight", input: "00:00", want: 0, ok: true},
		{name: "end of day", input: "23:59", want: 1439, ok: true},
		{name: "trailing seconds", input: "10:00:00", want: 600, ok: true},
		{name: "fractional seconds", input: "10:00:00.000", want: 600, ok: true},
		{name: "padded", input: " 08:15 ", want: 495, ok: true},
		{name: "no separator", input: "9h30", ok: false},
		{name: "hour out of range", input: "25:00", ok: false},
		{name: "minute out of range", input: "10:60", ok: false},
		{name: "negative hour", input: "-1:00", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)

			if !tt.ok {
				require.Error(t, err)
				require.True(t, httperr.IsBusiness(err, "malformed_time"))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFromMinutes(t *testing.T) {
	require.Equal(t, "00:00", FromMinutes(0))
	require.Equal(t, "09:05", FromMinutes(545))
	require.Equal(t, "23:59", FromMinutes(1439))

	// clamped into the day
	require.Equal(t, "00:00", FromMinutes(-10))
	require.Equal(t, "23:59", FromMinutes(1500))
}

func TestSnapUp(t *testing.T) {
	tests := []struct {
		m    int
		step int
		want int
	}{
		{m: 600, step: 10, want: 600}, // already on grid
		{m: 601, step: 10, want: 610},
		{m: 607, step: 10, want: 610},
		{m: 609, step: 10, want: 610},
		{m: 0, step: 10, want: 0},
		{m: 607, step: 0, want: 607}, // degenerate step is identity
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, SnapUp(tt.m, tt.step))
	}
}
