package appointment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slotline/booking-api/internal/models"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "identical", a: Interval{600, 630}, b: Interval{600, 630}, want: true},
		{name: "partial overlap", a: Interval{590, 620}, b: Interval{600, 630}, want: true},
		{name: "contained", a: Interval{605, 615}, b: Interval{600, 630}, want: true},
		{name: "back to back before", a: Interval{570, 600}, b: Interval{600, 630}, want: false},
		{name: "back to back after", a: Interval{630, 660}, b: Interval{600, 630}, want: false},
		{name: "disjoint", a: Interval{500, 530}, b: Interval{600, 630}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			require.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestBusyIntervals(t *testing.T) {
	appointments := []models.Appointment{
		{Status: "confirmed", StartTime: "10:00", EndTime: "10:30"},
		{Status: "pending", StartTime: "11:00:00", EndTime: "11:30:00"}, // legacy seconds
		{Status: "cancelled", StartTime: "09:00", EndTime: "09:30"},    // ignored
		{Status: "no_show", StartTime: "14:00", EndTime: "14:30"},      // ignored
		{Status: "queue_reserved", StartTime: "", EndTime: ""},         // unassigned placeholder
	}

	busy, err := BusyIntervals(appointments)
	require.NoError(t, err)
	require.Equal(t, []Interval{
		{Start: 600, End: 630},
		{Start: 660, End: 690},
	}, busy)
}

func TestBusyIntervalsMalformedTime(t *testing.T) {
	_, err := BusyIntervals([]models.Appointment{
		{Status: "confirmed", StartTime: "bogus", EndTime: "10:30"},
	})
	require.Error(t, err)
}

func TestFilterFree(t *testing.T) {
	busy := []Interval{{Start: 600, End: 630}} // 10:00-10:30 taken

	candidates := []int{570, 580, 590, 600, 610, 620, 630, 640}
	free := FilterFree(candidates, 30, busy)

	// with a 30-minute service, everything from 09:40 through 10:20
	// collides with the 10:00 booking; 09:30 and 10:30 survive
	require.Equal(t, []int{570, 630, 640}, free)
}

func TestFilterFreeNoBusy(t *testing.T) {
	candidates := []int{540, 550, 560}
	require.Equal(t, candidates, FilterFree(candidates, 30, nil))
}
