package timegrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slotline/booking-api/internal/httperr"
)

// GridStep is the booking grid resolution in minutes. Every published
// slot starts on a :00/:10/:20/:30/:40/:50 boundary so slots line up
// across staff members and services.
const GridStep = 10

const minutesPerDay = 24 * 60

// ToMinutes converts a time-of-day string to minutes since midnight.
//
// Stored times arrive with inconsistent precision depending on the write
// path ("09:30", "09:30:00", "09:30:00.000"), so anything after the
// minute field is stripped before parsing.
func ToMinutes(value string) (int, error) {
	v := strings.TrimSpace(value)

	// drop seconds / fractional seconds
	if i := strings.Index(v, ":"); i >= 0 {
		if j := strings.Index(v[i+1:], ":"); j >= 0 {
			v = v[:i+1+j]
		}
	}
	if i := strings.Index(v, "."); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, httperr.ErrBusiness("malformed_time")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, httperr.ErrBusiness("malformed_time")
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, httperr.ErrBusiness("malformed_time")
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, httperr.ErrBusiness("malformed_time")
	}

	return hour*60 + minute, nil
}

// FromMinutes formats minutes since midnight as "HH:MM".
// Values outside a single day are clamped into it.
func FromMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= minutesPerDay {
		m = minutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SnapUp rounds m up to the next multiple of step.
func SnapUp(m int, step int) int {
	if step <= 0 {
		return m
	}
	r := m % step
	if r == 0 {
		return m
	}
	return m + step - r
}
