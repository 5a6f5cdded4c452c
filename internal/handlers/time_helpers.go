package handlers

import (
	"time"

	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timezone"
)

// Every date/time coming off the wire is interpreted in the tenant's
// timezone, never the server's.

func locationFromBusiness(biz *models.Business) *time.Location {
	if biz != nil {
		return timezone.Location(biz.Timezone)
	}
	return timezone.Location("")
}

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(biz),
	)
}
