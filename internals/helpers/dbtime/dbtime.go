package dbtime

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tutly_backend/internals/configs"
)

const LocAppLoc = "app_loc"

// GetAppLocation: locals "app_loc" → configs.AppLocation → UTC.
func GetAppLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	if configs.AppLocation != nil {
		return configs.AppLocation
	}
	return time.UTC
}

// ToAppTime mengonversi waktu DB (UTC) ke timezone aplikasi. Zero time dikembalikan apa adanya.
func ToAppTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetAppLocation(c))
}

func ToAppTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToAppTime(c, *t)
	return &v
}

// LastSundayNoon returns the most recent Sunday 12:00 in loc that is not after now.
// When now is exactly Sunday 12:00 that instant is returned.
func LastSundayNoon(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	back := int(local.Weekday()) // Sunday = 0
	y, m, d := local.Date()
	cutoff := time.Date(y, m, d-back, 12, 0, 0, 0, loc)
	if cutoff.After(local) {
		cutoff = time.Date(y, m, d-back-7, 12, 0, 0, 0, loc)
	}
	return cutoff
}
