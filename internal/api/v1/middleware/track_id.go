package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderTrackID = "X-Track-ID"
	trackIDKey    = "track_id"
)

// TrackID reuses the caller's X-Track-ID or mints one, and echoes it back.
func TrackID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trackID := c.Get(HeaderTrackID)
		if _, err := uuid.Parse(trackID); err != nil {
			trackID = uuid.NewString()
		}

		c.Locals(trackIDKey, trackID)
		c.Set(HeaderTrackID, trackID)
		return c.Next()
	}
}

func GetTrackID(c *fiber.Ctx) string {
	trackID, _ := c.Locals(trackIDKey).(string)
	return trackID
}
