package office

import (
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/timeutil"
)

// Config is the single office location every attendance mark is checked against.
type Config struct {
	Latitude      float64
	Longitude     float64
	RadiusMeters  float64
	WorkStartTime *string
	UpdatedAt     time.Time
}

func (c Config) Fence() geo.Fence {
	return geo.Fence{
		Center:       geo.Point{Latitude: c.Latitude, Longitude: c.Longitude},
		RadiusMeters: c.RadiusMeters,
	}
}

// WorkStart returns the parsed work start time, or nil when late detection is disabled.
func (c Config) WorkStart() (*timeutil.ClockTime, error) {
	if c.WorkStartTime == nil {
		return nil, nil
	}
	ct, err := timeutil.ParseClock(*c.WorkStartTime)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}
