package office

import (
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
)

type SetOfficeRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	RadiusMeters  *float64 `json:"radiusMeters"`
	// Radius is the field name used by older clients; radiusMeters wins when both are sent.
	Radius        *float64 `json:"radius,omitempty"`
	WorkStartTime *string  `json:"workStartTime,omitempty"`
}

func (r *SetOfficeRequest) radius() *float64 {
	if r.RadiusMeters != nil {
		return r.RadiusMeters
	}
	return r.Radius
}

func (r *SetOfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}

	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	if radius := r.radius(); radius == nil {
		errs.Add("radiusMeters", "radiusMeters is required")
	} else if !validator.IsFinite(*radius) || *radius <= 0 {
		errs.Add("radiusMeters", "radiusMeters must be a positive number")
	}

	if r.WorkStartTime != nil {
		if _, err := timeutil.ParseClock(*r.WorkStartTime); err != nil {
			errs.Add("workStartTime", "workStartTime must be in HH:MM 24-hour format")
		}
	}

	return errs.Err()
}

// ToConfig assumes Validate has passed.
func (r *SetOfficeRequest) ToConfig() Config {
	cfg := Config{
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		RadiusMeters: *r.radius(),
	}
	if r.WorkStartTime != nil {
		ct, _ := timeutil.ParseClock(*r.WorkStartTime)
		normalized := ct.String()
		cfg.WorkStartTime = &normalized
	}
	return cfg
}

type OfficeResponse struct {
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	RadiusMeters  float64   `json:"radiusMeters"`
	WorkStartTime *string   `json:"workStartTime"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewOfficeResponse(c Config) OfficeResponse {
	return OfficeResponse{
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		RadiusMeters:  c.RadiusMeters,
		WorkStartTime: c.WorkStartTime,
		UpdatedAt:     c.UpdatedAt,
	}
}
