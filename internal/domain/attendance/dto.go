package attendance

import (
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
)

// MarkType is accepted for compatibility with older clients. The action taken is always inferred
// from the day's record.
type MarkType string

const (
	MarkTypeCheckIn  MarkType = "checkin"
	MarkTypeCheckOut MarkType = "checkout"
	MarkTypeAuto     MarkType = "auto"
)

type Action string

const (
	ActionCheckedIn  Action = "checked_in"
	ActionCheckedOut Action = "checked_out"
)

type MarkAttendanceRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Type      *string  `json:"type,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}

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

	if r.Type != nil {
		valid := []string{string(MarkTypeCheckIn), string(MarkTypeCheckOut), string(MarkTypeAuto)}
		if !validator.IsInSlice(*r.Type, valid) {
			errs.Add("type", "type must be one of checkin, checkout, auto")
		}
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      time.Time  `json:"date"`
	CheckIn   time.Time  `json:"checkIn"`
	CheckOut  *time.Time `json:"checkOut"`
	Location  *Location  `json:"location"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Location is the position of the most recent mark.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		CheckIn:   a.CheckIn,
		CheckOut:  a.CheckOut,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Latitude != nil && a.Longitude != nil {
		resp.Location = &Location{Latitude: *a.Latitude, Longitude: *a.Longitude}
	}
	return resp
}

type MarkAttendanceResponse struct {
	Action     Action             `json:"action"`
	Attendance AttendanceResponse `json:"attendance"`
}

// Message is the human readable outcome for the response envelope.
func (r MarkAttendanceResponse) Message() string {
	if r.Action == ActionCheckedOut {
		return "Checked out successfully"
	}
	return "Checked in successfully"
}
