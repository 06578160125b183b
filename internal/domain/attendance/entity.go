package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

// Attendance is one user's record for one calendar day. Date is the start of that day in the
// server time zone.
type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time
	CheckIn   time.Time
	CheckOut  *time.Time
	Latitude  *float64
	Longitude *float64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}
