package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/timeutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var markOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "geo_attendance_marks_total",
		Help: "Attendance marks by outcome.",
	},
	[]string{"outcome"},
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	office   office.Reader
	geoFence geo.GeoFence
	location *time.Location
	now      func() time.Time
}

// NewAttendanceService wires the ledger. loc defines the attendance day; clock may be nil to use
// time.Now.
func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	officeReader office.Reader,
	geoFence geo.GeoFence,
	loc *time.Location,
	clock func() time.Time,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		office:               officeReader,
		geoFence:             geoFence,
		location:             loc,
		now:                  clock,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}
	now := s.now()

	cfg, err := s.office.GetOffice(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			markOutcomesTotal.WithLabelValues("config_missing").Inc()
			return attendance.MarkAttendanceResponse{}, attendance.ErrConfigMissing
		}
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to load office config: %w", err)
	}

	point := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !s.geoFence.IsWithinRadius(cfg.Fence(), point) {
		markOutcomesTotal.WithLabelValues("outside_radius").Inc()
		slog.Info("attendance mark rejected outside office radius",
			"user_id", req.UserID,
			"distance_meters", s.geoFence.Distance(cfg.Fence().Center, point),
			"radius_meters", cfg.RadiusMeters,
		)
		return attendance.MarkAttendanceResponse{}, attendance.ErrOutsideRadius
	}

	dayStart, dayEnd := timeutil.DayRange(now, s.location)
	existing, err := s.AttendanceRepository.GetByUserAndDay(ctx, req.UserID, dayStart, dayEnd)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if existing == nil {
		return s.checkIn(ctx, req, cfg, now, dayStart)
	}
	if existing.IsCheckedOut() {
		markOutcomesTotal.WithLabelValues("already_checked_out").Inc()
		return attendance.MarkAttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	return s.checkOut(ctx, req, *existing, now)
}

func (s *AttendanceServiceImpl) checkIn(ctx context.Context, req attendance.MarkAttendanceRequest, cfg office.Config, now, dayStart time.Time) (attendance.MarkAttendanceResponse, error) {
	status := attendance.StatusPresent
	workStart, err := cfg.WorkStart()
	if err != nil {
		// The stored value was validated on write; an unparsable one only disables late detection.
		slog.Warn("ignoring invalid office work start time", "work_start_time", cfg.WorkStartTime, "error", err)
	} else if workStart != nil && now.After(workStart.On(dayStart)) {
		status = attendance.StatusLate
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:    req.UserID,
		Date:      dayStart,
		CheckIn:   now,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrConcurrentAttendanceConflict) {
			markOutcomesTotal.WithLabelValues("conflict").Inc()
			return attendance.MarkAttendanceResponse{}, err
		}
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	markOutcomesTotal.WithLabelValues("checked_in").Inc()
	slog.Info("employee checked in", "user_id", req.UserID, "attendance_id", created.ID, "status", created.Status)

	return attendance.MarkAttendanceResponse{
		Action:     attendance.ActionCheckedIn,
		Attendance: attendance.NewAttendanceResponse(created),
	}, nil
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, req attendance.MarkAttendanceRequest, open attendance.Attendance, now time.Time) (attendance.MarkAttendanceResponse, error) {
	updated, err := s.AttendanceRepository.CheckOut(ctx, open.ID, now, *req.Latitude, *req.Longitude)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			markOutcomesTotal.WithLabelValues("already_checked_out").Inc()
			return attendance.MarkAttendanceResponse{}, err
		}
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to check out attendance: %w", err)
	}

	markOutcomesTotal.WithLabelValues("checked_out").Inc()
	slog.Info("employee checked out", "user_id", req.UserID, "attendance_id", updated.ID)

	return attendance.MarkAttendanceResponse{
		Action:     attendance.ActionCheckedOut,
		Attendance: attendance.NewAttendanceResponse(updated),
	}, nil
}
