package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, user_id, date, check_in, check_out, latitude, longitude, status, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// scanAttendance reads attendanceColumns, followed by any extra destinations.
func scanAttendance(row pgx.Row, att *attendance.Attendance, extra ...any) error {
	dest := []any{
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Latitude, &att.Longitude, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// GetByUserAndDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
		LIMIT 1
	`

	var att attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, userID, dayStart, dayEnd), &att); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by user and day: %w", err)
	}

	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, date, check_in, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attendanceColumns

	var created attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.Latitude,
		newAttendance.Longitude,
		newAttendance.Status,
	), &created)
	if err != nil {
		if isUniqueViolation(err, "attendances_user_date_key") {
			return attendance.Attendance{}, attendance.ErrConcurrentAttendanceConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, latitude, longitude float64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $2, latitude = $3, longitude = $4, updated_at = NOW()
		WHERE id = $1 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	var updated attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, id, at, latitude, longitude), &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, a.checkOutMiss(ctx, id)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check out attendance: %w", err)
	}

	return updated, nil
}

// checkOutMiss distinguishes a lost checkout race from a missing record.
func (a *attendanceRepository) checkOutMiss(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up attendance: %w", err)
	}
	if !exists {
		return attendance.ErrAttendanceNotFound
	}
	return attendance.ErrAlreadyCheckedOut
}
