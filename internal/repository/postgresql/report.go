package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const enrichedColumns = `a.id, a.user_id, a.date, a.check_in, a.check_out, a.latitude, a.longitude,
	a.status, a.created_at, a.updated_at,
	u.id, u.name, u.email, u.department, u.designation`

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	clause string
	args   []interface{}
}

func (w *whereBuilder) add(condition string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clause += fmt.Sprintf(" AND "+condition, len(w.args))
}

func (w *whereBuilder) next() int {
	return len(w.args) + 1
}

func filterWhere(f report.Filter) *whereBuilder {
	w := &whereBuilder{clause: "TRUE"}
	if f.EmployeeID != nil {
		w.add("a.user_id = $%d", *f.EmployeeID)
	}
	if f.From != nil {
		w.add("a.date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("a.date < $%d", *f.To)
	}
	if f.Department != nil {
		w.add("u.department = $%d", *f.Department)
	}
	return w
}

// ListByUser implements report.ReportRepository.
func (r *reportRepository) ListByUser(ctx context.Context, oq report.OwnQuery) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	w := &whereBuilder{clause: "TRUE"}
	w.add("user_id = $%d", oq.UserID)
	if oq.From != nil {
		w.add("date >= $%d", *oq.From)
	}
	if oq.To != nil {
		w.add("date < $%d", *oq.To)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances WHERE "+w.clause, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	offset := report.Offset(oq.Page, oq.Limit)
	if offset >= total {
		return []attendance.Attendance{}, total, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY date DESC, id
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, w.clause, w.next(), w.next()+1)
	args := append(w.args, oq.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// ListEnriched implements report.ReportRepository.
func (r *reportRepository) ListEnriched(ctx context.Context, aq report.AdminQuery) ([]report.EnrichedAttendance, int64, error) {
	q := GetQuerier(ctx, r.db)
	w := filterWhere(aq.Filter)

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		INNER JOIN users u ON u.id = a.user_id
		WHERE ` + w.clause
	var total int64
	if err := q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	offset := report.Offset(aq.Page, aq.Limit)
	if offset >= total {
		return []report.EnrichedAttendance{}, total, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		INNER JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, a.id
		LIMIT $%d OFFSET $%d
	`, enrichedColumns, w.clause, w.next(), w.next()+1)
	args := append(w.args, aq.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records, err := scanEnriched(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListForExport implements report.ReportRepository.
func (r *reportRepository) ListForExport(ctx context.Context, f report.Filter) ([]report.EnrichedAttendance, error) {
	q := GetQuerier(ctx, r.db)
	w := filterWhere(f)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, a.id
	`, enrichedColumns, w.clause)

	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances for export: %w", err)
	}
	defer rows.Close()

	return scanEnriched(rows)
}

func scanEnriched(rows pgx.Rows) ([]report.EnrichedAttendance, error) {
	records := []report.EnrichedAttendance{}
	for rows.Next() {
		var (
			rec                report.EnrichedAttendance
			empID, name, email *string
			department, desig  *string
		)
		if err := scanAttendance(rows, &rec.Attendance, &empID, &name, &email, &department, &desig); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		if empID != nil {
			rec.Employee = &report.EmployeeSummary{
				ID:          *empID,
				Name:        derefString(name),
				Email:       derefString(email),
				Department:  department,
				Designation: desig,
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
