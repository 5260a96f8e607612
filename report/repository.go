package report

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"reqflow/db"
)

var (
	// ErrNotFound is returned when no report row exists for the identifier.
	ErrNotFound = errors.New("report: not found")
	// ErrAlreadyDecided signals a transition attempt on a non-pending report.
	ErrAlreadyDecided = errors.New("report: already decided")
)

// CreateParams contains the persisted fields of a new report.
type CreateParams struct {
	Requester string
	Item      string
	Quantity  int
	Branch    string
}

// Filters narrows and pages the report listing. Query substring-matches
// requester, item and branch.
type Filters struct {
	Page    int
	PerPage int
	Query   string
	Status  Status
}

// Repository handles data access for reports.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Report, error)
	GetByID(ctx context.Context, id int64) (Report, error)
	Decide(ctx context.Context, id int64, status Status, approvedBy string) (Report, error)
	List(ctx context.Context, filters Filters) ([]Report, int, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	q db.Querier
}

// NewRepository wires a pgx-backed repository implementation.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{q: q}
}

const reportColumns = `id, created_at, requester, item, quantity, branch, status, approved_by`

// Create inserts a pending report stamped with the current epoch seconds.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Report, error) {
	const insertSQL = `
		INSERT INTO reports (created_at, requester, item, quantity, branch, status)
		VALUES (EXTRACT(EPOCH FROM now())::bigint, $1, $2, $3, $4, 'pending')
		RETURNING ` + reportColumns

	rep, err := scanReport(r.q.QueryRow(ctx, insertSQL, params.Requester, params.Item, params.Quantity, params.Branch))
	if err != nil {
		return Report{}, fmt.Errorf("report: create: %w", err)
	}
	return rep, nil
}

// GetByID fetches a report by its primary key.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (Report, error) {
	const selectSQL = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1
	`

	rep, err := scanReport(r.q.QueryRow(ctx, selectSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, fmt.Errorf("report: get by id: %w", err)
	}
	return rep, nil
}

// Decide transitions a pending report to the given terminal status and
// records the acting identity. The WHERE guard enforces first-transition-wins:
// a report that already left pending yields ErrAlreadyDecided.
func (r *PGRepository) Decide(ctx context.Context, id int64, status Status, approvedBy string) (Report, error) {
	const updateSQL = `
		UPDATE reports
		SET status = $2,
		    approved_by = $3
		WHERE id = $1
		  AND status = 'pending'
		RETURNING ` + reportColumns

	rep, err := scanReport(r.q.QueryRow(ctx, updateSQL, id, status, approvedBy))
	if err == nil {
		return rep, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Report{}, fmt.Errorf("report: decide: %w", err)
	}

	const checkSQL = `SELECT status FROM reports WHERE id = $1`
	var current Status
	if err := r.q.QueryRow(ctx, checkSQL, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, fmt.Errorf("report: decide fetch: %w", err)
	}
	return Report{}, ErrAlreadyDecided
}

// List returns a page of reports ordered by id descending plus the total
// count over the same filter set. Page clamps to >= 1; per-page defaults to
// 10 and clamps to [1,100].
func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Report, int, error) {
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	perPage := filters.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 10
	}

	conds := sq.And{}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"requester": pattern},
			sq.ILike{"item": pattern},
			sq.ILike{"branch": pattern},
		})
	}
	if filters.Status != "" {
		conds = append(conds, sq.Eq{"status": filters.Status})
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	listQ := builder.Select(reportColumns).
		From("reports").
		OrderBy("id DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage))
	countQ := builder.Select("COUNT(*)").From("reports")
	if len(conds) > 0 {
		listQ = listQ.Where(conds)
		countQ = countQ.Where(conds)
	}

	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("report: build list query: %w", err)
	}

	rows, err := r.q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("report: list: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("report: scan: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("report: iterate: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("report: build count query: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("report: count: %w", err)
	}

	return reports, total, nil
}

func scanReport(row pgx.Row) (Report, error) {
	var rep Report
	return rep, row.Scan(
		&rep.ID,
		&rep.CreatedAt,
		&rep.Requester,
		&rep.Item,
		&rep.Quantity,
		&rep.Branch,
		&rep.Status,
		&rep.ApprovedBy,
	)
}
