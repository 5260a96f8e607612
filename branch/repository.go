package branch

import (
	"context"
	"fmt"

	"reqflow/db"
)

// Repository handles data access for branches.
type Repository interface {
	Create(ctx context.Context, name string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	q db.Querier
}

// NewRepository wires a pgx-backed repository implementation.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{q: q}
}

// Create inserts a new branch and returns the stored row.
func (r *PGRepository) Create(ctx context.Context, name string) (Branch, error) {
	const insertSQL = `
		INSERT INTO branches (name)
		VALUES ($1)
		RETURNING id, name
	`

	var b Branch
	if err := r.q.QueryRow(ctx, insertSQL, name).Scan(&b.ID, &b.Name); err != nil {
		return Branch{}, fmt.Errorf("branch: create: %w", err)
	}
	return b, nil
}

// List returns every branch ordered by id ascending.
func (r *PGRepository) List(ctx context.Context) ([]Branch, error) {
	const selectSQL = `
		SELECT id, name
		FROM branches
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("branch: list: %w", err)
	}
	defer rows.Close()

	branches := []Branch{}
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("branch: scan: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("branch: iterate: %w", err)
	}

	return branches, nil
}
