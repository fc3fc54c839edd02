package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jthorne/go-travel-site/internal/dbx"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

var _ TestimonialRepo = (*TestimonialSQLiteRepo)(nil)

// TestimonialSQLiteRepo implements TestimonialRepo over a DBTX.
type TestimonialSQLiteRepo struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewTestimonialSQLiteRepo returns a new TestimonialSQLiteRepo bound to the given DBTX.
func NewTestimonialSQLiteRepo(db dbx.DBTX, opts ...RepoOption) *TestimonialSQLiteRepo {
	o := applyRepoOptions(opts)
	return &TestimonialSQLiteRepo{db: db, now: o.now}
}

func (r *TestimonialSQLiteRepo) Add(ctx context.Context, tm Testimonial) (string, error) {
	tm.ID = uuid.New().String()
	now := r.now().UTC()
	if tm.Status == "" {
		tm.Status = TestimonialPending
	}

	query := `INSERT INTO testimonials (id, author, location, quote, rating, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tm.ID, tm.Author, tm.Location, tm.Quote, tm.Rating, string(tm.Status),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to insert testimonial: %w", err)
	}
	return tm.ID, nil
}

func (r *TestimonialSQLiteRepo) Update(ctx context.Context, id string, patch TestimonialPatch) (bool, error) {
	sets := []string{"updated_at = ?"}
	args := []any{r.now().UTC().Format(timeLayout)}

	addSet := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}
	if patch.Author != nil {
		addSet("author", *patch.Author)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.Quote != nil {
		addSet("quote", *patch.Quote)
	}
	if patch.Rating != nil {
		addSet("rating", *patch.Rating)
	}
	if patch.Status != nil {
		addSet("status", string(*patch.Status))
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE testimonials SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update testimonial: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *TestimonialSQLiteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialSQLiteRepo) Get(ctx context.Context, id string) (*Testimonial, error) {
	row := r.db.QueryRowContext(ctx, selectTestimonials+` WHERE id = ?`, id)
	tm, err := scanTestimonial(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return tm, nil
}

func (r *TestimonialSQLiteRepo) List(ctx context.Context) ([]Testimonial, error) {
	return r.list(ctx, selectTestimonials+` ORDER BY created_at DESC`)
}

func (r *TestimonialSQLiteRepo) ListByStatus(ctx context.Context, status TestimonialStatus) ([]Testimonial, error) {
	return r.list(ctx, selectTestimonials+` WHERE status = ? ORDER BY created_at DESC`, string(status))
}

func (r *TestimonialSQLiteRepo) list(ctx context.Context, query string, args ...any) ([]Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	result := make([]Testimonial, 0)
	for rows.Next() {
		tm, err := scanTestimonial(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		result = append(result, *tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}
	return result, nil
}

const selectTestimonials = `SELECT id, author, location, quote, rating, status, created_at, updated_at FROM testimonials`

func scanTestimonial(scan func(dest ...any) error) (*Testimonial, error) {
	var tm Testimonial
	var status, createdAt, updatedAt string
	err := scan(&tm.ID, &tm.Author, &tm.Location, &tm.Quote, &tm.Rating, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	tm.Status = TestimonialStatus(status)
	if tm.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, err
	}
	if tm.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, err
	}
	return &tm, nil
}
