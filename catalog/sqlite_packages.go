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

// timeLayout is how timestamps are stored in the local database.
const timeLayout = time.RFC3339Nano

var _ PackageRepo = (*PackageSQLiteRepo)(nil)

// PackageSQLiteRepo implements PackageRepo over a DBTX (either *sql.DB or
// *sql.Tx).
type PackageSQLiteRepo struct {
	db  dbx.DBTX
	now func() time.Time
}

type RepoOption func(*repoOptions)

type repoOptions struct {
	now func() time.Time
}

// WithNowFunc overrides the repo time source (primarily for testing).
func WithNowFunc(now func() time.Time) RepoOption {
	return func(o *repoOptions) { o.now = now }
}

func applyRepoOptions(opts []RepoOption) repoOptions {
	o := repoOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewPackageSQLiteRepo returns a new PackageSQLiteRepo bound to the given DBTX.
func NewPackageSQLiteRepo(db dbx.DBTX, opts ...RepoOption) *PackageSQLiteRepo {
	o := applyRepoOptions(opts)
	return &PackageSQLiteRepo{db: db, now: o.now}
}

// Add inserts the record under a freshly assigned id. Caller-supplied ID and
// timestamps are ignored.
func (r *PackageSQLiteRepo) Add(ctx context.Context, p Package) (string, error) {
	p.ID = uuid.New().String()
	now := r.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = PackageDraft
	}

	query := `INSERT INTO packages
		(id, title, slug, summary, description, location, duration_days, price_cents, image_url, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Summary, p.Description, p.Location,
		p.DurationDays, p.PriceCents, p.ImageURL, string(p.Status),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to insert package: %w", err)
	}
	return p.ID, nil
}

// Update applies the non-nil patch fields and refreshes updated_at. Returns
// false when no row has the given id.
func (r *PackageSQLiteRepo) Update(ctx context.Context, id string, patch PackagePatch) (bool, error) {
	sets := []string{"updated_at = ?"}
	args := []any{r.now().UTC().Format(timeLayout)}

	addSet := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}
	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Slug != nil {
		addSet("slug", *patch.Slug)
	}
	if patch.Summary != nil {
		addSet("summary", *patch.Summary)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.DurationDays != nil {
		addSet("duration_days", *patch.DurationDays)
	}
	if patch.PriceCents != nil {
		addSet("price_cents", *patch.PriceCents)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}
	if patch.Status != nil {
		addSet("status", string(*patch.Status))
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE packages SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update package: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// Delete removes the record by id. Absent ids are a no-op.
func (r *PackageSQLiteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}

func (r *PackageSQLiteRepo) Get(ctx context.Context, id string) (*Package, error) {
	row := r.db.QueryRowContext(ctx, selectPackages+` WHERE id = ?`, id)
	p, err := scanPackage(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return p, nil
}

func (r *PackageSQLiteRepo) List(ctx context.Context) ([]Package, error) {
	return r.list(ctx, selectPackages+` ORDER BY created_at DESC`)
}

func (r *PackageSQLiteRepo) ListByStatus(ctx context.Context, status PackageStatus) ([]Package, error) {
	return r.list(ctx, selectPackages+` WHERE status = ? ORDER BY created_at DESC`, string(status))
}

func (r *PackageSQLiteRepo) list(ctx context.Context, query string, args ...any) ([]Package, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	result := make([]Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}
	return result, nil
}

const selectPackages = `SELECT id, title, slug, summary, description, location,
	duration_days, price_cents, image_url, status, created_at, updated_at FROM packages`

func scanPackage(scan func(dest ...any) error) (*Package, error) {
	var p Package
	var status, createdAt, updatedAt string
	err := scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Location,
		&p.DurationDays, &p.PriceCents, &p.ImageURL, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = PackageStatus(status)
	if p.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
