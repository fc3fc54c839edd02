package catalog_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jthorne/go-travel-site/catalog"
	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/internal/utils"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := catalog.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testPackage() catalog.Package {
	return catalog.Package{
		Title:        "Lisbon Coast Escape",
		Slug:         "lisbon-coast-escape",
		Summary:      "Five days along the Atlantic coast",
		Description:  "Surf lessons, seafood, and sunset cliff walks.",
		Location:     "Lisbon, Portugal",
		DurationDays: 5,
		PriceCents:   89900,
		ImageURL:     "https://cdn.example.com/lisbon.jpg",
		Status:       catalog.PackagePublished,
	}
}

func TestPackageRepo_AddThenGet(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db)
	ctx := context.Background()

	want := testPackage()
	id, err := repo.Add(ctx, want)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.PriceCents, got.PriceCents)
	require.Equal(t, want.Status, got.Status)
	require.False(t, got.CreatedAt.IsZero())
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestPackageRepo_AddAssignsFreshIDs(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db)
	ctx := context.Background()

	id1, err := repo.Add(ctx, testPackage())
	require.NoError(t, err)
	id2, err := repo.Add(ctx, testPackage())
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}

func TestPackageRepo_UpdateChangesOnlyPatchedFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db, catalog.WithNowFunc(func() time.Time { return now }))
	ctx := context.Background()

	id, err := repo.Add(ctx, testPackage())
	require.NoError(t, err)
	before, err := repo.Get(ctx, id)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	ok, err := repo.Update(ctx, id, catalog.PackagePatch{PriceCents: utils.Ptr(int64(79900))})
	require.NoError(t, err)
	require.True(t, ok)

	after, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(79900), after.PriceCents)
	require.Equal(t, before.Title, after.Title)
	require.Equal(t, before.Status, after.Status)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))
	require.Equal(t, before.ID, after.ID, "update never creates a new id")
}

func TestPackageRepo_UpdateAbsentID(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db)

	ok, err := repo.Update(context.Background(), "no-such-id", catalog.PackagePatch{Title: utils.Ptr("x")})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPackageRepo_DeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db)
	ctx := context.Background()

	id, err := repo.Add(ctx, testPackage())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)

	// Deleting again is a no-op
	require.NoError(t, repo.Delete(ctx, id))
}

func TestPackageRepo_ListByStatus(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewPackageSQLiteRepo(db)
	ctx := context.Background()

	published := testPackage()
	_, err := repo.Add(ctx, published)
	require.NoError(t, err)

	draft := testPackage()
	draft.Status = catalog.PackageDraft
	_, err = repo.Add(ctx, draft)
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	publishedOnly, err := repo.ListByStatus(ctx, catalog.PackagePublished)
	require.NoError(t, err)
	require.Len(t, publishedOnly, 1)
	require.Equal(t, catalog.PackagePublished, publishedOnly[0].Status)
}

func TestTestimonialRepo_CRUD(t *testing.T) {
	db := setupDB(t)
	repo := catalog.NewTestimonialSQLiteRepo(db)
	ctx := context.Background()

	id, err := repo.Add(ctx, catalog.Testimonial{
		Author:   "Maria K.",
		Location: "Porto",
		Quote:    "Best trip of my life.",
		Rating:   5,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Maria K.", got.Author)
	require.Equal(t, catalog.TestimonialPending, got.Status, "new testimonials await moderation")

	ok, err := repo.Update(ctx, id, catalog.TestimonialPatch{Status: utils.Ptr(catalog.TestimonialApproved)})
	require.NoError(t, err)
	require.True(t, ok)

	approved, err := repo.ListByStatus(ctx, catalog.TestimonialApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestOpen_DiscardsStaleSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	// Simulate a database written by an older build
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE packages (id TEXT PRIMARY KEY); INSERT INTO packages (id) VALUES ('stale'); PRAGMA user_version = 1`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := catalog.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	repo := catalog.NewPackageSQLiteRepo(db)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all, "stale data must be discarded")

	var version int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&version))
	require.Equal(t, 2, version)
}
