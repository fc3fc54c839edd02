// Package catalog owns the Package and Testimonial records behind the admin
// CMS and the public site. Records live in a durable local store behind the
// Repo interfaces, so a server-authoritative backend can replace the local
// cache without changing call sites.
package catalog

import (
	"context"
	"time"
)

// PackageStatus is the publication state of a travel package
type PackageStatus string

const (
	PackageDraft     PackageStatus = "draft"
	PackagePublished PackageStatus = "published"
	PackageArchived  PackageStatus = "archived"
)

// TestimonialStatus is the moderation state of a testimonial
type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

// Package is a bookable travel package shown in the catalog.
type Package struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Summary      string        `json:"summary"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	DurationDays int           `json:"durationDays"`
	PriceCents   int64         `json:"priceCents"`
	ImageURL     string        `json:"imageUrl"`
	Status       PackageStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Testimonial is a customer quote shown on the marketing pages.
type Testimonial struct {
	ID        string            `json:"id"`
	Author    string            `json:"author"`
	Location  string            `json:"location"`
	Quote     string            `json:"quote"`
	Rating    int               `json:"rating"`
	Status    TestimonialStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// PackagePatch is a partial update. Nil fields are left untouched; any
// update refreshes UpdatedAt.
type PackagePatch struct {
	Title        *string        `json:"title"`
	Slug         *string        `json:"slug"`
	Summary      *string        `json:"summary"`
	Description  *string        `json:"description"`
	Location     *string        `json:"location"`
	DurationDays *int           `json:"durationDays"`
	PriceCents   *int64         `json:"priceCents"`
	ImageURL     *string        `json:"imageUrl"`
	Status       *PackageStatus `json:"status"`
}

// TestimonialPatch is a partial update for testimonials.
type TestimonialPatch struct {
	Author   *string            `json:"author"`
	Location *string            `json:"location"`
	Quote    *string            `json:"quote"`
	Rating   *int               `json:"rating"`
	Status   *TestimonialStatus `json:"status"`
}

// PackageRepo is the CRUD contract for packages.
//
// Add always assigns a fresh unique id and initializes CreatedAt/UpdatedAt.
// Update refreshes UpdatedAt, never creates a new id, and reports false when
// the id is absent. Delete is an idempotent no-op for absent ids.
type PackageRepo interface {
	Add(ctx context.Context, p Package) (string, error)
	Update(ctx context.Context, id string, patch PackagePatch) (bool, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Package, error)
	List(ctx context.Context) ([]Package, error)
	ListByStatus(ctx context.Context, status PackageStatus) ([]Package, error)
}

// TestimonialRepo is the CRUD contract for testimonials, with the same
// identifier and timestamp semantics as PackageRepo.
type TestimonialRepo interface {
	Add(ctx context.Context, tm Testimonial) (string, error)
	Update(ctx context.Context, id string, patch TestimonialPatch) (bool, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Testimonial, error)
	List(ctx context.Context) ([]Testimonial, error)
	ListByStatus(ctx context.Context, status TestimonialStatus) ([]Testimonial, error)
}
