// Package repofake provides in-memory catalog repositories for tests.
package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jthorne/go-travel-site/catalog"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

var _ catalog.PackageRepo = (*FakePackageRepo)(nil)

type FakePackageRepo struct {
	lock     sync.RWMutex
	packages map[string]catalog.Package
}

func NewFakePackageRepo() *FakePackageRepo {
	return &FakePackageRepo{packages: make(map[string]catalog.Package)}
}

func (r *FakePackageRepo) Add(_ context.Context, p catalog.Package) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p.ID = uuid.New().String()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = catalog.PackageDraft
	}
	r.packages[p.ID] = p
	return p.ID, nil
}

func (r *FakePackageRepo) Update(_ context.Context, id string, patch catalog.PackagePatch) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p, ok := r.packages[id]
	if !ok {
		return false, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.DurationDays != nil {
		p.DurationDays = *patch.DurationDays
	}
	if patch.PriceCents != nil {
		p.PriceCents = *patch.PriceCents
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = time.Now().UTC()
	r.packages[id] = p
	return true, nil
}

func (r *FakePackageRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.packages, id)
	return nil
}

func (r *FakePackageRepo) Get(_ context.Context, id string) (*catalog.Package, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	p, ok := r.packages[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	return &p, nil
}

func (r *FakePackageRepo) List(_ context.Context) ([]catalog.Package, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]catalog.Package, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, p)
	}
	sortPackages(out)
	return out, nil
}

func (r *FakePackageRepo) ListByStatus(_ context.Context, status catalog.PackageStatus) ([]catalog.Package, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]catalog.Package, 0)
	for _, p := range r.packages {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sortPackages(out)
	return out, nil
}

func sortPackages(ps []catalog.Package) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
}

var _ catalog.TestimonialRepo = (*FakeTestimonialRepo)(nil)

type FakeTestimonialRepo struct {
	lock         sync.RWMutex
	testimonials map[string]catalog.Testimonial
}

func NewFakeTestimonialRepo() *FakeTestimonialRepo {
	return &FakeTestimonialRepo{testimonials: make(map[string]catalog.Testimonial)}
}

func (r *FakeTestimonialRepo) Add(_ context.Context, tm catalog.Testimonial) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	tm.ID = uuid.New().String()
	now := time.Now().UTC()
	tm.CreatedAt = now
	tm.UpdatedAt = now
	if tm.Status == "" {
		tm.Status = catalog.TestimonialPending
	}
	r.testimonials[tm.ID] = tm
	return tm.ID, nil
}

func (r *FakeTestimonialRepo) Update(_ context.Context, id string, patch catalog.TestimonialPatch) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	tm, ok := r.testimonials[id]
	if !ok {
		return false, nil
	}
	if patch.Author != nil {
		tm.Author = *patch.Author
	}
	if patch.Location != nil {
		tm.Location = *patch.Location
	}
	if patch.Quote != nil {
		tm.Quote = *patch.Quote
	}
	if patch.Rating != nil {
		tm.Rating = *patch.Rating
	}
	if patch.Status != nil {
		tm.Status = *patch.Status
	}
	tm.UpdatedAt = time.Now().UTC()
	r.testimonials[id] = tm
	return true, nil
}

func (r *FakeTestimonialRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.testimonials, id)
	return nil
}

func (r *FakeTestimonialRepo) Get(_ context.Context, id string) (*catalog.Testimonial, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	tm, ok := r.testimonials[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	return &tm, nil
}

func (r *FakeTestimonialRepo) List(_ context.Context) ([]catalog.Testimonial, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]catalog.Testimonial, 0, len(r.testimonials))
	for _, tm := range r.testimonials {
		out = append(out, tm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *FakeTestimonialRepo) ListByStatus(_ context.Context, status catalog.TestimonialStatus) ([]catalog.Testimonial, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]catalog.Testimonial, 0)
	for _, tm := range r.testimonials {
		if tm.Status == status {
			out = append(out, tm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
