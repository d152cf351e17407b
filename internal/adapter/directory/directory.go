// Package directory is a read-only tenant, building and contractor directory
// loaded from a YAML seed file.
package directory

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// Directory answers tenant/unit/building and contractor lookups.
type Directory struct {
	path string

	mu          sync.RWMutex
	buildings   map[string]struct{}
	units       map[string]string // unit -> building
	tenants     map[string]domain.Residence
	contractors map[string]domain.Contractor
	order       []string // contractor ids in seed order
}

// New builds a directory from an in-memory seed.
func New(seed Seed) (*Directory, error) {
	d := &Directory{}
	if err := d.apply(seed); err != nil {
		return nil, err
	}
	return d, nil
}

// Load reads the seed file at path. An empty path yields an empty directory.
func Load(path string) (*Directory, error) {
	d := &Directory{path: path}
	if path == "" {
		if err := d.apply(Seed{}); err != nil {
			return nil, err
		}
		return d, nil
	}
	if err := d.Reload(context.Background()); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the seed file. On error the previous contents stay in place.
func (d *Directory) Reload(_ context.Context) error {
	if d.path == "" {
		return nil
	}
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read directory seed: %w", err)
	}
	seed, err := ParseSeed(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return d.apply(seed)
}

func (d *Directory) apply(seed Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	buildings := make(map[string]struct{}, len(seed.Buildings))
	units := make(map[string]string)
	for _, b := range seed.Buildings {
		buildings[b.ID] = struct{}{}
		for _, u := range b.Units {
			units[u] = b.ID
		}
	}

	tenants := make(map[string]domain.Residence, len(seed.Tenants))
	for _, t := range seed.Tenants {
		res := domain.Residence{TenantID: t.ID, BuildingID: t.BuildingID}
		if t.UnitID != nil {
			u := *t.UnitID
			res.UnitID = &u
		}
		tenants[t.ID] = res
	}

	contractors := make(map[string]domain.Contractor, len(seed.Contractors))
	order := make([]string, 0, len(seed.Contractors))
	for _, c := range seed.Contractors {
		active := true
		if c.IsActive != nil {
			active = *c.IsActive
		}
		contractors[c.ID] = domain.Contractor{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      c.Avatar,
			Phone:       c.Phone,
			Email:       c.Email,
			Rating:      c.Rating,
			Specialties: slices.Clone(c.Specialties),
			IsActive:    active,
		}
		order = append(order, c.ID)
	}

	d.mu.Lock()
	d.buildings = buildings
	d.units = units
	d.tenants = tenants
	d.contractors = contractors
	d.order = order
	d.mu.Unlock()

	return nil
}

// Residence returns where the tenant lives.
func (d *Directory) Residence(_ context.Context, tenantID string) (*domain.Residence, error) {
	d.mu.RLock()
	res, ok := d.tenants[tenantID]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", tenantID, domain.ErrNotFound)
	}
	if res.UnitID != nil {
		u := *res.UnitID
		res.UnitID = &u
	}
	return &res, nil
}

// UnitBuilding returns the building a unit belongs to.
func (d *Directory) UnitBuilding(_ context.Context, unitID string) (string, error) {
	d.mu.RLock()
	b, ok := d.units[unitID]
	d.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unit %s: %w", unitID, domain.ErrNotFound)
	}
	return b, nil
}

// BuildingExists reports whether the building is known.
func (d *Directory) BuildingExists(_ context.Context, buildingID string) (bool, error) {
	d.mu.RLock()
	_, ok := d.buildings[buildingID]
	d.mu.RUnlock()
	return ok, nil
}

// Contractor returns a copy of the contractor entry.
func (d *Directory) Contractor(_ context.Context, id string) (*domain.Contractor, error) {
	d.mu.RLock()
	c, ok := d.contractors[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("contractor %s: %w", id, domain.ErrNotFound)
	}
	c.Specialties = slices.Clone(c.Specialties)
	return &c, nil
}

// ListContractors returns contractors in seed order, optionally only active ones.
func (d *Directory) ListContractors(_ context.Context, activeOnly bool) ([]domain.Contractor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Contractor, 0, len(d.order))
	for _, id := range d.order {
		c := d.contractors[id]
		if activeOnly && !c.IsActive {
			continue
		}
		c.Specialties = slices.Clone(c.Specialties)
		out = append(out, c)
	}
	return out, nil
}
