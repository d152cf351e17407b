package directory

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed is the on-disk layout of the directory file.
type Seed struct {
	Buildings   []BuildingSeed   `yaml:"buildings"`
	Tenants     []TenantSeed     `yaml:"tenants"`
	Contractors []ContractorSeed `yaml:"contractors"`
}

type BuildingSeed struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Units []string `yaml:"units"`
}

type TenantSeed struct {
	ID         string  `yaml:"id"`
	BuildingID string  `yaml:"building_id"`
	UnitID     *string `yaml:"unit_id"`
}

type ContractorSeed struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Avatar      string   `yaml:"avatar"`
	Phone       string   `yaml:"phone"`
	Email       string   `yaml:"email"`
	Rating      float64  `yaml:"rating"`
	Specialties []string `yaml:"specialties"`
	IsActive    *bool    `yaml:"is_active"`
}

// ParseSeed decodes a YAML seed. Unknown keys are rejected.
func ParseSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("decode directory seed: %w", err)
	}
	return seed, nil
}

// Validate checks referential integrity of the seed.
func (s Seed) Validate() error {
	var errs []string

	units := make(map[string]string)
	buildings := make(map[string]bool, len(s.Buildings))
	for _, b := range s.Buildings {
		if strings.TrimSpace(b.ID) == "" {
			errs = append(errs, "building with empty id")
			continue
		}
		if buildings[b.ID] {
			errs = append(errs, fmt.Sprintf("duplicate building %s", b.ID))
		}
		buildings[b.ID] = true
		for _, u := range b.Units {
			if other, ok := units[u]; ok {
				errs = append(errs, fmt.Sprintf("unit %s listed in %s and %s", u, other, b.ID))
			}
			units[u] = b.ID
		}
	}

	tenants := make(map[string]bool, len(s.Tenants))
	for _, t := range s.Tenants {
		switch {
		case strings.TrimSpace(t.ID) == "":
			errs = append(errs, "tenant with empty id")
		case tenants[t.ID]:
			errs = append(errs, fmt.Sprintf("duplicate tenant %s", t.ID))
		case !buildings[t.BuildingID]:
			errs = append(errs, fmt.Sprintf("tenant %s: unknown building %s", t.ID, t.BuildingID))
		case t.UnitID != nil && units[*t.UnitID] != t.BuildingID:
			errs = append(errs, fmt.Sprintf("tenant %s: unit %s is not in building %s", t.ID, *t.UnitID, t.BuildingID))
		}
		tenants[t.ID] = true
	}

	contractors := make(map[string]bool, len(s.Contractors))
	for _, c := range s.Contractors {
		switch {
		case strings.TrimSpace(c.ID) == "":
			errs = append(errs, "contractor with empty id")
		case contractors[c.ID]:
			errs = append(errs, fmt.Sprintf("duplicate contractor %s", c.ID))
		case c.Rating < 0 || c.Rating > 5:
			errs = append(errs, fmt.Sprintf("contractor %s: rating must be within 0..5", c.ID))
		}
		contractors[c.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("directory seed: %s", strings.Join(errs, "; "))
	}
	return nil
}
