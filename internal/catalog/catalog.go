package catalog

import (
	"errors"
	"sort"
)

var (
	// ErrUnknownPackage is returned when a package id is outside the catalog.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrUnknownAddOn is returned when an add-on id is outside the catalog.
	ErrUnknownAddOn = errors.New("unknown add-on")
)

// Package identifiers offered by the catalog.
const (
	PackageBasic   = "Basic"
	PackageClassic = "Classic"
	PackagePremium = "Premium"
	PackageLuxury  = "Luxury"
)

// Add-on identifiers offered by the catalog. AddOnNone is always valid and free.
const (
	AddOnPhotographer = "Photographer"
	AddOnPhotobooth   = "Photobooth"
	AddOnMC           = "MC"
	AddOnNone         = "None"
)

// Package describes a fixed event bundle with inclusive guest bounds.
// Prices are stored in minor currency units.
type Package struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MinGuests int    `json:"minGuests"`
	MaxGuests int    `json:"maxGuests"`
	BasePrice int64  `json:"basePrice"`
	Theme     string `json:"theme"`
}

// AddOn describes an optional supplementary service with a flat price.
type AddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog provides immutable lookups for packages and add-ons. The maps are
// built once at construction and never mutated afterwards.
type Catalog struct {
	packages map[string]Package
	addOns   map[string]AddOn
}

// New constructs a catalog from explicit seed data.
func New(packages []Package, addOns []AddOn) *Catalog {
	c := &Catalog{
		packages: make(map[string]Package, len(packages)),
		addOns:   make(map[string]AddOn, len(addOns)),
	}
	for _, p := range packages {
		c.packages[p.ID] = p
	}
	for _, a := range addOns {
		c.addOns[a.ID] = a
	}
	return c
}

// NewDefault constructs the catalog seeded with the standard offering.
func NewDefault() *Catalog {
	return New(
		[]Package{
			{ID: PackageBasic, Name: "Basic Package", MinGuests: 15, MaxGuests: 30, BasePrice: 25_000, Theme: "Rainbow Baby Shower"},
			{ID: PackageClassic, Name: "Classic Package", MinGuests: 30, MaxGuests: 50, BasePrice: 50_000, Theme: "Peace and Love Baby Shower"},
			{ID: PackagePremium, Name: "Premium Package", MinGuests: 50, MaxGuests: 100, BasePrice: 100_000, Theme: "Fairytale Baby Shower"},
			{ID: PackageLuxury, Name: "Luxury Package", MinGuests: 100, MaxGuests: 500, BasePrice: 250_000, Theme: "The Adventure Begin Baby Shower"},
		},
		[]AddOn{
			{ID: AddOnPhotographer, Name: "Photographer", Price: 30_000},
			{ID: AddOnPhotobooth, Name: "Photobooth", Price: 35_000},
			{ID: AddOnMC, Name: "Master of Event (MC)", Price: 45_000},
			{ID: AddOnNone, Name: "None", Price: 0},
		},
	)
}

// LookupPackage resolves a package id.
func (c *Catalog) LookupPackage(id string) (Package, error) {
	p, ok := c.packages[id]
	if !ok {
		return Package{}, ErrUnknownPackage
	}
	return p, nil
}

// LookupAddOn resolves an add-on id. AddOnNone always resolves to a
// zero-price add-on even when the catalog was seeded without it.
func (c *Catalog) LookupAddOn(id string) (AddOn, error) {
	a, ok := c.addOns[id]
	if !ok {
		if id == AddOnNone {
			return AddOn{ID: AddOnNone, Name: "None", Price: 0}, nil
		}
		return AddOn{}, ErrUnknownAddOn
	}
	return a, nil
}

// Packages returns all packages ordered by base price ascending.
func (c *Catalog) Packages() []Package {
	out := make([]Package, 0, len(c.packages))
	for _, p := range c.packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BasePrice < out[j].BasePrice })
	return out
}

// AddOns returns all add-ons ordered by price ascending.
func (c *Catalog) AddOns() []AddOn {
	out := make([]AddOn, 0, len(c.addOns))
	for _, a := range c.addOns {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
