package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateID       = errors.New("duplicate catalog id")
	ErrEmptyID           = errors.New("empty catalog id")
	ErrNegativePrice     = errors.New("negative price")
	ErrInvalidMultiplier = errors.New("fabric multiplier must be at least 1")
	ErrFractionalPrice   = errors.New("service price must be whole currency units")
)

// Garment is a category of clothing with the price of tailoring it in the
// cheapest fabric.
type Garment struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type Fabric struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Service is an optional add-on charged as a flat fee.
type Service struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Catalog is an immutable set of the three price tables. Lookups are by id,
// listings keep the order the entries were supplied in.
type Catalog struct {
	garments []Garment
	fabrics  []Fabric
	services []Service

	garmentByID map[string]Garment
	fabricByID  map[string]Fabric
	serviceByID map[string]Service
}

func NewCatalog(garments []Garment, fabrics []Fabric, services []Service) (*Catalog, error) {
	c := &Catalog{
		garments:    append([]Garment(nil), garments...),
		fabrics:     append([]Fabric(nil), fabrics...),
		services:    append([]Service(nil), services...),
		garmentByID: make(map[string]Garment, len(garments)),
		fabricByID:  make(map[string]Fabric, len(fabrics)),
		serviceByID: make(map[string]Service, len(services)),
	}

	for _, g := range c.garments {
		if err := checkID(g.ID, c.garmentByID); err != nil {
			return nil, fmt.Errorf("garment %q: %w", g.ID, err)
		}
		if g.BasePrice.IsNegative() {
			return nil, fmt.Errorf("garment %q: %w", g.ID, ErrNegativePrice)
		}
		c.garmentByID[g.ID] = g
	}

	for _, f := range c.fabrics {
		if err := checkID(f.ID, c.fabricByID); err != nil {
			return nil, fmt.Errorf("fabric %q: %w", f.ID, err)
		}
		if f.Multiplier.LessThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("fabric %q: %w", f.ID, ErrInvalidMultiplier)
		}
		c.fabricByID[f.ID] = f
	}

	for _, s := range c.services {
		if err := checkID(s.ID, c.serviceByID); err != nil {
			return nil, fmt.Errorf("service %q: %w", s.ID, err)
		}
		if s.Price.IsNegative() {
			return nil, fmt.Errorf("service %q: %w", s.ID, ErrNegativePrice)
		}
		// Whole prices keep an estimate equal to the rounded base plus the
		// service sum.
		if !s.Price.IsInteger() {
			return nil, fmt.Errorf("service %q: %w", s.ID, ErrFractionalPrice)
		}
		c.serviceByID[s.ID] = s
	}

	return c, nil
}

func checkID[T any](id string, seen map[string]T) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := seen[id]; ok {
		return ErrDuplicateID
	}
	return nil
}

// DefaultCatalog returns the atelier's standard price list (rubles).
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]Garment{
			{ID: "dress", Name: "Платье", BasePrice: decimal.NewFromInt(8000)},
			{ID: "suit", Name: "Костюм", BasePrice: decimal.NewFromInt(15000)},
			{ID: "coat", Name: "Пальто", BasePrice: decimal.NewFromInt(20000)},
			{ID: "shirt", Name: "Рубашка", BasePrice: decimal.NewFromInt(4000)},
			{ID: "pants", Name: "Брюки", BasePrice: decimal.NewFromInt(5000)},
		},
		[]Fabric{
			{ID: "cotton", Name: "Хлопок", Multiplier: decimal.NewFromInt(1)},
			{ID: "wool", Name: "Шерсть", Multiplier: decimal.RequireFromString("1.3")},
			{ID: "silk", Name: "Шелк", Multiplier: decimal.RequireFromString("1.5")},
			{ID: "cashmere", Name: "Кашемир", Multiplier: decimal.NewFromInt(2)},
			{ID: "velvet", Name: "Бархат", Multiplier: decimal.RequireFromString("1.4")},
		},
		[]Service{
			{ID: "express", Name: "Экспресс-изготовление (3 дня)", Price: decimal.NewFromInt(5000)},
			{ID: "fitting", Name: "Дополнительная примерка", Price: decimal.NewFromInt(1500)},
			{ID: "embroidery", Name: "Вышивка", Price: decimal.NewFromInt(3000)},
			{ID: "lining", Name: "Премиальная подкладка", Price: decimal.NewFromInt(2000)},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

func (c *Catalog) Garment(id string) (Garment, bool) {
	g, ok := c.garmentByID[id]
	return g, ok
}

func (c *Catalog) Fabric(id string) (Fabric, bool) {
	f, ok := c.fabricByID[id]
	return f, ok
}

func (c *Catalog) Service(id string) (Service, bool) {
	s, ok := c.serviceByID[id]
	return s, ok
}

func (c *Catalog) Garments() []Garment {
	return append([]Garment(nil), c.garments...)
}

func (c *Catalog) Fabrics() []Fabric {
	return append([]Fabric(nil), c.fabrics...)
}

func (c *Catalog) Services() []Service {
	return append([]Service(nil), c.services...)
}
