package pricing

import (
	"github.com/shopspring/decimal"
)

// ServiceLine is one add-on in a breakdown.
type ServiceLine struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Breakdown itemises an estimate. Total is the only rounded figure.
type Breakdown struct {
	Garment         Garment         `json:"garment"`
	Fabric          Fabric          `json:"fabric"`
	Base            decimal.Decimal `json:"base"`
	FabricSurcharge decimal.Decimal `json:"fabric_surcharge"`
	Services        []ServiceLine   `json:"services"`
	Total           decimal.Decimal `json:"total"`
}

// Estimate returns the price for sel, or false when the garment or fabric is
// unset or not in the catalog.
func Estimate(sel Selection, c *Catalog) (decimal.Decimal, bool) {
	b, ok := Calculate(sel, c)
	if !ok {
		return decimal.Zero, false
	}
	return b.Total, true
}

// Calculate prices sel against c:
//
//	total = round(base × multiplier + Σ service prices)
//
// Unknown service ids are skipped. Rounding is half-up to whole currency
// units; amounts are never negative so half-away-from-zero is the same thing.
func Calculate(sel Selection, c *Catalog) (Breakdown, bool) {
	garment, ok := c.Garment(sel.GarmentID)
	if !ok {
		return Breakdown{}, false
	}
	fabric, ok := c.Fabric(sel.FabricID)
	if !ok {
		return Breakdown{}, false
	}

	tailored := garment.BasePrice.Mul(fabric.Multiplier)
	b := Breakdown{
		Garment:         garment,
		Fabric:          fabric,
		Base:            garment.BasePrice,
		FabricSurcharge: tailored.Sub(garment.BasePrice),
		Services:        []ServiceLine{},
	}

	total := tailored
	// Catalog order keeps the breakdown stable regardless of toggle order.
	for _, s := range c.services {
		if !sel.ServiceIDs.Has(s.ID) {
			continue
		}
		b.Services = append(b.Services, ServiceLine{ID: s.ID, Name: s.Name, Price: s.Price})
		total = total.Add(s.Price)
	}

	b.Total = total.Round(0)
	return b, true
}
