package pricing

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of an alternate pricing schedule:
//
//	garments:
//	  - {id: dress, name: Платье, base_price: 8000}
//	fabrics:
//	  - {id: silk, name: Шелк, multiplier: "1.5"}
//	services:
//	  - {id: express, name: Экспресс, price: 5000}
//
// Amounts are read as strings so multipliers like 1.3 stay exact.
type catalogFile struct {
	Garments []struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		BasePrice string `yaml:"base_price"`
	} `yaml:"garments"`
	Fabrics []struct {
		ID         string `yaml:"id"`
		Name       string `yaml:"name"`
		Multiplier string `yaml:"multiplier"`
	} `yaml:"fabrics"`
	Services []struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Price string `yaml:"price"`
	} `yaml:"services"`
}

// LoadCatalog reads a pricing schedule from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return DecodeCatalog(f)
}

func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	garments := make([]Garment, 0, len(raw.Garments))
	for _, g := range raw.Garments {
		price, err := decimal.NewFromString(g.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("garment %q base_price: %w", g.ID, err)
		}
		garments = append(garments, Garment{ID: g.ID, Name: g.Name, BasePrice: price})
	}

	fabrics := make([]Fabric, 0, len(raw.Fabrics))
	for _, f := range raw.Fabrics {
		mult, err := decimal.NewFromString(f.Multiplier)
		if err != nil {
			return nil, fmt.Errorf("fabric %q multiplier: %w", f.ID, err)
		}
		fabrics = append(fabrics, Fabric{ID: f.ID, Name: f.Name, Multiplier: mult})
	}

	services := make([]Service, 0, len(raw.Services))
	for _, s := range raw.Services {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("service %q price: %w", s.ID, err)
		}
		services = append(services, Service{ID: s.ID, Name: s.Name, Price: price})
	}

	return NewCatalog(garments, fabrics, services)
}
