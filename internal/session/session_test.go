package session

import (
	"errors"
	"testing"
	"time"

	"atelier/internal/pricing"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew_IsEmpty(t *testing.T) {
	s := New(testNow)

	if s.ID == "" {
		t.Error("expected generated id")
	}
	if s.View != ViewLanding {
		t.Errorf("View = %q, want landing", s.View)
	}
	if s.Selection.GarmentID != "" || s.Selection.FabricID != "" || len(s.Selection.ServiceIDs) != 0 {
		t.Errorf("selection not empty: %+v", s.Selection)
	}
	if s.Estimate != nil {
		t.Error("new session should have no estimate")
	}
}

func TestApply_CalculateDressSilkEmbroidery(t *testing.T) {
	cat := pricing.DefaultCatalog()
	s := New(testNow)

	cmds := []Command{
		ShowView{View: ViewCalculator},
		SelectGarment{GarmentID: "dress"},
		SelectFabric{FabricID: "silk"},
		ToggleService{ServiceID: "embroidery"},
		Calculate{},
	}
	for _, cmd := range cmds {
		if err := s.Apply(cmd, cat, testNow); err != nil {
			t.Fatalf("Apply(%T): %v", cmd, err)
		}
	}

	if s.Estimate == nil {
		t.Fatal("expected estimate")
	}
	if !s.Estimate.Total.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Total = %s, want 15000", s.Estimate.Total)
	}
}

func TestApply_EstimateIsNotLive(t *testing.T) {
	cat := pricing.DefaultCatalog()
	s := New(testNow)

	for _, cmd := range []Command{SelectGarment{"coat"}, SelectFabric{"cotton"}, Calculate{}} {
		if err := s.Apply(cmd, cat, testNow); err != nil {
			t.Fatalf("Apply(%T): %v", cmd, err)
		}
	}

	// Changing inputs leaves the shown estimate alone until recalculated.
	if err := s.Apply(SelectFabric{"cashmere"}, cat, testNow); err != nil {
		t.Fatal(err)
	}
	if !s.Estimate.Total.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("estimate changed without Calculate: %s", s.Estimate.Total)
	}

	if err := s.Apply(Calculate{}, cat, testNow); err != nil {
		t.Fatal(err)
	}
	if !s.Estimate.Total.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Total = %s, want 40000", s.Estimate.Total)
	}
}

func TestApply_IncompleteKeepsPriorEstimate(t *testing.T) {
	cat := pricing.DefaultCatalog()

	s := New(testNow)
	if err := s.Apply(SelectFabric{"cotton"}, cat, testNow); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(Calculate{}, cat, testNow); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("err = %v, want ErrIncompleteSelection", err)
	}
	if s.Estimate != nil {
		t.Error("no estimate expected without garment")
	}

	prior := &pricing.Breakdown{Total: decimal.NewFromInt(123)}
	s.Estimate = prior
	s.Selection.FabricID = ""
	s.Selection.GarmentID = "dress"
	if err := s.Apply(Calculate{}, cat, testNow); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("err = %v, want ErrIncompleteSelection", err)
	}
	if s.Estimate != prior {
		t.Error("prior estimate was replaced")
	}
}

func TestApply_CalculateAgainstReplacedCatalog(t *testing.T) {
	s := New(testNow)
	if err := s.Apply(SelectGarment{GarmentID: "coat"}, pricing.DefaultCatalog(), testNow); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(SelectFabric{FabricID: "wool"}, pricing.DefaultCatalog(), testNow); err != nil {
		t.Fatal(err)
	}

	seasonal, err := pricing.NewCatalog(
		[]pricing.Garment{{ID: "dress", Name: "Платье", BasePrice: decimal.NewFromInt(9000)}},
		[]pricing.Fabric{{ID: "wool", Name: "Шерсть", Multiplier: decimal.NewFromInt(1)}},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Apply(Calculate{}, seasonal, testNow); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("err = %v, want ErrIncompleteSelection", err)
	}
	if s.Estimate != nil {
		t.Error("estimate must stay empty")
	}
}

func TestApply_RejectsUnknownChoices(t *testing.T) {
	cat := pricing.DefaultCatalog()
	updated := testNow.Add(time.Hour)

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"garment", SelectGarment{"kimono"}, ErrUnknownGarment},
		{"fabric", SelectFabric{"denim"}, ErrUnknownFabric},
		{"view", ShowView{"admin"}, ErrUnknownView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testNow)
			err := s.Apply(tt.cmd, cat, updated)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !IsRejection(err) {
				t.Error("expected rejection")
			}
			if !s.UpdatedAt.Equal(testNow) {
				t.Error("rejected command touched UpdatedAt")
			}
		})
	}
}

func TestApply_ToggleTwice(t *testing.T) {
	cat := pricing.DefaultCatalog()
	s := New(testNow)

	for i := 0; i < 2; i++ {
		if err := s.Apply(ToggleService{"express"}, cat, testNow); err != nil {
			t.Fatal(err)
		}
	}
	if s.Selection.ServiceIDs.Has("express") {
		t.Error("double toggle should remove express")
	}
}

func TestApply_Reset(t *testing.T) {
	cat := pricing.DefaultCatalog()
	s := New(testNow)
	for _, cmd := range []Command{SelectGarment{"suit"}, SelectFabric{"wool"}, ToggleService{"lining"}, Calculate{}, Reset{}} {
		if err := s.Apply(cmd, cat, testNow); err != nil {
			t.Fatalf("Apply(%T): %v", cmd, err)
		}
	}

	if s.Selection.Complete() || len(s.Selection.ServiceIDs) != 0 || s.Estimate != nil {
		t.Errorf("reset left state behind: %+v", s)
	}
	if s.View != ViewCalculator {
		t.Errorf("View = %q, want calculator", s.View)
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := New(testNow)
	s.Selection.ServiceIDs.Toggle("fitting")
	s.Estimate = &pricing.Breakdown{Services: []pricing.ServiceLine{{ID: "fitting"}}}

	c := s.Clone()
	c.Selection.ServiceIDs.Toggle("express")
	c.Estimate.Services[0].ID = "changed"

	if s.Selection.ServiceIDs.Has("express") {
		t.Error("clone shares service set")
	}
	if s.Estimate.Services[0].ID != "fitting" {
		t.Error("clone shares estimate lines")
	}
}
