package session

import (
	"errors"
	"fmt"
	"time"

	"atelier/internal/pricing"

	"github.com/google/uuid"
)

type View string

const (
	ViewLanding    View = "landing"
	ViewCalculator View = "calculator"
	ViewOrder      View = "order"
)

func (v View) Valid() bool {
	switch v {
	case ViewLanding, ViewCalculator, ViewOrder:
		return true
	}
	return false
}

var (
	ErrNotFound            = errors.New("session not found")
	ErrUnknownView         = errors.New("unknown view")
	ErrUnknownGarment      = errors.New("unknown garment")
	ErrUnknownFabric       = errors.New("unknown fabric")
	ErrIncompleteSelection = errors.New("garment and fabric must both be chosen")
)

// Session is one visitor's calculator state. Estimate holds the result of the
// last explicit Calculate and is not refreshed by later selection changes.
type Session struct {
	ID        string             `json:"id"`
	View      View               `json:"view"`
	Selection pricing.Selection  `json:"selection"`
	Estimate  *pricing.Breakdown `json:"estimate,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		View:      ViewLanding,
		Selection: pricing.Selection{ServiceIDs: pricing.NewServiceSet()},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Command is a single UI event applied to a session.
type Command interface {
	apply(s *Session, cat *pricing.Catalog) error
}

type ShowView struct{ View View }

type SelectGarment struct{ GarmentID string }

type SelectFabric struct{ FabricID string }

// ToggleService flips membership of ServiceID. Ids outside the catalog are
// stored as-is and ignored by pricing.
type ToggleService struct{ ServiceID string }

type Calculate struct{}

// Reset clears the selection and estimate and returns to the calculator.
type Reset struct{}

// Apply runs cmd against the session. On error the session is unchanged.
func (s *Session) Apply(cmd Command, cat *pricing.Catalog, now time.Time) error {
	if s.Selection.ServiceIDs == nil {
		s.Selection.ServiceIDs = pricing.NewServiceSet()
	}
	if err := cmd.apply(s, cat); err != nil {
		return err
	}
	s.UpdatedAt = now
	return nil
}

func (c ShowView) apply(s *Session, _ *pricing.Catalog) error {
	if !c.View.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, c.View)
	}
	s.View = c.View
	return nil
}

func (c SelectGarment) apply(s *Session, cat *pricing.Catalog) error {
	if _, ok := cat.Garment(c.GarmentID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGarment, c.GarmentID)
	}
	s.Selection.GarmentID = c.GarmentID
	return nil
}

func (c SelectFabric) apply(s *Session, cat *pricing.Catalog) error {
	if _, ok := cat.Fabric(c.FabricID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFabric, c.FabricID)
	}
	s.Selection.FabricID = c.FabricID
	return nil
}

func (c ToggleService) apply(s *Session, _ *pricing.Catalog) error {
	s.Selection.ServiceIDs.Toggle(c.ServiceID)
	return nil
}

func (Calculate) apply(s *Session, cat *pricing.Catalog) error {
	if !s.Selection.Complete() {
		return ErrIncompleteSelection
	}
	b, ok := pricing.Calculate(s.Selection, cat)
	if !ok {
		// ids chosen against a catalog that has since been replaced
		return fmt.Errorf("%w: selection is no longer in the catalog", ErrIncompleteSelection)
	}
	s.Estimate = &b
	return nil
}

func (Reset) apply(s *Session, _ *pricing.Catalog) error {
	s.View = ViewCalculator
	s.Selection = pricing.Selection{ServiceIDs: pricing.NewServiceSet()}
	s.Estimate = nil
	return nil
}

// Clone returns a deep copy so stores never share maps with callers.
func (s *Session) Clone() *Session {
	out := *s
	out.Selection.ServiceIDs = s.Selection.ServiceIDs.Clone()
	if s.Estimate != nil {
		est := *s.Estimate
		est.Services = append([]pricing.ServiceLine(nil), s.Estimate.Services...)
		out.Estimate = &est
	}
	return &out
}
