package pricing

import (
	"encoding/json"
	"sort"
)

// ServiceSet is a set of add-on service ids. Order carries no meaning.
type ServiceSet map[string]struct{}

func NewServiceSet(ids ...string) ServiceSet {
	s := make(ServiceSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ServiceSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle adds id when absent and removes it when present.
func (s ServiceSet) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// IDs returns the members sorted, for stable output.
func (s ServiceSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s ServiceSet) Clone() ServiceSet {
	out := make(ServiceSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s ServiceSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *ServiceSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewServiceSet(ids...)
	return nil
}

// Selection is what the customer picked in the calculator. Empty ids mean
// nothing was chosen yet.
type Selection struct {
	GarmentID  string     `json:"garment_id,omitempty"`
	FabricID   string     `json:"fabric_id,omitempty"`
	ServiceIDs ServiceSet `json:"service_ids"`
}

// Complete reports whether both a garment and a fabric were chosen.
func (s Selection) Complete() bool {
	return s.GarmentID != "" && s.FabricID != ""
}
