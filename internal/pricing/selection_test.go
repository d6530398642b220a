package pricing

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestServiceSet_DoubleToggleRestores(t *testing.T) {
	for _, start := range [][]string{nil, {"express"}, {"express", "lining"}} {
		for _, id := range []string{"express", "fitting", "unknown"} {
			set := NewServiceSet(start...)
			before := set.IDs()

			set.Toggle(id)
			if set.Has(id) == NewServiceSet(start...).Has(id) {
				t.Errorf("single toggle of %q on %v did not flip membership", id, start)
			}
			set.Toggle(id)

			if !reflect.DeepEqual(set.IDs(), before) {
				t.Errorf("double toggle of %q: got %v, want %v", id, set.IDs(), before)
			}
		}
	}
}

func TestServiceSet_JSONIsSortedList(t *testing.T) {
	sel := Selection{GarmentID: "dress", ServiceIDs: NewServiceSet("lining", "embroidery", "lining")}

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"garment_id":"dress","service_ids":["embroidery","lining"]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var back Selection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.ServiceIDs.Has("embroidery") || !back.ServiceIDs.Has("lining") || len(back.ServiceIDs) != 2 {
		t.Errorf("round trip lost members: %v", back.ServiceIDs.IDs())
	}
}

func TestSelection_Complete(t *testing.T) {
	if (Selection{GarmentID: "dress"}).Complete() {
		t.Error("garment only should be incomplete")
	}
	if !(Selection{GarmentID: "dress", FabricID: "silk"}).Complete() {
		t.Error("garment and fabric should be complete")
	}
}
