package orders

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+7 (912) 345-67-89", "+79123456789"},
		{"8 912 345 67 89", "+79123456789"},
		{"9123456789", "+79123456789"},
		{"+49 30 1234567", "+49301234567"},
		{"79123456789", "+79123456789"},
		{"123", "123"},
		{"  telegram  ", "telegram"},
	}

	for _, tt := range tests {
		if got := NormalizePhoneNumber(tt.in); got != tt.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	deadline, err := Validate(Request{Name: "Иван", Phone: "123", GarmentType: "Костюм"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if deadline != nil {
		t.Error("deadline should be nil when not given")
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	if got := FormatPhoneNumber("+79123456789"); got != "+7 (912) 345-67-89" {
		t.Errorf("domestic = %q", got)
	}
	if got := FormatPhoneNumber("+49301234567"); got != "+49301234567" {
		t.Errorf("foreign = %q", got)
	}
}
