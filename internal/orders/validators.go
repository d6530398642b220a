package orders

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ValidationError lists the form fields that failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"name", "phone", "garment_type", "deadline"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// Validate checks required fields are present. A deadline, when given, must
// be a date.
func Validate(req Request) (*time.Time, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "required"
	}
	if strings.TrimSpace(req.GarmentType) == "" {
		fields["garment_type"] = "required"
	}

	var deadline *time.Time
	if d := strings.TrimSpace(req.Deadline); d != "" {
		t, err := time.Parse(DeadlineLayout, d)
		if err != nil {
			fields["deadline"] = fmt.Sprintf("expected %s", DeadlineLayout)
		} else {
			deadline = &t
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return deadline, nil
}

// NormalizePhoneNumber reduces phone to digits and brings domestic numbers
// (8XXXXXXXXXX, 7XXXXXXXXXX or a bare 9XXXXXXXXX) to +7XXXXXXXXXX. Other numbers
// keep a leading plus if the customer typed one. Input without digits is
// returned trimmed so the operator still sees what was entered.
func NormalizePhoneNumber(phone string) string {
	trimmed := strings.TrimSpace(phone)
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, trimmed)

	switch {
	case digits == "":
		return trimmed
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		return "+7" + digits[1:]
	case len(digits) == 10 && digits[0] == '9':
		return "+7" + digits
	case strings.HasPrefix(trimmed, "+"):
		return "+" + digits
	default:
		return digits
	}
}

// FormatPhoneNumber renders +7XXXXXXXXXX as +7 (XXX) XXX-XX-XX and leaves
// anything else alone.
func FormatPhoneNumber(phone string) string {
	if len(phone) != 12 || !strings.HasPrefix(phone, "+7") {
		return phone
	}
	d := phone[2:]
	return fmt.Sprintf("+7 (%s) %s-%s-%s", d[:3], d[3:6], d[6:8], d[8:])
}
