package orders

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// DeadlineLayout is the format of the desired-deadline date field.
const DeadlineLayout = "2006-01-02"

// Request is the order form as submitted. Only Name, Phone and GarmentType
// are required.
type Request struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	GarmentType string `json:"garment_type"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	// SessionID attaches the calculator estimate shown to the customer.
	SessionID string `json:"session_id,omitempty"`
}

type Order struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Phone       string     `db:"phone" json:"phone"`
	Email       string     `db:"email" json:"email,omitempty"`
	GarmentType string     `db:"garment_type" json:"garment_type"`
	Description string     `db:"description" json:"description,omitempty"`
	Deadline    *time.Time `db:"deadline" json:"deadline,omitempty"`

	// Snapshot of the last calculator estimate, if the customer made one.
	EstimateGarment  string              `db:"estimate_garment" json:"estimate_garment,omitempty"`
	EstimateFabric   string              `db:"estimate_fabric" json:"estimate_fabric,omitempty"`
	EstimateServices pq.StringArray      `db:"estimate_services" json:"estimate_services,omitempty"`
	EstimateTotal    decimal.NullDecimal `db:"estimate_total" json:"estimate_total"`

	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusProcessing, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Acknowledgement is what the customer sees after submitting.
type Acknowledgement struct {
	OrderID string `json:"order_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
