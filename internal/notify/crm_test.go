package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"atelier/pkg/api"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeCRM struct {
	got []api.OrderRequest
}

func (f *fakeCRM) CreateOrder(_ context.Context, req api.OrderRequest) error {
	f.got = append(f.got, req)
	return nil
}

func TestCRMNotifier(t *testing.T) {
	crm := &fakeCRM{}
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	order := testOrder()
	order.Deadline = &deadline
	order.EstimateServices = pq.StringArray{"embroidery"}
	order.EstimateTotal = decimal.NewNullDecimal(decimal.NewFromInt(15000))

	if err := NewCRMNotifier(crm).NotifyNewOrder(context.Background(), order); err != nil {
		t.Fatal(err)
	}
	if len(crm.got) != 1 {
		t.Fatalf("sent %d leads", len(crm.got))
	}
	req := crm.got[0]
	if req.ExternalID != "o-1" || req.Deadline != "2026-06-01" {
		t.Errorf("req = %+v", req)
	}
	if req.EstimateTotal == nil || *req.EstimateTotal != 15000 {
		t.Errorf("EstimateTotal = %v", req.EstimateTotal)
	}
}

func TestMulti_CallsAllAndJoinsErrors(t *testing.T) {
	failing := &fakeSender{err: errors.New("forbidden")}
	crm := &fakeCRM{}

	m := Multi{
		NewTelegramNotifierWithSender(failing, 1, zap.NewNop()),
		NewCRMNotifier(crm),
		NopNotifier{},
	}

	err := m.NotifyNewOrder(context.Background(), testOrder())
	if err == nil {
		t.Error("expected telegram error to surface")
	}
	if len(crm.got) != 1 {
		t.Error("CRM must be called even when telegram fails")
	}
}
