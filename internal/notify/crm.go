package notify

import (
	"context"
	"errors"

	"atelier/internal/orders"
	"atelier/pkg/api"
)

type CRMClient interface {
	CreateOrder(ctx context.Context, req api.OrderRequest) error
}

// CRMNotifier forwards accepted orders to the CRM as leads.
type CRMNotifier struct {
	client CRMClient
}

func NewCRMNotifier(client CRMClient) *CRMNotifier {
	return &CRMNotifier{client: client}
}

func (n *CRMNotifier) NotifyNewOrder(ctx context.Context, order orders.Order) error {
	req := api.OrderRequest{
		ExternalID:  order.ID,
		Name:        order.Name,
		Phone:       order.Phone,
		Email:       order.Email,
		GarmentType: order.GarmentType,
		Description: order.Description,
		Services:    order.EstimateServices,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if order.Deadline != nil {
		req.Deadline = order.Deadline.Format(orders.DeadlineLayout)
	}
	if order.EstimateTotal.Valid {
		total := order.EstimateTotal.Decimal.IntPart()
		req.EstimateTotal = &total
	}

	return n.client.CreateOrder(ctx, req)
}

// Multi fans an order out to every notifier and joins their errors.
type Multi []orders.Notifier

func (m Multi) NotifyNewOrder(ctx context.Context, order orders.Order) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyNewOrder(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
