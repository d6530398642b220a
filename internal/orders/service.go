package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"atelier/internal/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ackTitle   = "Заказ принят"
	ackMessage = "Мы свяжемся с вами в ближайшее время для уточнения деталей."

	defaultNotifyTimeout = time.Minute
)

type Repository interface {
	SaveOrder(ctx context.Context, order Order) error
}

type Notifier interface {
	NotifyNewOrder(ctx context.Context, order Order) error
}

type SessionReader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

type Service struct {
	repo     Repository
	notifier Notifier
	sessions SessionReader
	logger   *zap.Logger
	now      func() time.Time

	notifyTimeout time.Duration
	pending       sync.WaitGroup
}

func NewService(repo Repository, notifier Notifier, sessions SessionReader, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,

		notifyTimeout: defaultNotifyTimeout,
	}
}

// Submit accepts an order. Only a *ValidationError is returned to the caller;
// storage failures are logged and the order is still acknowledged.
// Notifications are sent in the background and never delay the reply.
func (s *Service) Submit(ctx context.Context, req Request) (*Acknowledgement, error) {
	deadline, err := Validate(req)
	if err != nil {
		return nil, err
	}

	order := Order{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Phone:       NormalizePhoneNumber(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		GarmentType: strings.TrimSpace(req.GarmentType),
		Description: strings.TrimSpace(req.Description),
		Deadline:    deadline,
		Status:      StatusNew,
		CreatedAt:   s.now(),
	}
	s.attachEstimate(ctx, &order, req.SessionID)

	if s.repo != nil {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			s.logger.Error("Failed to save order",
				zap.String("order_id", order.ID),
				zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.pending.Add(1)
		go s.notify(context.WithoutCancel(ctx), order)
	}

	s.logger.Info("Order accepted",
		zap.String("order_id", order.ID),
		zap.String("garment_type", order.GarmentType),
		zap.Bool("has_estimate", order.EstimateTotal.Valid))

	return &Acknowledgement{
		OrderID: order.ID,
		Title:   ackTitle,
		Message: ackMessage,
	}, nil
}

func (s *Service) notify(ctx context.Context, order Order) {
	defer s.pending.Done()

	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyNewOrder(ctx, order); err != nil {
		s.logger.Error("Failed to send order notification",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// Wait blocks until notifications already started have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) attachEstimate(ctx context.Context, order *Order, sessionID string) {
	if sessionID == "" || s.sessions == nil {
		return
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Warn("Failed to load session for order",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
		return
	}
	if sess.Estimate == nil {
		return
	}

	order.EstimateGarment = sess.Estimate.Garment.ID
	order.EstimateFabric = sess.Estimate.Fabric.ID
	for _, line := range sess.Estimate.Services {
		order.EstimateServices = append(order.EstimateServices, line.ID)
	}
	order.EstimateTotal = decimal.NewNullDecimal(sess.Estimate.Total)
}

// FormatNotification renders an order for the admin channel.
func FormatNotification(order Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📦 Новый заказ %s\n\n", order.ID)
	fmt.Fprintf(&b, "Имя: %s\n", order.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", FormatPhoneNumber(order.Phone))
	if order.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.Email)
	}
	fmt.Fprintf(&b, "Изделие: %s\n", order.GarmentType)
	if order.Description != "" {
		fmt.Fprintf(&b, "Описание: %s\n", order.Description)
	}
	if order.Deadline != nil {
		fmt.Fprintf(&b, "Желаемый срок: %s\n", order.Deadline.Format("02.01.2006"))
	}
	if order.EstimateTotal.Valid {
		b.WriteString("──────────────────\n")
		fmt.Fprintf(&b, "Расчёт: %s / %s", order.EstimateGarment, order.EstimateFabric)
		if len(order.EstimateServices) > 0 {
			fmt.Fprintf(&b, " + %s", strings.Join(order.EstimateServices, ", "))
		}
		fmt.Fprintf(&b, "\nОриентировочная цена: %s ₽\n", order.EstimateTotal.Decimal.StringFixed(0))
	}
	fmt.Fprintf(&b, "Дата: %s", order.CreatedAt.Format("02.01.2006 15:04"))

	return b.String()
}
