package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/pricing"

	"go.uber.org/zap"
)

// Service loads a session, applies one command and stores the result.
type Service struct {
	store   Store
	catalog *pricing.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(store Store, catalog *pricing.Catalog, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) Catalog() *pricing.Catalog {
	return s.catalog
}

func (s *Service) Create(ctx context.Context) (*Session, error) {
	sess := New(s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Debug("Session created", zap.String("session_id", sess.ID))
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// End discards a session. Ending an unknown session is not an error.
func (s *Service) End(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	s.logger.Debug("Session ended", zap.String("session_id", id))
	return nil
}

// Dispatch applies cmd to session id. When the command is rejected the
// returned session is the unchanged stored state together with the error.
func (s *Service) Dispatch(ctx context.Context, id string, cmd Command) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := sess.Clone()
	if err := sess.Apply(cmd, s.catalog, s.now()); err != nil {
		s.logger.Debug("Command rejected",
			zap.String("session_id", id),
			zap.String("command", fmt.Sprintf("%T", cmd)),
			zap.Error(err))
		return before, err
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if _, ok := cmd.(Calculate); ok && sess.Estimate != nil {
		s.logger.Info("Estimate calculated",
			zap.String("session_id", id),
			zap.String("garment", sess.Selection.GarmentID),
			zap.String("fabric", sess.Selection.FabricID),
			zap.Strings("services", sess.Selection.ServiceIDs.IDs()),
			zap.String("total", sess.Estimate.Total.String()))
	}
	return sess, nil
}

// IsRejection reports whether err is a user-facing command rejection rather
// than a storage failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrUnknownView) ||
		errors.Is(err, ErrUnknownGarment) ||
		errors.Is(err, ErrUnknownFabric) ||
		errors.Is(err, ErrIncompleteSelection)
}
