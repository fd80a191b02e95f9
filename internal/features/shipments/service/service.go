package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cargo-tracker/internal/core/logger"
	"cargo-tracker/internal/core/metrics"
	"cargo-tracker/internal/features/shipments/domain"
	"cargo-tracker/internal/features/shipments/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 8

// ShipmentServiceImpl implements ports.ShipmentService.
type ShipmentServiceImpl struct {
	repo        ports.ShipmentRepository
	progression *domain.Progression
	concurrency int
	logger      *zap.Logger
}

// Option configures a ShipmentServiceImpl.
type Option func(*ShipmentServiceImpl)

// WithBulkConcurrency caps concurrent writes while persisting a bulk update.
func WithBulkConcurrency(n int) Option {
	return func(s *ShipmentServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewShipmentService creates a new ShipmentServiceImpl.
func NewShipmentService(repo ports.ShipmentRepository, progression *domain.Progression, opts ...Option) *ShipmentServiceImpl {
	s := &ShipmentServiceImpl{
		repo:        repo,
		progression: progression,
		concurrency: defaultBulkConcurrency,
		logger:      logger.Named("shipments.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stages returns the ordered stage catalog.
func (s *ShipmentServiceImpl) Stages() []domain.StageDefinition {
	return s.progression.Template().Definitions()
}

// CreateShipment builds a shipment with its stages initialised for the
// requested status and stores it.
func (s *ShipmentServiceImpl) CreateShipment(ctx context.Context, params domain.NewShipmentParams) (*domain.Shipment, error) {
	shipment, err := domain.NewShipment(s.progression, params)
	if err != nil {
		rejected(err)
		return nil, err
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		if errors.Is(err, domain.ErrDuplicateTrackingNumber) {
			rejected(err)
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to create shipment: %w", err)
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(shipment.TransportMode)).Inc()
	s.logger.Info("Shipment created",
		zap.String("shipment_id", shipment.ID),
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.String("status", shipment.Status),
	)

	return shipment, nil
}

// ListShipments returns every stored shipment.
func (s *ShipmentServiceImpl) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// TrackShipment looks up a shipment by tracking number. Surrounding whitespace is ignored.
func (s *ShipmentServiceImpl) TrackShipment(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, domain.ErrTrackingNumberRequired
	}

	shipment, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to track shipment: %w", err)
	}
	return shipment, nil
}

// UpdateStatus moves one shipment to status. The status is validated before
// the shipment is loaded.
func (s *ShipmentServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*domain.Shipment, error) {
	status = strings.TrimSpace(status)
	if _, err := s.progression.ApplyStatus(status); err != nil {
		rejected(err)
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to load shipment: %w", err)
	}

	updated, err := s.progression.Transition(*current, status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &updated); err != nil {
		// Deleted since it was loaded.
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to save shipment: %w", err)
	}

	metrics.StatusUpdatesTotal.WithLabelValues(metrics.ModeSingle).Inc()
	if current.Status != updated.Status {
		metrics.ShipmentsModifiedTotal.Inc()
	}
	s.logger.Info("Shipment status updated",
		zap.String("shipment_id", updated.ID),
		zap.String("from", current.Status),
		zap.String("to", updated.Status),
	)

	return &updated, nil
}

// BulkUpdateStatus moves every shipment in ids to status.
//
// Validation happens before anything is read or written. Each selected
// shipment is then written independently; a failed write does not roll back
// the others, but no shipment is ever stored with a partial stage list.
// Shipments deleted while the update runs are reported as missing.
func (s *ShipmentServiceImpl) BulkUpdateStatus(ctx context.Context, ids []string, status string) (*domain.BulkUpdateResult, error) {
	ids = uniqueIDs(ids)
	status = strings.TrimSpace(status)

	if err := s.progression.ValidateBulk(ids, status); err != nil {
		rejected(err)
		return nil, err
	}

	shipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load shipments: %w", err)
	}

	previous := make(map[string]string, len(shipments))
	for _, sh := range shipments {
		previous[sh.ID] = sh.Status
	}

	_, updated, err := s.progression.ApplyBulkStatus(shipments, ids, status)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		gone = make(map[string]struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range updated {
		shipment := &updated[i]
		g.Go(func() error {
			err := s.repo.Save(gctx, shipment)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, domain.ErrShipmentNotFound):
				mu.Lock()
				gone[shipment.ID] = struct{}{}
				mu.Unlock()
				return nil
			default:
				return fmt.Errorf("shipment %s: %w", shipment.ID, err)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service: failed to save bulk update: %w", err)
	}

	result := &domain.BulkUpdateResult{Status: status}
	for _, sh := range updated {
		if _, ok := gone[sh.ID]; ok {
			continue
		}
		result.Matched++
		if previous[sh.ID] != status {
			result.Modified++
		}
	}
	for _, id := range ids {
		_, known := previous[id]
		_, deleted := gone[id]
		if !known || deleted {
			result.Missing = append(result.Missing, id)
		}
	}

	metrics.StatusUpdatesTotal.WithLabelValues(metrics.ModeBulk).Inc()
	metrics.ShipmentsModifiedTotal.Add(float64(result.Modified))
	s.logger.Info("Bulk status update applied",
		zap.String("status", status),
		zap.Int("selected", len(ids)),
		zap.Int("matched", result.Matched),
		zap.Int("modified", result.Modified),
	)

	return result, nil
}

// DeleteShipment removes a shipment.
func (s *ShipmentServiceImpl) DeleteShipment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return err
		}
		return fmt.Errorf("service: failed to delete shipment: %w", err)
	}

	s.logger.Info("Shipment deleted", zap.String("shipment_id", id))
	return nil
}

// uniqueIDs drops blank and repeated IDs, keeping the first occurrence order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// rejected records a validation failure in the rejected requests counter.
func rejected(err error) {
	reason := "other"
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		reason = "empty_selection"
	case errors.Is(err, domain.ErrUnknownStage):
		reason = "invalid_status"
	case errors.Is(err, domain.ErrDuplicateTrackingNumber):
		reason = "duplicate_tracking_number"
	case errors.Is(err, domain.ErrInvalidTransportMode),
		errors.Is(err, domain.ErrTrackingNumberRequired),
		errors.Is(err, domain.ErrInvalidTrackingNumber),
		errors.Is(err, domain.ErrCustomerNameRequired):
		reason = "invalid_input"
	}
	metrics.RejectedRequestsTotal.WithLabelValues(reason).Inc()
}
