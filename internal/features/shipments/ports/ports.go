package ports

import (
	"context"

	"cargo-tracker/internal/features/shipments/domain"
)

// ShipmentService defines the primary port for shipment operations.
type ShipmentService interface {
	// Stages returns the ordered stage catalog shipments are built from.
	Stages() []domain.StageDefinition
	// CreateShipment validates params and stores a new shipment.
	CreateShipment(ctx context.Context, params domain.NewShipmentParams) (*domain.Shipment, error)
	// ListShipments returns every stored shipment.
	ListShipments(ctx context.Context) ([]domain.Shipment, error)
	// TrackShipment looks up a shipment by its customer-facing tracking number.
	TrackShipment(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// UpdateStatus moves a single shipment to status.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Shipment, error)
	// BulkUpdateStatus moves every selected shipment to status.
	BulkUpdateStatus(ctx context.Context, ids []string, status string) (*domain.BulkUpdateResult, error)
	// DeleteShipment removes a shipment.
	DeleteShipment(ctx context.Context, id string) error
}

// ShipmentRepository defines the secondary port for shipment storage.
// Implementations must reject stage lists that break the done-prefix invariant.
type ShipmentRepository interface {
	// Create stores a new shipment. It fails with domain.ErrDuplicateTrackingNumber
	// when the tracking number is taken.
	Create(ctx context.Context, shipment *domain.Shipment) error
	// Save overwrites an existing shipment as a whole.
	Save(ctx context.Context, shipment *domain.Shipment) error
	// Get returns the shipment with the given ID or domain.ErrShipmentNotFound.
	Get(ctx context.Context, id string) (*domain.Shipment, error)
	// GetByTrackingNumber returns the shipment with the given tracking number or domain.ErrShipmentNotFound.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// List returns every stored shipment.
	List(ctx context.Context) ([]domain.Shipment, error)
	// Delete removes the shipment with the given ID or returns domain.ErrShipmentNotFound.
	Delete(ctx context.Context, id string) error
}
