package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cargo-tracker/internal/core/cache"
	"cargo-tracker/internal/features/shipments/domain"
)

const (
	shipmentKeyPrefix       = "shipments:"
	trackingNumberKeyPrefix = "tracking_numbers:"
)

func shipmentKey(id string) string {
	return shipmentKeyPrefix + id
}

func trackingNumberKey(trackingNumber string) string {
	return trackingNumberKeyPrefix + trackingNumber
}

// RedisShipmentRepository implements ports.ShipmentRepository on top of the cache port.
// Each shipment is one JSON document, so a write replaces the whole stage list at once.
// A secondary key maps tracking numbers to shipment IDs.
type RedisShipmentRepository struct {
	cache cache.Cache
}

// NewRedisShipmentRepository creates a new RedisShipmentRepository.
func NewRedisShipmentRepository(c cache.Cache) *RedisShipmentRepository {
	return &RedisShipmentRepository{
		cache: c,
	}
}

// Create stores a new shipment and claims its tracking number.
func (r *RedisShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	data, err := encode(shipment)
	if err != nil {
		return err
	}

	claimed, err := r.cache.SetNX(ctx, trackingNumberKey(shipment.TrackingNumber), []byte(shipment.ID), 0)
	if err != nil {
		return fmt.Errorf("failed to claim tracking number: %w", err)
	}
	if !claimed {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTrackingNumber, shipment.TrackingNumber)
	}

	if err := r.cache.Set(ctx, shipmentKey(shipment.ID), data, 0); err != nil {
		// Release the claim so the tracking number can be reused.
		_ = r.cache.Delete(ctx, trackingNumberKey(shipment.TrackingNumber))
		return fmt.Errorf("failed to save shipment: %w", err)
	}

	return nil
}

// Save overwrites an existing shipment. A shipment deleted since it was
// loaded is not recreated; Save reports ErrShipmentNotFound instead.
func (r *RedisShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	data, err := encode(shipment)
	if err != nil {
		return err
	}

	stored, err := r.cache.SetXX(ctx, shipmentKey(shipment.ID), data, 0)
	if err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}
	if !stored {
		return fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, shipment.ID)
	}
	return nil
}

// Get retrieves a shipment by ID.
func (r *RedisShipmentRepository) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	data, err := r.cache.Get(ctx, shipmentKey(id))
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return decode(data)
}

// GetByTrackingNumber retrieves a shipment through the tracking number index.
func (r *RedisShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	id, err := r.cache.Get(ctx, trackingNumberKey(trackingNumber))
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to resolve tracking number: %w", err)
	}

	return r.Get(ctx, string(id))
}

// List returns every shipment ordered by tracking number.
func (r *RedisShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	keys, err := r.cache.Scan(ctx, shipmentKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]domain.Shipment, 0, len(keys))
	for _, key := range keys {
		data, err := r.cache.Get(ctx, key)
		if err != nil {
			// Deleted between SCAN and GET.
			if errors.Is(err, cache.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get shipment: %w", err)
		}

		s, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("shipment %s: %w", strings.TrimPrefix(key, shipmentKeyPrefix), err)
		}
		shipments = append(shipments, *s)
	}

	sort.Slice(shipments, func(i, j int) bool {
		return shipments[i].TrackingNumber < shipments[j].TrackingNumber
	})

	return shipments, nil
}

// Delete removes a shipment and its tracking number index entry.
func (r *RedisShipmentRepository) Delete(ctx context.Context, id string) error {
	shipment, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, shipmentKey(id), trackingNumberKey(shipment.TrackingNumber)); err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}
	return nil
}

// encode validates the stage list before it crosses the storage boundary.
func encode(shipment *domain.Shipment) ([]byte, error) {
	if err := shipment.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store inconsistent shipment %s: %w", shipment.ID, err)
	}

	data, err := json.Marshal(shipment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
	}
	return &shipment, nil
}
