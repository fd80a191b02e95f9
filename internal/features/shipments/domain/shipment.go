package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// TransportMode is the way a shipment travels.
type TransportMode string

const (
	// TransportModeAir ships by air freight.
	TransportModeAir TransportMode = "Air"
	// TransportModeSea ships by sea freight.
	TransportModeSea TransportMode = "Sea"
)

var (
	// ErrInvalidTransportMode is returned for a transport mode other than Air or Sea.
	ErrInvalidTransportMode = errors.New("invalid transport mode")
	// ErrTrackingNumberRequired is returned when a shipment has no tracking number.
	ErrTrackingNumberRequired = errors.New("tracking number is required")
	// ErrInvalidTrackingNumber is returned for a tracking number that cannot be used as a URL path segment.
	ErrInvalidTrackingNumber = errors.New("tracking number must not contain '/' or control characters")
	// ErrCustomerNameRequired is returned when a shipment has no customer name.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// ErrShipmentNotFound is returned when no shipment matches the lookup.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrDuplicateTrackingNumber is returned when the tracking number is already in use.
	ErrDuplicateTrackingNumber = errors.New("tracking number already exists")
)

// ParseTransportMode converts user input into a TransportMode. Empty input defaults to Air.
func ParseTransportMode(raw string) (TransportMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "air":
		return TransportModeAir, nil
	case "sea":
		return TransportModeSea, nil
	default:
		return "", ErrInvalidTransportMode
	}
}

// Shipment is a parcel moving through the stages of a template.
type Shipment struct {
	// ID is the storage identifier, used for operator updates.
	ID string `json:"id"`
	// TrackingNumber is the customer-facing identifier. It never changes after creation.
	TrackingNumber string `json:"tracking_number"`
	// CustomerName is the name of the recipient.
	CustomerName string `json:"customer_name"`
	// TransportMode is either Air or Sea.
	TransportMode TransportMode `json:"transport_mode"`
	// Status is the name of the current stage.
	Status string `json:"status"`
	// Stages is the ordered stage list, one entry per template stage.
	Stages []Stage `json:"stages"`
	// LastUpdated is when the status last changed.
	LastUpdated time.Time `json:"last_updated"`
}

// NewShipmentParams carries the operator input for a new shipment.
type NewShipmentParams struct {
	TrackingNumber string
	CustomerName   string
	TransportMode  string
	// Status is the initial stage. Empty selects the first stage of the template.
	Status string
}

// NewShipment validates params and builds a shipment whose stages are
// initialised from the progression's template.
func NewShipment(p *Progression, params NewShipmentParams) (*Shipment, error) {
	trackingNumber := strings.TrimSpace(params.TrackingNumber)
	if trackingNumber == "" {
		return nil, ErrTrackingNumberRequired
	}
	if strings.ContainsFunc(trackingNumber, invalidTrackingRune) {
		return nil, ErrInvalidTrackingNumber
	}

	customerName := strings.TrimSpace(params.CustomerName)
	if customerName == "" {
		return nil, ErrCustomerNameRequired
	}

	mode, err := ParseTransportMode(params.TransportMode)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(params.Status)
	if status == "" {
		status = p.Template().Names()[0]
	}

	stages, err := p.ApplyStatus(status)
	if err != nil {
		return nil, err
	}

	return &Shipment{
		ID:             uuid.NewString(),
		TrackingNumber: trackingNumber,
		CustomerName:   customerName,
		TransportMode:  mode,
		Status:         status,
		Stages:         stages,
		LastUpdated:    p.Now(),
	}, nil
}

// invalidTrackingRune reports runes that would break the /api/tracking/:number lookup.
func invalidTrackingRune(r rune) bool {
	return r == '/' || unicode.IsControl(r)
}

// CurrentStageIndex returns the index of the last completed stage, or -1.
func (s *Shipment) CurrentStageIndex() int {
	return DeriveCurrentIndex(s.Stages)
}

// CurrentStage returns the last completed stage and true, or false when the
// shipment has not started.
func (s *Shipment) CurrentStage() (Stage, bool) {
	i := s.CurrentStageIndex()
	if i < 0 {
		return Stage{}, false
	}
	return s.Stages[i], true
}

// Validate checks the stage list invariants of the shipment.
func (s *Shipment) Validate() error {
	if s.TrackingNumber == "" {
		return ErrTrackingNumberRequired
	}
	return CheckStages(s.Stages, s.Status)
}

// BulkUpdateResult summarises a bulk status update.
type BulkUpdateResult struct {
	// Status is the status every matched shipment was moved to.
	Status string `json:"status"`
	// Matched is the number of selected shipments that exist.
	Matched int `json:"matched"`
	// Modified is the number of matched shipments whose status changed.
	Modified int `json:"modified"`
	// Missing lists selected IDs that matched no shipment.
	Missing []string `json:"missing,omitempty"`
}
