package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/addressbook/internal/domain"
	pkgkafka "github.com/utafrali/addressbook/pkg/kafka"
)

// Kafka topic constants for address domain events.
const (
	TopicAddressCreated = "ecommerce.address.created"
	TopicAddressUpdated = "ecommerce.address.updated"
	TopicAddressDeleted = "ecommerce.address.deleted"
)

// Aggregate type constant.
const AggregateTypeAddress = "address"

// Source identifier for events originating from the address service.
const SourceAddressService = "address-service"

// AddressData is the payload for address.created and address.updated events.
type AddressData struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	UserID      string `json:"user_id"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// AddressDeletedData is the payload for an address.deleted event.
type AddressDeletedData struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
}

// Producer publishes address domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the address service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishAddressCreated publishes an address.created event.
func (p *Producer) PublishAddressCreated(ctx context.Context, a *domain.Address) error {
	event, err := pkgkafka.NewEvent(TopicAddressCreated, a.ID, AggregateTypeAddress, SourceAddressService, addressData(a))
	if err != nil {
		return fmt.Errorf("create address.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAddressCreated, event); err != nil {
		return fmt.Errorf("publish address.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published address.created event",
		slog.String("address_id", a.ID),
		slog.String("user_id", a.UserID),
	)

	return nil
}

// PublishAddressUpdated publishes an address.updated event.
func (p *Producer) PublishAddressUpdated(ctx context.Context, a *domain.Address) error {
	event, err := pkgkafka.NewEvent(TopicAddressUpdated, a.ID, AggregateTypeAddress, SourceAddressService, addressData(a))
	if err != nil {
		return fmt.Errorf("create address.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAddressUpdated, event); err != nil {
		return fmt.Errorf("publish address.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published address.updated event",
		slog.String("address_id", a.ID),
		slog.String("user_id", a.UserID),
	)

	return nil
}

// PublishAddressDeleted publishes an address.deleted event.
func (p *Producer) PublishAddressDeleted(ctx context.Context, a *domain.Address) error {
	data := AddressDeletedData{
		ID:       a.ID,
		TenantID: a.TenantID,
		UserID:   a.UserID,
	}

	event, err := pkgkafka.NewEvent(TopicAddressDeleted, a.ID, AggregateTypeAddress, SourceAddressService, data)
	if err != nil {
		return fmt.Errorf("create address.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAddressDeleted, event); err != nil {
		return fmt.Errorf("publish address.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published address.deleted event",
		slog.String("address_id", a.ID),
		slog.String("user_id", a.UserID),
	)

	return nil
}

func addressData(a *domain.Address) AddressData {
	return AddressData{
		ID:          a.ID,
		TenantID:    a.TenantID,
		UserID:      a.UserID,
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
	}
}
