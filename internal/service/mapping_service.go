package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"s2j/internal/domain"
	"s2j/internal/port"
	"s2j/internal/saberis"
)

// MappingService resolves export customer names to Jobber client ids,
// creating the client and its property on first encounter. Creation is
// serialized per name so concurrent resolutions of the same unseen name
// cannot produce two Jobber clients.
type MappingService struct {
	repo   port.ClientMappingRepository
	target port.TargetClient

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMappingService(repo port.ClientMappingRepository, target port.TargetClient) *MappingService {
	return &MappingService{
		repo:   repo,
		target: target,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *MappingService) nameLock(customerName string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[customerName]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[customerName] = lock
	}
	return lock
}

// Resolve returns the mapping for the order's customer, creating the
// Jobber client and property first if none exists. A creation failure
// leaves no partial mapping row behind.
func (s *MappingService) Resolve(ctx context.Context, order *saberis.Order) (*domain.ClientMapping, error) {
	mapping, err := s.repo.GetByName(ctx, order.CustomerName)
	if err == nil {
		return mapping, nil
	}
	if !errors.Is(err, domain.ErrMappingNotFound) {
		return nil, fmt.Errorf("mappingService.Resolve: %w", err)
	}

	lock := s.nameLock(order.CustomerName)
	lock.Lock()
	defer lock.Unlock()

	// Another resolution may have won the race while we waited.
	mapping, err = s.repo.GetByName(ctx, order.CustomerName)
	if err == nil {
		return mapping, nil
	}
	if !errors.Is(err, domain.ErrMappingNotFound) {
		return nil, fmt.Errorf("mappingService.Resolve: %w", err)
	}

	clientID, propertyID, err := s.target.CreateClientAndProperty(ctx, port.NewClientInput{
		CustomerName: order.CustomerName,
		Address: port.TargetAddress{
			Street1:    order.Shipping.Address,
			City:       order.Shipping.City,
			Province:   order.Shipping.StateOrProvince,
			PostalCode: order.Shipping.ZipOrPostal,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mappingService.Resolve: %w: %v", domain.ErrMappingCreationFailed, err)
	}
	log.Printf("mappingService: created client %s and property %s for %q", clientID, propertyID, order.CustomerName)

	mapping = &domain.ClientMapping{
		CustomerName:     order.CustomerName,
		JobberClientID:   clientID,
		JobberPropertyID: propertyID,
	}
	if err := s.repo.Create(ctx, mapping); err != nil {
		return nil, fmt.Errorf("mappingService.Resolve: record mapping: %w", err)
	}
	return mapping, nil
}
