package service

import (
	"context"
	"errors"
	"strings"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientAccessDenied = errors.New("client does not belong to this trainer")
	ErrInvalidClientInput = errors.New("client first and last name are required")
)

// ClientService manages a trainer's client roster. Every read and write is
// scoped to the owning trainer; cross-trainer access reads as not-found or
// denied, never leaks rows.
type ClientService interface {
	Create(ctx context.Context, trainerID int64, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, trainerID, clientID int64) (*domain.Client, error)
	List(ctx context.Context, trainerID int64) ([]domain.Client, error)
	Count(ctx context.Context, trainerID int64) (int, error)
	Update(ctx context.Context, trainerID int64, client *domain.Client) error
	Delete(ctx context.Context, trainerID, clientID int64) error
	// Authorize verifies ownership and returns the client; shared by every
	// client-scoped flow (plans, progress, intake).
	Authorize(ctx context.Context, trainerID, clientID int64) (*domain.Client, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new instance of clientService.
func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, trainerID int64, client *domain.Client) (*domain.Client, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(client.FirstName) == "" || strings.TrimSpace(client.LastName) == "" {
		return nil, ErrInvalidClientInput
	}

	client.TrainerID = trainerID
	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, trainerID, clientID int64) (*domain.Client, error) {
	return s.Authorize(ctx, trainerID, clientID)
}

func (s *clientService) List(ctx context.Context, trainerID int64) ([]domain.Client, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}
	return s.clientRepo.GetByTrainerID(ctx, trainerID)
}

func (s *clientService) Count(ctx context.Context, trainerID int64) (int, error) {
	if trainerID <= 0 {
		return 0, ErrUnauthorized
	}
	return s.clientRepo.CountByTrainerID(ctx, trainerID)
}

func (s *clientService) Update(ctx context.Context, trainerID int64, client *domain.Client) error {
	if _, err := s.Authorize(ctx, trainerID, client.ID); err != nil {
		return err
	}
	client.TrainerID = trainerID

	err := s.clientRepo.Update(ctx, client)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

func (s *clientService) Delete(ctx context.Context, trainerID, clientID int64) error {
	err := s.clientRepo.Delete(ctx, clientID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

func (s *clientService) Authorize(ctx context.Context, trainerID, clientID int64) (*domain.Client, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, ErrClientAccessDenied
	}
	return client, nil
}
