package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type ClientStore interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddInteraction(ctx context.Context, interaction *model.Interaction) error
	Averages(ctx context.Context) (nps float64, retention float64, err error)
}

type ClientService struct {
	clients ClientStore
	log     zerolog.Logger
}

func NewClientService(clients ClientStore, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	client.ID = uuid.New()
	client.CreatedAt = time.Now().UTC()
	if err := s.clients.Create(ctx, &client); err != nil {
		return nil, err
	}
	s.log.Info().Str("client", client.Name).Msg("client created")
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, client model.Client) (*model.Client, error) {
	existing, err := s.Get(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(client.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	existing.Name = client.Name
	existing.History = client.History
	existing.Preferences = client.Preferences
	existing.NPS = client.NPS
	existing.RetentionRate = client.RetentionRate

	if err := s.clients.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *ClientService) RecordInteraction(ctx context.Context, clientID uuid.UUID, kind, outcome string, date time.Time) (*model.Interaction, error) {
	if strings.TrimSpace(kind) == "" {
		return nil, fmt.Errorf("%w: interaction kind is required", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	interaction := &model.Interaction{
		ID:       uuid.New(),
		ClientID: clientID,
		Date:     date,
		Kind:     kind,
		Outcome:  outcome,
	}
	if err := s.clients.AddInteraction(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

// AverageNPS and AverageRetention feed the dashboard; both are zero over an
// empty client base.
func (s *ClientService) AverageNPS(ctx context.Context) (float64, error) {
	nps, _, err := s.clients.Averages(ctx)
	return nps, err
}

func (s *ClientService) AverageRetention(ctx context.Context) (float64, error) {
	_, retention, err := s.clients.Averages(ctx)
	return retention, err
}
