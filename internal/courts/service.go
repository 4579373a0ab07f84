package courts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elrefaeey/padell/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("court not found")

type UpsertRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,url|uri"`
	Available   *bool  `json:"available"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Court, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (models.Court, error) {
	item, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Court{}, ErrNotFound
		}
		return models.Court{}, err
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Court, error) {
	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return models.Court{}, err
		}
		order = int(count)
	}

	// New courts are bookable unless the form says otherwise.
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.Court{
		ID:          primitive.NewObjectID().Hex(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Available:   available,
		Order:       order,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Court{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Court, error) {
	set := bson.M{
		"name":        strings.TrimSpace(req.Name),
		"description": strings.TrimSpace(req.Description),
		"image":       strings.TrimSpace(req.Image),
	}
	if req.Available != nil {
		set["available"] = *req.Available
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Court{}, ErrNotFound
		}
		return models.Court{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
