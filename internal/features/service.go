package features

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

var ErrNotFound = errors.New("feature not found")

type UpsertRequest struct {
	Icon        string `json:"icon" validate:"required,oneof=trophy users clock star"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Feature, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Feature, error) {
	order, err := s.resolveOrder(ctx, req.Order)
	if err != nil {
		return models.Feature{}, err
	}

	item := models.Feature{
		ID:          primitive.NewObjectID().Hex(),
		Icon:        req.Icon,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Order:       order,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Feature{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Feature, error) {
	set := bson.M{
		"icon":        req.Icon,
		"title":       strings.TrimSpace(req.Title),
		"description": strings.TrimSpace(req.Description),
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Feature{}, ErrNotFound
		}
		return models.Feature{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

// New items append to the end of the list unless an explicit order is given.
// Orders are not kept contiguous across deletes.
func (s *Service) resolveOrder(ctx context.Context, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
