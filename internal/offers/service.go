package offers

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

var ErrNotFound = errors.New("offer not found")

// Features arrive from the editor as a single comma-joined string and are
// stored as a sequence.
type UpsertRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	Price       string `json:"price"`
	Features    string `json:"features"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Offer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Offer, error) {
	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return models.Offer{}, err
		}
		order = int(count)
	}

	item := models.Offer{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Badge:       strings.TrimSpace(req.Badge),
		Price:       strings.TrimSpace(req.Price),
		Features:    ParseFeatures(req.Features),
		Order:       order,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Offer{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Offer, error) {
	set := bson.M{
		"title":       strings.TrimSpace(req.Title),
		"description": strings.TrimSpace(req.Description),
		"badge":       strings.TrimSpace(req.Badge),
		"price":       strings.TrimSpace(req.Price),
		"features":    ParseFeatures(req.Features),
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Offer{}, ErrNotFound
		}
		return models.Offer{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

// ParseFeatures splits a comma-joined editor input into the stored sequence:
// entries are trimmed and empty ones dropped.
func ParseFeatures(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinFeatures is the inverse formatting for edit-in-place forms.
func JoinFeatures(features []string) string {
	return strings.Join(features, ", ")
}
