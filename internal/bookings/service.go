package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elrefaeey/padell/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrCourtNotFound = errors.New("court not found")

// All four visitor fields are required by presence only; no format checks
// beyond that, and nothing prevents two bookings for the same slot.
type CreateRequest struct {
	CourtID string `json:"courtId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
}

type Service struct {
	repo   Repository
	courts CourtGetter
}

func NewService(repo Repository, courts CourtGetter) *Service {
	return &Service{repo: repo, courts: courts}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Booking, error) {
	court, err := s.courts.Get(ctx, strings.TrimSpace(req.CourtID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, ErrCourtNotFound
		}
		return models.Booking{}, err
	}

	item := models.Booking{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Date:      strings.TrimSpace(req.Date),
		Time:      strings.TrimSpace(req.Time),
		Court:     court.Name,
		Status:    models.BookingStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Booking{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, limit, offset int64) ([]models.Booking, int64, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
