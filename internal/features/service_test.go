package features

import (
	"context"
	"errors"
	"testing"

	"github.com/elrefaeey/padell/internal/models"
	"github.com/elrefaeey/padell/internal/validation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items   []models.Feature
	created []models.Feature
	updated map[string]bson.M
}

func (f *fakeRepo) List(ctx context.Context) ([]models.Feature, error) {
	return f.items, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeRepo) Create(ctx context.Context, item models.Feature) error {
	f.created = append(f.created, item)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (models.Feature, error) {
	for _, item := range f.items {
		if item.ID == id {
			if f.updated == nil {
				f.updated = make(map[string]bson.M)
			}
			f.updated[id] = set
			return item, nil
		}
	}
	return models.Feature{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestUpsertRequestIconWhitelist(t *testing.T) {
	v := validation.New()
	for _, icon := range []string{"trophy", "users", "clock", "star"} {
		if err := v.Struct(UpsertRequest{Icon: icon, Title: "Coaching"}); err != nil {
			t.Fatalf("icon %q rejected: %v", icon, err)
		}
	}
	for _, icon := range []string{"racket", "Trophy", "TROPHY", "", "trophy "} {
		if err := v.Struct(UpsertRequest{Icon: icon, Title: "Coaching"}); err == nil {
			t.Fatalf("icon %q accepted", icon)
		}
	}
}

func TestCreateAppendsOrder(t *testing.T) {
	repo := &fakeRepo{items: []models.Feature{{ID: "f1"}, {ID: "f2"}, {ID: "f3"}}}
	svc := NewService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{Icon: "star", Title: "Premium Lounge"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Order != 3 {
		t.Fatalf("expected order 3, got %d", item.Order)
	}
}

func TestCreateHonorsExplicitOrder(t *testing.T) {
	repo := &fakeRepo{items: []models.Feature{{ID: "f1"}}}
	svc := NewService(repo)

	order := 0
	item, err := svc.Create(context.Background(), UpsertRequest{Icon: "clock", Title: "Open Late", Order: &order})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Order != 0 {
		t.Fatalf("expected order 0, got %d", item.Order)
	}
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Update(context.Background(), "missing", UpsertRequest{Icon: "star", Title: "Premium Lounge"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
