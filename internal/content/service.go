package content

import (
	"context"
	"errors"
	"strings"

	"github.com/elrefaeey/padell/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Home returns the stored hero block, or the hard-coded defaults when the
// document is absent.
func (s *Service) Home(ctx context.Context) (models.HomeContent, error) {
	doc, err := s.repo.GetHome(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.DefaultHomeContent(), nil
		}
		return models.HomeContent{}, err
	}
	return applyHomeDefaults(doc), nil
}

func (s *Service) Contact(ctx context.Context) (models.ContactInfo, error) {
	doc, err := s.repo.GetContact(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.DefaultContactInfo(), nil
		}
		return models.ContactInfo{}, err
	}
	return applyContactDefaults(doc), nil
}

func (s *Service) SaveHome(ctx context.Context, req HomeSaveRequest) (models.HomeContent, error) {
	set := bson.M{}
	setString(set, "title", req.Title)
	setString(set, "subtitle", req.Subtitle)
	setString(set, "ctaText", req.CTAText)
	setString(set, "heroImage", req.HeroImage)

	if err := s.repo.Save(ctx, models.HomeDocID, set); err != nil {
		return models.HomeContent{}, err
	}
	return s.Home(ctx)
}

func (s *Service) SaveContact(ctx context.Context, req ContactSaveRequest) (models.ContactInfo, error) {
	set := bson.M{}
	setString(set, "whatsapp", req.WhatsApp)
	setString(set, "phone", req.Phone)
	setString(set, "location", req.Location)
	setString(set, "mapEmbed", req.MapEmbed)

	if err := s.repo.Save(ctx, models.ContactDocID, set); err != nil {
		return models.ContactInfo{}, err
	}
	return s.Contact(ctx)
}

func setString(set bson.M, key string, val *string) {
	if val != nil {
		set[key] = strings.TrimSpace(*val)
	}
}

// A stored document may carry empty strings; fallbacks fill field by field
// so a partially edited singleton still renders.
func applyHomeDefaults(doc models.HomeContent) models.HomeContent {
	def := models.DefaultHomeContent()
	if doc.Title == "" {
		doc.Title = def.Title
	}
	if doc.Subtitle == "" {
		doc.Subtitle = def.Subtitle
	}
	if doc.CTAText == "" {
		doc.CTAText = def.CTAText
	}
	return doc
}

func applyContactDefaults(doc models.ContactInfo) models.ContactInfo {
	def := models.DefaultContactInfo()
	if doc.WhatsApp == "" {
		doc.WhatsApp = def.WhatsApp
	}
	if doc.Phone == "" {
		doc.Phone = def.Phone
	}
	if doc.Location == "" {
		doc.Location = def.Location
	}
	return doc
}
