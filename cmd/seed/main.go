package main

import (
	"context"
	"log"
	"time"

	"github.com/elrefaeey/padell/internal/auth"
	"github.com/elrefaeey/padell/internal/config"
	"github.com/elrefaeey/padell/internal/db"
	"github.com/elrefaeey/padell/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedCourt struct {
	Name        string
	Description string
	Available   bool
}

type seedFeature struct {
	Icon        string
	Title       string
	Description string
}

type seedOffer struct {
	Title       string
	Description string
	Badge       string
	Price       string
	Features    []string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := time.Now().In(cfg.Timezone)

	home := models.DefaultHomeContent()
	_, err = cols.SiteContent.UpdateOne(ctx,
		bson.M{"_id": models.HomeDocID},
		bson.M{"$setOnInsert": bson.M{
			"title":     home.Title,
			"subtitle":  home.Subtitle,
			"ctaText":   home.CTAText,
			"heroImage": home.HeroImage,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Fatalf("seed error for home content: %v", err)
	}

	contact := models.DefaultContactInfo()
	_, err = cols.SiteContent.UpdateOne(ctx,
		bson.M{"_id": models.ContactDocID},
		bson.M{"$setOnInsert": bson.M{
			"whatsapp": contact.WhatsApp,
			"phone":    contact.Phone,
			"location": contact.Location,
			"mapEmbed": contact.MapEmbed,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Fatalf("seed error for contact info: %v", err)
	}

	courts := []seedCourt{
		{Name: "Court 1", Description: "Indoor panoramic court with premium turf.", Available: true},
		{Name: "Court 2", Description: "Indoor court with full glass walls.", Available: true},
		{Name: "Court 3", Description: "Outdoor court under stadium lighting.", Available: true},
	}
	for i, c := range courts {
		_, err := cols.Courts.UpdateOne(ctx,
			bson.M{"name": c.Name},
			bson.M{"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"name":        c.Name,
				"description": c.Description,
				"image":       "",
				"available":   c.Available,
				"order":       i,
				"createdAt":   now,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("seed error for %s: %v", c.Name, err)
		}
	}

	feats := []seedFeature{
		{Icon: "trophy", Title: "Tournament Ready", Description: "Competition grade courts and equipment."},
		{Icon: "users", Title: "Coaching", Description: "Private and group sessions with certified coaches."},
		{Icon: "clock", Title: "Open Late", Description: "Courts available from 8 AM to 2 AM every day."},
		{Icon: "star", Title: "Premium Lounge", Description: "Relax between matches in the club lounge."},
	}
	for i, f := range feats {
		_, err := cols.Features.UpdateOne(ctx,
			bson.M{"title": f.Title},
			bson.M{"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"icon":        f.Icon,
				"title":       f.Title,
				"description": f.Description,
				"order":       i,
				"createdAt":   now,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("seed error for %s: %v", f.Title, err)
		}
	}

	offerItems := []seedOffer{
		{Title: "Morning Pass", Description: "Discounted slots before noon.", Badge: "Popular", Price: "250 EGP", Features: []string{"Any court", "Free rackets", "Locker access"}},
		{Title: "Monthly Membership", Description: "Unlimited play all month.", Badge: "Best Value", Price: "3000 EGP", Features: []string{"Priority booking", "Guest passes", "Lounge access"}},
	}
	for i, o := range offerItems {
		_, err := cols.Offers.UpdateOne(ctx,
			bson.M{"title": o.Title},
			bson.M{"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"title":       o.Title,
				"description": o.Description,
				"badge":       o.Badge,
				"price":       o.Price,
				"features":    o.Features,
				"order":       i,
				"createdAt":   now,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("seed error for %s: %v", o.Title, err)
		}
	}

	if cfg.AdminPassword == "" {
		log.Println("seed admin: ADMIN_PASSWORD missing, skipping admin user")
	} else {
		if err := seedAdminUser(ctx, cols, cfg.AdminEmail, cfg.AdminPassword, now); err != nil {
			log.Fatalf("seed admin error for %s: %v", cfg.AdminEmail, err)
		}
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, email, password string, now time.Time) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = cols.Users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID().Hex(),
				"email":     email,
				"role":      models.UserRoleAdmin,
				"createdAt": now,
			},
			"$set": bson.M{
				"passwordHash": hash,
				"updatedAt":    now,
			},
		},
		options.Update().SetUpsert(true))
	return err
}
