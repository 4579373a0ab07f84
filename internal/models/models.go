package models

import "time"

const (
	BookingStatusPending = "pending"

	UserRoleAdmin = "admin"

	HomeDocID    = "home"
	ContactDocID = "contact"
)

// HomeContent is the singleton hero block stored under siteContent/home.
type HomeContent struct {
	Title     string `bson:"title" json:"title"`
	Subtitle  string `bson:"subtitle" json:"subtitle"`
	CTAText   string `bson:"ctaText" json:"ctaText"`
	HeroImage string `bson:"heroImage,omitempty" json:"heroImage,omitempty"`
}

// ContactInfo is the singleton contact card stored under siteContent/contact.
type ContactInfo struct {
	WhatsApp string `bson:"whatsapp" json:"whatsapp"`
	Phone    string `bson:"phone" json:"phone"`
	Location string `bson:"location" json:"location"`
	MapEmbed string `bson:"mapEmbed,omitempty" json:"mapEmbed,omitempty"`
}

type Feature struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Icon        string    `bson:"icon" json:"icon"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type Court struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Available   bool      `bson:"available" json:"available"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type Offer struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Badge       string    `bson:"badge,omitempty" json:"badge,omitempty"`
	Price       string    `bson:"price,omitempty" json:"price,omitempty"`
	Features    []string  `bson:"features" json:"features"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type Booking struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Court     string    `bson:"court" json:"court"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Defaults rendered when the singleton documents are absent from the store.
func DefaultHomeContent() HomeContent {
	return HomeContent{
		Title:    "Welcome to VIP PADEL",
		Subtitle: "The ultimate premium padel experience",
		CTAText:  "Book Now",
	}
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		WhatsApp: "01557060450",
		Phone:    "01557060450",
		Location: "VIP PADEL Club",
	}
}
