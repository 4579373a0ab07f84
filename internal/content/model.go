package content

// Singleton save requests. Nil fields are left untouched in the stored
// document (merge-on-conflict), so a partial form never erases content.

type HomeSaveRequest struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	CTAText   *string `json:"ctaText"`
	HeroImage *string `json:"heroImage"`
}

type ContactSaveRequest struct {
	WhatsApp *string `json:"whatsapp" validate:"omitempty,phone"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Location *string `json:"location"`
	MapEmbed *string `json:"mapEmbed" validate:"omitempty,url"`
}
