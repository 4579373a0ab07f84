package notifications

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/elrefaeey/padell/internal/models"
)

// WhatsApp builds wa.me deep links addressed to the club operator. Opening
// the link is the client's job; nothing is sent from here and no response is
// awaited.
type WhatsApp struct {
	operator string
}

func NewWhatsApp(operator string) *WhatsApp {
	return &WhatsApp{operator: digitsOnly(operator)}
}

// BookingLink is the pre-filled operator chat for a submitted booking. The
// message embeds the court name and all four form fields.
func (w *WhatsApp) BookingLink(b models.Booking) string {
	msg := fmt.Sprintf(
		"New VIP PADEL Booking:\nCourt: %s\nName: %s\nPhone: %s\nDate: %s\nTime: %s",
		b.Court, b.Name, b.Phone, b.Date, b.Time,
	)
	return "https://wa.me/" + w.operator + "?text=" + url.QueryEscape(msg)
}

// ChatLink is the bare chat link for a displayed contact number.
func ChatLink(number string) string {
	return "https://wa.me/" + DialNumber(number)
}

// DialNumber converts a locally formatted Egyptian number (01x...) to the
// international digits wa.me expects (201x...).
func DialNumber(number string) string {
	n := digitsOnly(number)
	if strings.HasPrefix(n, "0") {
		return "2" + n
	}
	return n
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
