package notifications

import (
	"strings"
	"testing"

	"github.com/elrefaeey/padell/internal/models"
)

func TestBookingLink(t *testing.T) {
	wa := NewWhatsApp("201557060450")
	link := wa.BookingLink(models.Booking{
		Court: "Court 1",
		Name:  "Omar",
		Phone: "01001234567",
		Date:  "2026-09-05",
		Time:  "19:00",
	})

	if !strings.HasPrefix(link, "https://wa.me/201557060450?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	for _, want := range []string{
		"New+VIP+PADEL+Booking%3A",
		"Court%3A+Court+1",
		"Name%3A+Omar",
		"Phone%3A+01001234567",
		"Date%3A+2026-09-05",
		"Time%3A+19%3A00",
	} {
		if !strings.Contains(link, want) {
			t.Fatalf("link missing %q: %q", want, link)
		}
	}
}

func TestNewWhatsAppStripsFormatting(t *testing.T) {
	wa := NewWhatsApp("+20 155 706 0450")
	link := wa.BookingLink(models.Booking{})
	if !strings.HasPrefix(link, "https://wa.me/201557060450?") {
		t.Fatalf("operator not normalized: %q", link)
	}
}

func TestDialNumber(t *testing.T) {
	if got := DialNumber("01557060450"); got != "201557060450" {
		t.Fatalf("DialNumber local = %q", got)
	}
	if got := DialNumber("+201557060450"); got != "201557060450" {
		t.Fatalf("DialNumber international = %q", got)
	}
}

func TestChatLink(t *testing.T) {
	if got := ChatLink("01557060450"); got != "https://wa.me/201557060450" {
		t.Fatalf("ChatLink = %q", got)
	}
}
