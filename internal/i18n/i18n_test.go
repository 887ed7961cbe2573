package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTLocaleAndKeyFallback(t *testing.T) {
	if got := T("ar", "error.cart_empty"); got != "السلة فارغة" {
		t.Fatalf("unexpected ar message %q", got)
	}
	if got := T("fr", "error.cart_empty"); got != "cart is empty" {
		t.Fatalf("unknown locale should fall back to en, got %q", got)
	}
	if got := T("en", "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("missing key should echo the key, got %q", got)
	}
	if got := T("AR", "error.cart_empty"); got != "السلة فارغة" {
		t.Fatalf("locale should be case insensitive, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"ar", "ar"},
		{"ar-SA,ar;q=0.9,en;q=0.8", "ar"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR", "en"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Errorf("header %q: got %q, want %q", tc.header, got, tc.want)
		}
	}
	if got := ResolveLocale(nil); got != "en" {
		t.Errorf("nil context: got %q, want en", got)
	}
}
