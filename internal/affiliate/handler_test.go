package affiliate

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	NewHandler("travelkit-21").RegisterPublicRoutes(app)
	return app
}

func redirectLocation(t *testing.T, path string) string {
	t.Helper()
	app := newApp()
	res, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 302 {
		t.Fatalf("expected 302, got %d", res.StatusCode)
	}
	return res.Header.Get("Location")
}

func TestRedirect_MarketplaceAndTag(t *testing.T) {
	loc := redirectLocation(t, "/affiliate/B000ADPT01?marketplace=DE")
	if loc != "https://www.amazon.de/dp/B000ADPT01?tag=travelkit-21" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRedirect_DefaultsToFrenchStorefront(t *testing.T) {
	loc := redirectLocation(t, "/affiliate/B000ADPT01")
	if loc != "https://www.amazon.fr/dp/B000ADPT01?tag=travelkit-21" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRedirect_UnknownMarketplaceFallsBack(t *testing.T) {
	loc := redirectLocation(t, "/affiliate/B000ADPT01?marketplace=JP")
	if loc != "https://www.amazon.fr/dp/B000ADPT01?tag=travelkit-21" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRedirect_SubTagAndUKDomain(t *testing.T) {
	loc := redirectLocation(t, "/affiliate/B000ADPT01?marketplace=gb&sub=wizard")
	if loc != "https://www.amazon.co.uk/dp/B000ADPT01?ascsubtag=wizard&tag=travelkit-21" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestTLDFor(t *testing.T) {
	cases := map[string]string{
		"FR": "fr", "de": "de", "ES": "es", "IT": "it",
		"GB": "co.uk", "US": "com", "XX": "fr", "": "fr",
	}
	for in, want := range cases {
		if got := TLDFor(in); got != want {
			t.Fatalf("TLDFor(%q) = %q, want %q", in, got, want)
		}
	}
}
