package affiliate

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// Handler rewrites a product identifier into a marketplace purchase URL
// carrying the affiliate tracking tag.
type Handler struct {
	affiliateTag string
}

func NewHandler(affiliateTag string) *Handler {
	return &Handler{affiliateTag: affiliateTag}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/affiliate/:asin", h.redirect)
}

func (h *Handler) redirect(c *fiber.Ctx) error {
	asin := c.Params("asin")
	marketplace := c.Query("marketplace", "FR")
	subtag := c.Query("sub")

	target := url.URL{
		Scheme: "https",
		Host:   "www.amazon." + TLDFor(marketplace),
		Path:   "/dp/" + asin,
	}
	q := url.Values{}
	q.Set("tag", h.affiliateTag)
	if subtag != "" {
		q.Set("ascsubtag", subtag)
	}
	target.RawQuery = q.Encode()

	return c.Redirect(target.String(), fiber.StatusFound)
}
