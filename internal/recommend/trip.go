package recommend

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/voyagekit/packlist-backend/internal/tags"
)

// TripDates carries the RFC3339 trip date range.
type TripDates struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// TripRequest is the wizard state submitted to POST /recommend. It lives
// only for the duration of the request; nothing is persisted server-side.
type TripRequest struct {
	DestinationCountry string    `json:"destinationCountry" validate:"required,len=2,uppercase,alpha"`
	MarketplaceCountry string    `json:"marketplaceCountry,omitempty" validate:"omitempty,len=2,uppercase,alpha"`
	Dates              TripDates `json:"dates"`
	Travelers          int       `json:"travelers" validate:"min=1,max=20"`
	Ages               []int     `json:"ages" validate:"required,min=1,dive,min=0,max=120"`
	Tags               []string  `json:"tags,omitempty" validate:"max=400"`
}

// Marketplace resolves the marketplace country: explicit override, else
// the destination, uppercased.
func (t TripRequest) Marketplace() string {
	m := t.MarketplaceCountry
	if m == "" {
		m = t.DestinationCountry
	}
	return toUpperASCII(m)
}

// StartDate parses the trip start, falling back to now when absent or
// malformed (validation upstream rejects malformed dates on the API path).
func (t TripRequest) StartDate(now func() time.Time) time.Time {
	if t.Dates.Start == "" {
		return now()
	}
	start, err := time.Parse(time.RFC3339, t.Dates.Start)
	if err != nil {
		return now()
	}
	return start
}

// Issues collects every validation problem of the request into a
// field → message map, or an empty map when the request is well-formed.
func (t *TripRequest) Issues(validate *validator.Validate) map[string]string {
	issues := map[string]string{}

	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				issues[fe.Namespace()] = fe.Tag()
			}
		} else {
			issues["request"] = err.Error()
		}
	}

	if len(t.Ages) != t.Travelers {
		issues["ages"] = "ages must match the number of travelers"
	}
	start, errStart := time.Parse(time.RFC3339, t.Dates.Start)
	end, errEnd := time.Parse(time.RFC3339, t.Dates.End)
	switch {
	case t.Dates.Start == "" || t.Dates.End == "":
		// covered by the required tags above
	case errStart != nil || errEnd != nil:
		issues["dates"] = "dates must be RFC3339 timestamps"
	case start.After(end):
		issues["dates.end"] = "start must be before or equal to end"
	}
	for _, id := range t.Tags {
		if !tags.Valid(id) {
			issues["tags"] = "tag identifiers must be 1..64 chars of letters, digits, '-', '_'"
			break
		}
	}
	return issues
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
