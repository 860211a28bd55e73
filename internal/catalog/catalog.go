package catalog

import (
	"fmt"

	"github.com/voyagekit/packlist-backend/internal/tags"
)

// Status marks whether a record may ever be recommended.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Audience restricts a record to child or adult travelers.
type Audience string

const (
	AudienceChild Audience = "child"
	AudienceAdult Audience = "adult"
	AudienceAll   Audience = "all"
)

const (
	// MaxTagsPerRecord bounds the tag set carried by one record.
	MaxTagsPerRecord = 50
	// MaxAge is the inclusive upper bound for age fields.
	MaxAge = 120
)

// ProductRecord is one validated catalog entry. Records are immutable once
// constructed; the loader rebuilds the whole slice on cache expiry.
type ProductRecord struct {
	Label        string   `json:"label"`
	ASIN         string   `json:"asin"`
	Status       Status   `json:"status"`
	MustHave     bool     `json:"mustHave"`
	Priority     int      `json:"priority"`
	Audience     Audience `json:"audience"`
	AgeMin       int      `json:"ageMin"`
	AgeMax       int      `json:"ageMax"`
	Tags         []string `json:"tags,omitempty"`
	CountryCodes []string `json:"countryCodes,omitempty"`
}

// Validate checks the record against the canonical schema.
func (p ProductRecord) Validate() error {
	if p.Label == "" {
		return fmt.Errorf("label is required")
	}
	if p.ASIN == "" {
		return fmt.Errorf("asin is required")
	}
	switch p.Status {
	case StatusActive, StatusInactive:
	default:
		return fmt.Errorf("invalid status %q", p.Status)
	}
	switch p.Audience {
	case AudienceChild, AudienceAdult, AudienceAll:
	default:
		return fmt.Errorf("invalid audience %q", p.Audience)
	}
	if p.Priority < 0 {
		return fmt.Errorf("priority must be >= 0")
	}
	if p.AgeMin < 0 || p.AgeMin > MaxAge || p.AgeMax < 0 || p.AgeMax > MaxAge {
		return fmt.Errorf("age bounds must be within 0..%d", MaxAge)
	}
	if p.AgeMin > p.AgeMax {
		return fmt.Errorf("ageMin must be <= ageMax")
	}
	if len(p.Tags) > MaxTagsPerRecord {
		return fmt.Errorf("at most %d tags per record", MaxTagsPerRecord)
	}
	for _, t := range p.Tags {
		if !tags.Valid(t) {
			return fmt.Errorf("invalid tag %q", t)
		}
	}
	for _, cc := range p.CountryCodes {
		if len(cc) != 2 || cc != toUpperASCII(cc) {
			return fmt.Errorf("invalid country code %q", cc)
		}
	}
	return nil
}

// HasTag reports whether the record carries the given tag (case-insensitive).
func (p ProductRecord) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if tags.Equal(t, tag) {
			return true
		}
	}
	return false
}

// ShipsTo reports whether the record may be recommended for the given
// destination. An empty CountryCodes set means no geographic restriction.
func (p ProductRecord) ShipsTo(country string) bool {
	if len(p.CountryCodes) == 0 {
		return true
	}
	up := toUpperASCII(country)
	for _, cc := range p.CountryCodes {
		if cc == up {
			return true
		}
	}
	return false
}

// TagSets extracts the tag set of every record, preserving order. Used to
// derive allowlists and frequency rankings.
func TagSets(records []ProductRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, p := range records {
		out = append(out, p.Tags)
	}
	return out
}

// ActiveTagSets is TagSets restricted to active records.
func ActiveTagSets(records []ProductRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, p := range records {
		if p.Status == StatusActive {
			out = append(out, p.Tags)
		}
	}
	return out
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
