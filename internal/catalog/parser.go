package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/voyagekit/packlist-backend/internal/tags"
)

// RowError records one rejected source row with the reason it was dropped.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// headerSynonyms maps the loosely-named spreadsheet columns onto canonical
// field names. Comparison is case-insensitive on the trimmed header cell.
var headerSynonyms = map[string]string{
	"label": "label", "name": "label", "title": "label", "libellé": "label", "libelle": "label",
	"asin": "asin", "id": "asin", "sku": "asin",
	"status": "status", "statut": "status", "actif": "status",
	"musthave": "mustHave", "must_have": "mustHave", "must have": "mustHave", "essentiel": "mustHave",
	"priority": "priority", "priorité": "priority", "priorite": "priority",
	"audience": "audience", "public": "audience",
	"agemin": "ageMin", "age_min": "ageMin", "age min": "ageMin",
	"agemax": "ageMax", "age_max": "ageMax", "age max": "ageMax",
	"tags": "tags", "mots-clés": "tags", "mots-cles": "tags", "keywords": "tags",
	"countries": "countryCodes", "countrycodes": "countryCodes", "pays": "countryCodes",
}

// columnIndex resolves the header row to canonical-field → column-index.
func columnIndex(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerSynonyms[key]; ok {
			if _, taken := idx[canonical]; !taken {
				idx[canonical] = i
			}
		}
	}
	return idx
}

// ParseTable converts a raw header+rows table into validated records.
// Rows that fail validation are collected as diagnostics instead of
// failing the whole load; callers log them.
func ParseTable(values [][]string) ([]ProductRecord, []RowError) {
	if len(values) == 0 {
		return nil, nil
	}
	idx := columnIndex(values[0])
	records := make([]ProductRecord, 0, len(values)-1)
	var diags []RowError
	for i, row := range values[1:] {
		rec, err := parseRow(idx, row)
		if err != nil {
			// header is row 1, so data rows start at 2
			diags = append(diags, RowError{Row: i + 2, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	return records, diags
}

func parseRow(idx map[string]int, row []string) (ProductRecord, error) {
	cell := func(field string) string {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := ProductRecord{
		Label:    cell("label"),
		ASIN:     cell("asin"),
		Status:   parseStatus(cell("status")),
		MustHave: parseBool(cell("mustHave")),
		Audience: parseAudience(cell("audience")),
		AgeMin:   parseIntDefault(cell("ageMin"), 0),
		AgeMax:   parseIntDefault(cell("ageMax"), MaxAge),
		Priority: parseIntDefault(cell("priority"), 0),
	}
	rec.Tags = parseTagList(cell("tags"))
	rec.CountryCodes = parseCountryList(cell("countryCodes"))

	if err := rec.Validate(); err != nil {
		return ProductRecord{}, err
	}
	return rec, nil
}

func parseStatus(s string) Status {
	switch strings.ToLower(s) {
	case "", "active", "actif", "1", "true":
		return StatusActive
	default:
		return StatusInactive
	}
}

func parseAudience(s string) Audience {
	switch strings.ToLower(s) {
	case "child", "enfant":
		return AudienceChild
	case "adult", "adulte":
		return AudienceAdult
	default:
		return AudienceAll
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "oui", "x":
		return true
	default:
		return false
	}
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

// parseTagList splits a free-text tag cell on commas/semicolons and keeps
// valid identifiers, deduplicated case-insensitively in first-seen order.
func parseTagList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if !tags.Valid(t) {
			continue
		}
		key := tags.Normalize(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
		if len(out) == MaxTagsPerRecord {
			break
		}
	}
	return out
}

func parseCountryList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == ' ' })
	var out []string
	for _, p := range parts {
		cc := toUpperASCII(strings.TrimSpace(p))
		if len(cc) == 2 {
			out = append(out, cc)
		}
	}
	return out
}

// Dedupe collapses records sharing an ASIN, preferring mustHave records and
// then the lowest priority. Output order is deterministic: first-seen order
// of the surviving ASINs.
func Dedupe(records []ProductRecord) []ProductRecord {
	best := map[string]ProductRecord{}
	order := map[string]int{}
	for i, rec := range records {
		cur, ok := best[rec.ASIN]
		if !ok {
			best[rec.ASIN] = rec
			order[rec.ASIN] = i
			continue
		}
		if betterDuplicate(rec, cur) {
			best[rec.ASIN] = rec
		}
	}
	out := make([]ProductRecord, 0, len(best))
	for asin := range best {
		out = append(out, best[asin])
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].ASIN] < order[out[j].ASIN] })
	return out
}

func betterDuplicate(candidate, current ProductRecord) bool {
	if candidate.MustHave != current.MustHave {
		return candidate.MustHave
	}
	return candidate.Priority < current.Priority
}
