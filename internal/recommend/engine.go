package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/voyagekit/packlist-backend/internal/catalog"
)

// Tag context sources, recorded in the ai= explain token.
const (
	TagSourceManual = "manual"
	TagSourceNone   = "none"
)

// TagContext carries the resolved tag filtering inputs for one request.
type TagContext struct {
	// Effective is the tag list to filter by, after resolving explicit
	// user tags, AI-inferred tags and fallback tags in that order.
	Effective []string
	// Exclude lists tags that disqualify a record outright.
	Exclude []string
	// Strict makes an empty Effective list yield zero results instead of
	// unfiltered output.
	Strict bool
	// Source is one of manual, openai, fallback, disabled, error, none.
	Source string
	// Reason optionally explains a degraded source.
	Reason string
}

// Item is one recommendation returned to the client.
type Item struct {
	Label       string   `json:"label"`
	ASIN        string   `json:"asin"`
	Marketplace string   `json:"marketplace"`
	Explain     []string `json:"explain"`
}

// Recommend filters and ranks the catalog for the given trip. It is pure:
// identical inputs produce identical output, and well-formed input never
// fails. The trip must be validated before entry.
func Recommend(trip TripRequest, records []catalog.ProductRecord, tagCtx TagContext) []Item {
	groupMin, groupMax := ageBounds(trip.Ages)
	hasChild, hasAdult := ageMix(trip.Ages)
	season := SeasonFor(trip.StartDate(time.Now), trip.DestinationCountry)
	marketplace := trip.Marketplace()

	var kept []catalog.ProductRecord
	for _, p := range records {
		if p.Status != catalog.StatusActive {
			continue
		}
		if season == SeasonSummer && matchesWinterKeyword(p.Label, p.Tags) {
			continue
		}
		if hasExcludedTag(p, tagCtx.Exclude) {
			continue
		}
		if !p.ShipsTo(trip.DestinationCountry) {
			continue
		}
		if groupMax < p.AgeMin || groupMin > p.AgeMax {
			continue
		}
		if !audienceMatches(p.Audience, hasChild, hasAdult) {
			continue
		}
		if !tagMatches(p, tagCtx) {
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.MustHave != b.MustHave {
			return a.MustHave
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.ASIN != b.ASIN {
			return a.ASIN < b.ASIN
		}
		return a.Label < b.Label
	})

	seen := map[string]bool{}
	items := make([]Item, 0, len(kept))
	for _, p := range kept {
		key := p.ASIN + "\x00" + p.Label
		if seen[key] {
			continue
		}
		seen[key] = true

		explain := []string{
			fmt.Sprintf("destination=%s", trip.DestinationCountry),
			fmt.Sprintf("marketplace=%s", marketplace),
			fmt.Sprintf("ageRange=%d-%d", groupMin, groupMax),
		}
		if p.MustHave {
			explain = append(explain, "mustHave=true")
		}
		explain = append(explain, fmt.Sprintf("priority=%d", p.Priority))
		if tagCtx.Source != "" {
			explain = append(explain, fmt.Sprintf("ai=%s", tagCtx.Source))
		}
		if tagCtx.Reason != "" {
			explain = append(explain, fmt.Sprintf("aiReason=%s", tagCtx.Reason))
		}

		items = append(items, Item{
			Label:       p.Label,
			ASIN:        p.ASIN,
			Marketplace: marketplace,
			Explain:     explain,
		})
	}
	return items
}

func ageBounds(ages []int) (min, max int) {
	min, max = ages[0], ages[0]
	for _, a := range ages[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return min, max
}

func ageMix(ages []int) (hasChild, hasAdult bool) {
	for _, a := range ages {
		if a < 18 {
			hasChild = true
		} else {
			hasAdult = true
		}
	}
	return hasChild, hasAdult
}

func audienceMatches(a catalog.Audience, hasChild, hasAdult bool) bool {
	switch a {
	case catalog.AudienceChild:
		return hasChild
	case catalog.AudienceAdult:
		return hasAdult
	default:
		return true
	}
}

func hasExcludedTag(p catalog.ProductRecord, exclude []string) bool {
	for _, ex := range exclude {
		if p.HasTag(ex) {
			return true
		}
	}
	return false
}

func tagMatches(p catalog.ProductRecord, tagCtx TagContext) bool {
	if len(tagCtx.Effective) == 0 {
		return !tagCtx.Strict
	}
	for _, want := range tagCtx.Effective {
		if p.HasTag(want) {
			return true
		}
	}
	return false
}
