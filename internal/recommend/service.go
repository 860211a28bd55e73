package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voyagekit/packlist-backend/internal/catalog"
	"github.com/voyagekit/packlist-backend/internal/explain"
	"github.com/voyagekit/packlist-backend/internal/tags"
)

// Service loads the catalog, resolves the effective tag context and runs
// the recommendation engine.
type Service struct {
	repo      catalog.Repository
	explainer *explain.Service
	aiEnabled bool
	maxTags   int
	log       *zap.Logger
}

func NewService(repo catalog.Repository, explainer *explain.Service, aiEnabled bool, maxTags int, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		explainer: explainer,
		aiEnabled: aiEnabled,
		maxTags:   maxTags,
		log:       log,
	}
}

// Recommend returns the ranked packing list for a validated trip request.
func (s *Service) Recommend(ctx context.Context, trip TripRequest) ([]Item, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	tagCtx := s.resolveTagContext(ctx, trip)
	return Recommend(trip, records, tagCtx), nil
}

// resolveTagContext picks explicit user tags first, AI-inferred tags next
// and otherwise leaves filtering off. Strict filtering is on whenever a
// tagging step supplied guidance.
func (s *Service) resolveTagContext(ctx context.Context, trip TripRequest) TagContext {
	if len(trip.Tags) > 0 {
		return TagContext{
			Effective: trip.Tags,
			Strict:    true,
			Source:    TagSourceManual,
		}
	}

	if s.aiEnabled && s.explainer != nil {
		resp := s.explainer.Explain(ctx, s.explainRequest(trip))
		effective := make([]string, 0, len(resp.Tags))
		for _, t := range resp.Tags {
			effective = append(effective, t.ID)
		}
		exclude := make([]string, 0, len(resp.Exclude))
		for _, e := range resp.Exclude {
			exclude = append(exclude, e.ID)
		}
		s.log.Debug("resolved tag context",
			zap.String("source", string(resp.Meta.Source)),
			zap.Int("tags", len(effective)),
			zap.Int("exclude", len(exclude)))
		return TagContext{
			Effective: effective,
			Exclude:   exclude,
			Strict:    true,
			Source:    string(resp.Meta.Source),
			Reason:    resp.Meta.Reason,
		}
	}

	return TagContext{Strict: false, Source: TagSourceNone}
}

func (s *Service) explainRequest(trip TripRequest) explain.Request {
	groupMin, groupMax := ageBounds(trip.Ages)
	req := explain.Request{
		DestinationCountry: trip.DestinationCountry,
		MarketplaceCountry: trip.MarketplaceCountry,
		GroupAge:           explain.AgeRange{Min: groupMin, Max: groupMax},
		Season:             string(SeasonFor(trip.StartDate(time.Now), trip.DestinationCountry)),
		Constraints: explain.Constraints{
			MaxTags:       s.maxTags,
			PromptVersion: tags.PromptVersion,
		},
	}
	if trip.Dates.Start != "" && trip.Dates.End != "" {
		req.Dates = &explain.DateRange{Start: trip.Dates.Start, End: trip.Dates.End}
	}
	return req
}
