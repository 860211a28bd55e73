package explain

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/voyagekit/packlist-backend/internal/cache"
	"github.com/voyagekit/packlist-backend/internal/catalog"
	"github.com/voyagekit/packlist-backend/internal/tags"
)

const (
	fallbackCoreScore  = 0.9
	fallbackOtherScore = 0.5
)

// Service resolves trip summaries to tag sets. Results are memoized per
// normalized request; on any external failure it degrades to a
// deterministic catalog-frequency fallback instead of failing the caller.
type Service struct {
	enabled bool
	client  Client
	catalog catalog.Repository
	store   *cache.TTLStore[Response]
	log     *zap.Logger
}

func NewService(enabled bool, client Client, repo catalog.Repository, store *cache.TTLStore[Response], log *zap.Logger) *Service {
	return &Service{
		enabled: enabled,
		client:  client,
		catalog: repo,
		store:   store,
		log:     log,
	}
}

// Explain returns the tag inference result for the given trip summary.
// Identical requests within the cache TTL are served without a new
// external call.
func (s *Service) Explain(ctx context.Context, req Request) Response {
	key := cacheKey(req)
	if cached, ok := s.store.Get(key); ok {
		return cached
	}

	allowlist := s.allowlist(ctx)
	resp := s.infer(ctx, req, allowlist)

	if len(resp.Tags) == 0 {
		resp = fallbackResponse(req, allowlist, resp.Meta.Reason)
	}
	resp = ensureCoreKit(req, allowlist, resp)

	s.store.Put(key, resp)
	return resp
}

func (s *Service) infer(ctx context.Context, req Request, allowlist []string) Response {
	if !s.enabled || s.client == nil {
		return Response{
			Tags: []ScoredTag{},
			Meta: Meta{
				PromptVersion: req.Constraints.PromptVersion,
				Source:        SourceDisabled,
				Reason:        "AI_DISABLED_OR_NO_KEY",
			},
		}
	}

	raw, err := s.client.ProposeTags(ctx, req, allowlist)
	if err != nil {
		reason := "OPENAI_REQUEST_FAILED"
		var callErr *CallError
		if errors.As(err, &callErr) {
			reason = callErr.Reason
		}
		s.log.Error("tag inference call failed", zap.String("reason", reason), zap.Error(err))
		return Response{
			Tags: []ScoredTag{},
			Meta: Meta{PromptVersion: req.Constraints.PromptVersion, Source: SourceError, Reason: reason},
		}
	}

	allow := allowSet(allowlist)
	rawCount := len(raw.Tags)

	// keep allowlisted tags only, deduplicated on the best score
	best := map[string]float64{}
	for _, t := range raw.Tags {
		id, ok := allow[tags.Normalize(t.ID)]
		if !ok {
			continue
		}
		if score, seen := best[id]; !seen || t.Score > score {
			best[id] = t.Score
		}
	}
	compact := make([]ScoredTag, 0, len(best))
	for id, score := range best {
		compact = append(compact, ScoredTag{ID: id, Score: score})
	}
	sort.Slice(compact, func(i, j int) bool {
		if compact[i].Score != compact[j].Score {
			return compact[i].Score > compact[j].Score
		}
		return compact[i].ID < compact[j].ID
	})
	if len(compact) > req.Constraints.MaxTags {
		compact = compact[:req.Constraints.MaxTags]
	}

	var exclude []ExcludedTag
	for _, e := range raw.Exclude {
		if id, ok := allow[tags.Normalize(e.ID)]; ok {
			exclude = append(exclude, ExcludedTag{ID: id, Score: e.Score})
			if len(exclude) == req.Constraints.MaxTags {
				break
			}
		}
	}

	reason := ""
	if rawCount == 0 {
		reason = "OPENAI_RETURNED_EMPTY"
	} else if len(compact) == 0 {
		reason = "NO_ALLOWED_TAGS_MATCH"
	}

	return Response{
		Tags:    compact,
		Exclude: exclude,
		Meta:    Meta{PromptVersion: req.Constraints.PromptVersion, Source: SourceOpenAI, Reason: reason},
	}
}

// allowlist derives the permissible tag ids from the active catalog,
// falling back to the closed vocabulary when the catalog carries none.
func (s *Service) allowlist(ctx context.Context) []string {
	if s.catalog != nil {
		records, err := s.catalog.List(ctx)
		if err != nil {
			s.log.Warn("allowlist derivation failed, using closed vocabulary", zap.Error(err))
		} else if ranked := tags.ByFrequency(catalog.ActiveTagSets(records)); len(ranked) > 0 {
			return ranked
		}
	}
	return tags.Known()
}

// fallbackResponse fills the tag list from the (frequency-ranked)
// allowlist, preferring core-kit, when inference produced nothing usable.
func fallbackResponse(req Request, allowlist []string, reason string) Response {
	chosen := make([]ScoredTag, 0, req.Constraints.MaxTags)
	hasCore := false
	for _, id := range allowlist {
		if tags.Equal(id, tags.CoreKit) {
			hasCore = true
			continue
		}
		chosen = append(chosen, ScoredTag{ID: id, Score: fallbackOtherScore})
	}
	if hasCore {
		chosen = append([]ScoredTag{{ID: tags.CoreKit, Score: fallbackCoreScore}}, chosen...)
	}
	if len(chosen) > req.Constraints.MaxTags {
		chosen = chosen[:req.Constraints.MaxTags]
	}
	return Response{
		Tags: chosen,
		Meta: Meta{PromptVersion: req.Constraints.PromptVersion, Source: SourceFallback, Reason: reason},
	}
}

// ensureCoreKit guarantees core-kit is present whenever the allowlist
// permits it.
func ensureCoreKit(req Request, allowlist []string, resp Response) Response {
	allowed := false
	for _, id := range allowlist {
		if tags.Equal(id, tags.CoreKit) {
			allowed = true
			break
		}
	}
	if !allowed {
		return resp
	}
	for _, t := range resp.Tags {
		if tags.Equal(t.ID, tags.CoreKit) {
			return resp
		}
	}
	next := append([]ScoredTag{{ID: tags.CoreKit, Score: fallbackCoreScore}}, resp.Tags...)
	if len(next) > req.Constraints.MaxTags {
		next = next[:req.Constraints.MaxTags]
	}
	resp.Tags = next
	return resp
}

func allowSet(allowlist []string) map[string]string {
	m := make(map[string]string, len(allowlist))
	for _, id := range allowlist {
		m[tags.Normalize(id)] = id
	}
	return m
}

func cacheKey(req Request) string {
	b, _ := json.Marshal(req)
	return string(b)
}
