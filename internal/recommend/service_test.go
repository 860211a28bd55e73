package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyagekit/packlist-backend/internal/cache"
	"github.com/voyagekit/packlist-backend/internal/catalog"
	"github.com/voyagekit/packlist-backend/internal/explain"
)

func seedCatalog() *catalog.InMemoryRepository {
	return catalog.NewInMemoryRepository([]catalog.ProductRecord{
		{
			Label: "Trousse de voyage", ASIN: "B000CORE01", Status: catalog.StatusActive,
			MustHave: true, Priority: 0, Audience: catalog.AudienceAll, AgeMin: 0, AgeMax: 120,
			Tags: []string{"core-kit"},
		},
		{
			Label: "Poncho de pluie", ASIN: "B000RAIN01", Status: catalog.StatusActive,
			Priority: 2, Audience: catalog.AudienceAll, AgeMin: 0, AgeMax: 120,
			Tags: []string{"rain"},
		},
		{
			Label: "Objet sans tags", ASIN: "B000NONE01", Status: catalog.StatusActive,
			Priority: 1, Audience: catalog.AudienceAll, AgeMin: 0, AgeMax: 120,
		},
	})
}

func TestService_ManualTagsBypassInference(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, false, 6, zap.NewNop())

	trip := octoberTrip("FR", []int{30})
	trip.Tags = []string{"rain"}

	items, err := svc.Recommend(context.Background(), trip)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B000RAIN01", items[0].ASIN)
	assert.Contains(t, items[0].Explain, "ai=manual")
}

func TestService_NoTagsNoAIReturnsUnfiltered(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, false, 6, zap.NewNop())

	items, err := svc.Recommend(context.Background(), octoberTrip("FR", []int{30}))
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Contains(t, items[0].Explain, "ai=none")
}

func TestService_AIEnabledUsesInferredTagsStrictly(t *testing.T) {
	repo := seedCatalog()
	// AI enabled but no client: the explain service degrades to the
	// catalog-frequency fallback, which still supplies strict guidance.
	store := cache.NewTTLStore[explain.Response](time.Hour)
	explainer := explain.NewService(false, nil, repo, store, zap.NewNop())
	svc := NewService(repo, explainer, true, 6, zap.NewNop())

	items, err := svc.Recommend(context.Background(), octoberTrip("FR", []int{30}))
	require.NoError(t, err)
	// the untagged record is filtered out under strict mode
	require.Len(t, items, 2)
	assert.Equal(t, "B000CORE01", items[0].ASIN)
	assert.Equal(t, "B000RAIN01", items[1].ASIN)
	assert.Contains(t, items[0].Explain, "ai=fallback")
}
