package businessflow

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlacementRepo serves a single placement by code. Unused interface
// methods panic via the embedded nil interface.
type fakePlacementRepo struct {
	repository.AdsPlacementRepository
	placement *models.AdsPlacement
	err       error
}

func (f *fakePlacementRepo) ByCode(ctx context.Context, code string) (*models.AdsPlacement, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.placement != nil && f.placement.Code == code {
		return f.placement, nil
	}
	return nil, nil
}

type fakeAssignmentRepo struct {
	repository.AdsAssignmentRepository
	assignments []*models.AdsAssignment
}

func (f *fakeAssignmentRepo) ListActiveForPlacement(ctx context.Context, placementID uint, now time.Time) ([]*models.AdsAssignment, error) {
	return f.assignments, nil
}

func intPtr(i int) *int              { return &i }
func uintPtr(u uint) *uint           { return &u }
func timePtr(t time.Time) *time.Time { return &t }

func testAdsFlow(placement *models.AdsPlacement, assignments []*models.AdsAssignment) *PublicAdsFlowImpl {
	r := rand.New(rand.NewPCG(42, 0))
	return &PublicAdsFlowImpl{
		placementRepo:  &fakePlacementRepo{placement: placement},
		assignmentRepo: &fakeAssignmentRepo{assignments: assignments},
		cacheTTL:       30 * time.Second,
		now:            func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
		intn:           r.IntN,
	}
}

func testPlacement() *models.AdsPlacement {
	return &models.AdsPlacement{ID: 1, Code: "home_top", IsActive: true}
}

func imageAssignment(id uint, weight *int, mediaID uint) *models.AdsAssignment {
	return &models.AdsAssignment{
		ID:          id,
		PlacementID: 1,
		CreativeID:  id,
		Weight:      weight,
		IsActive:    true,
		Creative: &models.AdsCreative{
			ID:         id,
			CampaignID: 1,
			Payload:    models.NewImagePayload(mediaID, "https://cdn.example.com/banner.png"),
			LandingURL: "https://advertiser.example.com",
			IsActive:   true,
			Translations: []models.AdsCreativeTranslation{
				{CreativeID: id, Lang: "uz", Title: "Aksiya", AltText: "Banner"},
				{CreativeID: id, Lang: "ru", Title: "Акция", AltText: "Баннер"},
			},
		},
	}
}

func TestResolveAd_PlacementNotFound(t *testing.T) {
	flow := testAdsFlow(testPlacement(), nil)

	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "no_such_slot"}, nil)
	require.Error(t, err)
	assert.True(t, IsPlacementNotFound(err))
}

func TestResolveAd_InactivePlacement(t *testing.T) {
	placement := testPlacement()
	placement.IsActive = false
	flow := testAdsFlow(placement, []*models.AdsAssignment{imageAssignment(1, nil, 10)})

	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.Error(t, err)
	assert.True(t, IsPlacementNotFound(err))
}

func TestResolveAd_NoEligibleAd(t *testing.T) {
	flow := testAdsFlow(testPlacement(), nil)

	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.Error(t, err)
	assert.True(t, IsNoEligibleAd(err))
}

func TestResolveAd_LangFilter(t *testing.T) {
	a := imageAssignment(1, nil, 10)
	a.LangFilter = []string{"ru"}
	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{a})

	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", Lang: "uz"}, nil)
	require.Error(t, err)
	assert.True(t, IsNoEligibleAd(err))

	resp, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", Lang: "ru"}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.CreativeID)
}

func TestResolveAd_CategoryFilterIsStrict(t *testing.T) {
	a := imageAssignment(1, nil, 10)
	a.CategoryFilter = []int64{7}
	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{a})

	// A category-targeted assignment must not serve on pages with no
	// category context.
	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.Error(t, err)
	assert.True(t, IsNoEligibleAd(err))

	_, err = flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", CategoryID: uintPtr(3)}, nil)
	require.Error(t, err)
	assert.True(t, IsNoEligibleAd(err))

	resp, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", CategoryID: uintPtr(7)}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.CreativeID)
}

func TestResolveAd_WindowFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	expired := imageAssignment(1, nil, 10)
	expired.EndAt = timePtr(now.Add(-time.Hour))

	upcoming := imageAssignment(2, nil, 11)
	upcoming.StartAt = timePtr(now.Add(time.Hour))

	running := imageAssignment(3, nil, 12)
	running.StartAt = timePtr(now.Add(-time.Hour))
	running.EndAt = timePtr(now.Add(time.Hour))

	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{expired, upcoming, running})

	resp, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.CreativeID)
}

func TestResolveAd_MissingTranslationServesEmptyFields(t *testing.T) {
	a := imageAssignment(1, nil, 10)
	a.Creative.Translations = []models.AdsCreativeTranslation{
		{CreativeID: 1, Lang: "uz", Title: "Aksiya", AltText: "Banner"},
	}
	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{a})

	// A matching translation fills the text fields.
	resp, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", Lang: "uz"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Aksiya", resp.Title)
	assert.Equal(t, "Banner", resp.AltText)

	// A missing translation is not an error and never borrows another
	// language's copy: the ad still serves, with empty text fields.
	resp, err = flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top", Lang: "en"}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Title)
	assert.Empty(t, resp.AltText)
	assert.NotEmpty(t, resp.ImageURL)
}

func TestResolveAd_HTMLCreative(t *testing.T) {
	a := imageAssignment(1, nil, 10)
	a.Creative.Payload = models.NewHTMLPayload("<div>promo</div>")
	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{a})

	resp, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(models.CreativeKindHTML), resp.Kind)
	assert.Equal(t, "<div>promo</div>", resp.HTMLSnippet)
	assert.Empty(t, resp.ImageURL)
}

func TestResolveAd_InvalidPayloadRejected(t *testing.T) {
	a := imageAssignment(1, nil, 10)
	a.Creative.Payload = models.CreativePayload{Kind: models.CreativeKindImage} // no media ref
	flow := testAdsFlow(testPlacement(), []*models.AdsAssignment{a})

	_, err := flow.ResolveAd(context.Background(), &dto.ResolveAdRequest{PlacementCode: "home_top"}, nil)
	require.Error(t, err)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AD_PAYLOAD_INVALID", be.Code)
}

func TestSelectWeighted_Distribution(t *testing.T) {
	heavy := imageAssignment(1, intPtr(75), 10)
	light := imageAssignment(2, intPtr(25), 11)
	flow := testAdsFlow(testPlacement(), nil)

	const draws = 10000
	counts := map[uint]int{}
	for i := 0; i < draws; i++ {
		selected := flow.selectWeighted([]*models.AdsAssignment{heavy, light})
		counts[selected.ID]++
	}

	heavyShare := float64(counts[1]) / draws
	assert.InDelta(t, 0.75, heavyShare, 0.03)
	assert.Equal(t, draws, counts[1]+counts[2])
}

func TestSelectWeighted_ZeroWeightsServeUniformly(t *testing.T) {
	a := imageAssignment(1, intPtr(0), 10)
	b := imageAssignment(2, intPtr(0), 11)
	flow := testAdsFlow(testPlacement(), nil)

	const draws = 10000
	counts := map[uint]int{}
	for i := 0; i < draws; i++ {
		counts[flow.selectWeighted([]*models.AdsAssignment{a, b}).ID]++
	}

	// All-zero weights fall back to a uniform draw instead of starving the slot.
	assert.Greater(t, counts[1], 0)
	assert.Greater(t, counts[2], 0)
	assert.InDelta(t, 0.5, float64(counts[1])/draws, 0.03)
}

func TestSelectWeighted_NilWeightUsesDefault(t *testing.T) {
	defaulted := imageAssignment(1, nil, 10)
	zero := imageAssignment(2, intPtr(0), 11)
	flow := testAdsFlow(testPlacement(), nil)

	counts := map[uint]int{}
	for i := 0; i < 1000; i++ {
		counts[flow.selectWeighted([]*models.AdsAssignment{defaulted, zero}).ID]++
	}

	// Default weight 100 against weight 0 means the zero assignment never wins.
	assert.Equal(t, 1000, counts[1])
	assert.Zero(t, counts[2])
}
