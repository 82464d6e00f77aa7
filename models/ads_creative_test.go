package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreativePayload_Validate(t *testing.T) {
	mediaID := uint(7)

	tests := []struct {
		name    string
		payload CreativePayload
		wantErr error
	}{
		{
			name:    "valid image payload",
			payload: NewImagePayload(7, "https://cdn.example.com/a.png"),
			wantErr: nil,
		},
		{
			name:    "valid html payload",
			payload: NewHTMLPayload("<div>promo</div>"),
			wantErr: nil,
		},
		{
			name:    "image without media reference",
			payload: CreativePayload{Kind: CreativeKindImage},
			wantErr: ErrCreativePayloadImage,
		},
		{
			name:    "image carrying a snippet",
			payload: CreativePayload{Kind: CreativeKindImage, MediaID: &mediaID, HTMLSnippet: "<b>x</b>"},
			wantErr: ErrCreativePayloadImage,
		},
		{
			name:    "html without snippet",
			payload: CreativePayload{Kind: CreativeKindHTML},
			wantErr: ErrCreativePayloadHTML,
		},
		{
			name:    "html carrying a media reference",
			payload: CreativePayload{Kind: CreativeKindHTML, MediaID: &mediaID, HTMLSnippet: "<b>x</b>"},
			wantErr: ErrCreativePayloadHTML,
		},
		{
			name:    "unknown kind",
			payload: CreativePayload{Kind: "video"},
			wantErr: ErrCreativePayloadKind,
		},
		{
			name:    "empty kind",
			payload: CreativePayload{},
			wantErr: ErrCreativePayloadKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreativePayload_ValueRejectsInvalid(t *testing.T) {
	_, err := CreativePayload{Kind: CreativeKindImage}.Value()
	assert.Error(t, err)

	v, err := NewHTMLPayload("<div>ok</div>").Value()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestCreativePayload_Scan(t *testing.T) {
	var p CreativePayload
	require.NoError(t, p.Scan([]byte(`{"kind":"html","html_snippet":"<b>x</b>"}`)))
	assert.Equal(t, CreativeKindHTML, p.Kind)
	assert.Equal(t, "<b>x</b>", p.HTMLSnippet)

	require.NoError(t, p.Scan(nil))
	assert.Empty(t, p.Kind)

	assert.Error(t, p.Scan(42))
}

func TestAdsCampaignStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AdsCampaignStatus
		to      AdsCampaignStatus
		allowed bool
	}{
		{AdsCampaignStatusDraft, AdsCampaignStatusActive, true},
		{AdsCampaignStatusActive, AdsCampaignStatusPaused, true},
		{AdsCampaignStatusPaused, AdsCampaignStatusActive, true},
		{AdsCampaignStatusActive, AdsCampaignStatusEnded, true},
		{AdsCampaignStatusDraft, AdsCampaignStatusDraft, false},
		{AdsCampaignStatusEnded, AdsCampaignStatusActive, false},
		{AdsCampaignStatusEnded, AdsCampaignStatusDraft, false},
		{AdsCampaignStatusActive, "archived", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAdsAssignment_Targeting(t *testing.T) {
	catSeven := uint(7)
	catThree := uint(3)

	open := &AdsAssignment{}
	assert.True(t, open.MatchesLang("uz"))
	assert.True(t, open.MatchesCategory(nil))
	assert.True(t, open.MatchesCategory(&catSeven))

	targeted := &AdsAssignment{
		LangFilter:     []string{"uz", "ru"},
		CategoryFilter: []int64{7},
	}
	assert.True(t, targeted.MatchesLang("uz"))
	assert.False(t, targeted.MatchesLang("en"))
	assert.True(t, targeted.MatchesCategory(&catSeven))
	assert.False(t, targeted.MatchesCategory(&catThree))

	// A category-filtered assignment never matches a request without
	// category context.
	assert.False(t, targeted.MatchesCategory(nil))
}

func TestAdsAssignment_EffectiveWeight(t *testing.T) {
	zero := 0
	fifty := 50

	assert.Equal(t, DefaultAssignmentWeight, (&AdsAssignment{}).EffectiveWeight())
	assert.Equal(t, 0, (&AdsAssignment{Weight: &zero}).EffectiveWeight())
	assert.Equal(t, 50, (&AdsAssignment{Weight: &fifty}).EffectiveWeight())
}
