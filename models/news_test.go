package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewsStatus_Valid(t *testing.T) {
	for _, s := range []NewsStatus{
		NewsStatusDraft, NewsStatusReview, NewsStatusPublished,
		NewsStatusUnpublished, NewsStatusArchived,
	} {
		assert.True(t, s.Valid(), s)
	}

	assert.False(t, NewsStatus("live").Valid())
	assert.False(t, NewsStatus("").Valid())
}

func TestNews_TranslationFor(t *testing.T) {
	n := &News{Translations: []NewsTranslation{
		{Lang: "uz", Title: "Sarlavha"},
		{Lang: "ru", Title: "Заголовок"},
	}}

	tr := n.TranslationFor("ru")
	assert.NotNil(t, tr)
	assert.Equal(t, "Заголовок", tr.Title)
	assert.Nil(t, n.TranslationFor("en"))
}

func TestAdsCampaign_WindowContains(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	unbounded := &AdsCampaign{}
	assert.True(t, unbounded.WindowContains(now))

	bounded := &AdsCampaign{StartAt: &start, EndAt: &end}
	assert.True(t, bounded.WindowContains(now))
	assert.False(t, bounded.WindowContains(start.Add(-time.Minute)))

	// The end bound is exclusive.
	assert.False(t, bounded.WindowContains(end))
	assert.True(t, bounded.WindowContains(end.Add(-time.Second)))
}
