package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple latin", "Breaking News Today", "breaking-news-today"},
		{"russian cyrillic", "Новости дня", "novosti-dnya"},
		{"uzbek cyrillic", "Ўзбекистон янгиликлари", "ozbekiston-yangiliklari"},
		{"mixed script", "Tashkent Янгиликлар 2025", "tashkent-yangiliklar-2025"},
		{"accents stripped", "Café résumé", "cafe-resume"},
		{"symbols removed", "Price: $100 (50% off!)", "price-100-50-off"},
		{"collapsed whitespace", "  too   many    spaces  ", "too-many-spaces"},
		{"repeated dashes", "double -- dash", "double-dash"},
		{"empty title", "", ""},
		{"only symbols", "!!!???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.title))
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"breaking-news-today", true},
		{"news2025", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"Upper-Case", false},
		{"under_score", false},
		{"with space", false},
		{"кириллица", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidSlug(tt.slug))
		})
	}
}
