package models

import (
	"time"

	"github.com/lib/pq"
)

// Assignment weight bounds. A nil weight means the default.
const (
	MinAssignmentWeight     = 0
	MaxAssignmentWeight     = 100
	DefaultAssignmentWeight = 100
)

// AdsAssignment binds a creative to a placement with targeting filters and
// a rotation weight. Empty filter arrays mean "no restriction"; the category
// filter is strict, see MatchesCategory.
type AdsAssignment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PlacementID    uint           `gorm:"not null;index:idx_ads_assignments_placement_id" json:"placement_id"`
	CreativeID     uint           `gorm:"not null;index:idx_ads_assignments_creative_id" json:"creative_id"`
	Weight         *int           `json:"weight,omitempty"`
	LangFilter     pq.StringArray `gorm:"type:text[]" json:"lang_filter,omitempty"`
	CategoryFilter pq.Int64Array  `gorm:"type:bigint[]" json:"category_filter,omitempty"`
	StartAt        *time.Time     `json:"start_at,omitempty"`
	EndAt          *time.Time     `json:"end_at,omitempty"`
	IsActive       bool           `gorm:"not null;default:true;index:idx_ads_assignments_is_active" json:"is_active"`
	CreatedAt      time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`

	// Relations
	Placement *AdsPlacement `gorm:"foreignKey:PlacementID;references:ID" json:"placement,omitempty"`
	Creative  *AdsCreative  `gorm:"foreignKey:CreativeID;references:ID" json:"creative,omitempty"`
}

func (AdsAssignment) TableName() string {
	return "ads_assignments"
}

// EffectiveWeight returns the rotation weight, defaulting a nil weight
func (a *AdsAssignment) EffectiveWeight() int {
	if a.Weight == nil {
		return DefaultAssignmentWeight
	}
	return *a.Weight
}

// MatchesLang reports whether the assignment targets the given language.
// An empty filter matches every language.
func (a *AdsAssignment) MatchesLang(lang string) bool {
	if len(a.LangFilter) == 0 {
		return true
	}
	for _, l := range a.LangFilter {
		if l == lang {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether the assignment targets the given category.
// A filtered assignment never matches a request with no category context:
// category-targeted ads must not leak onto uncategorized pages.
func (a *AdsAssignment) MatchesCategory(categoryID *uint) bool {
	if len(a.CategoryFilter) == 0 {
		return true
	}
	if categoryID == nil {
		return false
	}
	for _, c := range a.CategoryFilter {
		if c == int64(*categoryID) {
			return true
		}
	}
	return false
}

// WindowContains reports whether now falls inside the assignment's run
// window. Nil bounds are unbounded; the end is exclusive.
func (a *AdsAssignment) WindowContains(now time.Time) bool {
	if a.StartAt != nil && now.Before(*a.StartAt) {
		return false
	}
	if a.EndAt != nil && !now.Before(*a.EndAt) {
		return false
	}
	return true
}

// AdsAssignmentFilter represents filter criteria for assignment queries
type AdsAssignmentFilter struct {
	ID          *uint
	PlacementID *uint
	CreativeID  *uint
	IsActive    *bool
}
