package models

import (
	"time"
)

// Category is a node in the category tree. The tree is stored flat: a node
// references its parent by id only, and children are resolved by index lookup
// in the repository. There are no owning parent/child pointers.
type Category struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ParentID  *uint      `gorm:"index:idx_categories_parent_id" json:"parent_id,omitempty"`
	IsActive  bool       `gorm:"not null;default:true;index:idx_categories_is_active" json:"is_active"`
	SortOrder int        `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Translations []CategoryTranslation `gorm:"foreignKey:CategoryID" json:"translations,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// TranslationFor returns the translation for lang, or nil when absent
func (c *Category) TranslationFor(lang string) *CategoryTranslation {
	for i := range c.Translations {
		if c.Translations[i].Lang == lang {
			return &c.Translations[i]
		}
	}
	return nil
}

// CategoryTranslation holds per-language category content. The slug is
// globally unique per language, not merely unique within one category.
type CategoryTranslation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CategoryID  uint   `gorm:"not null;index:idx_category_translations_category_id;uniqueIndex:uk_category_translations_category_lang,priority:1" json:"category_id"`
	Lang        string `gorm:"size:10;not null;uniqueIndex:uk_category_translations_category_lang,priority:2;uniqueIndex:uk_category_translations_lang_slug,priority:1" json:"lang"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:255;not null;uniqueIndex:uk_category_translations_lang_slug,priority:2" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (CategoryTranslation) TableName() string {
	return "category_translations"
}

// CategoryFilter represents filter criteria for category queries
type CategoryFilter struct {
	ID       *uint
	ParentID *uint
	IsActive *bool
}
