package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// History action constants used in NewsDiff.Action
const (
	HistoryActionStatusChange  = "status_change"
	HistoryActionAutoPublish   = "auto_publish"
	HistoryActionAutoUnpublish = "auto_unpublish"
	HistoryActionSoftDelete    = "soft_delete"
	HistoryActionRestore       = "restore"
)

// NewsDiff is the structured change payload attached to each history record.
// Fields are explicit rather than a free-form map so payload shape is
// enforced at compile time.
type NewsDiff struct {
	Field       string     `json:"field,omitempty"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	Action      string     `json:"action,omitempty"`
	Actor       string     `json:"actor,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// Value implements the driver.Valuer interface for NewsDiff
func (d NewsDiff) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for NewsDiff
func (d *NewsDiff) Scan(value any) error {
	if value == nil {
		*d = NewsDiff{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into NewsDiff", value)
	}

	return json.Unmarshal(bytes, d)
}

// NewsHistory is the append-only audit ledger for a news article. Rows are
// written in the same transaction as the change they describe and are never
// updated or deleted afterwards.
type NewsHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	NewsID      uint      `gorm:"not null;index:idx_news_history_news_id" json:"news_id"`
	ChangedByID *uint     `gorm:"index:idx_news_history_changed_by" json:"changed_by_id,omitempty"`
	FromStatus  *string   `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus    string    `gorm:"size:20;not null" json:"to_status"`
	Diff        NewsDiff  `gorm:"type:jsonb" json:"diff"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_news_history_created_at" json:"created_at"`

	// Relations
	News      *News `gorm:"foreignKey:NewsID;references:ID" json:"news,omitempty"`
	ChangedBy *User `gorm:"foreignKey:ChangedByID;references:ID" json:"changed_by,omitempty"`
}

func (NewsHistory) TableName() string {
	return "news_history"
}

// NewsHistoryFilter represents filter criteria for history queries
type NewsHistoryFilter struct {
	ID            *uint
	NewsID        *uint
	ChangedByID   *uint
	ToStatus      *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
