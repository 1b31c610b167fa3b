package history

import "time"

// SyncRun is one recorded service batch.
type SyncRun struct {
	ID         string            `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Kind       string            `gorm:"column:kind;type:varchar(16);index" json:"kind"`
	Status     string            `gorm:"column:status;type:varchar(128)" json:"status"`
	Summary    string            `gorm:"column:summary;type:varchar(255)" json:"summary"`
	DryRun     bool              `gorm:"column:dry_run" json:"dry_run"`
	Scenes     []string          `gorm:"column:scenes;type:text;serializer:json" json:"scenes"`
	Saved      []string          `gorm:"column:saved;type:text;serializer:json" json:"saved"`
	Failed     map[string]string `gorm:"column:failed;type:text;serializer:json" json:"failed,omitempty"`
	Components int               `gorm:"column:components" json:"components"`
	Nodes      int               `gorm:"column:nodes" json:"nodes"`
	Modified   int               `gorm:"column:modified" json:"modified"`
	Errors     int               `gorm:"column:errors" json:"errors"`
	Warnings   int               `gorm:"column:warnings" json:"warnings"`
	StartedAt  time.Time         `gorm:"column:started_at;index" json:"started_at"`
	DurationMS int64             `gorm:"column:duration_ms" json:"duration_ms"`
	Items      []SyncLogItem     `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncLogItem is one diagnostic of a recorded run.
type SyncLogItem struct {
	ID          uint     `gorm:"primaryKey;column:id" json:"-"`
	RunID       string   `gorm:"column:run_id;type:varchar(36);index" json:"-"`
	Severity    string   `gorm:"column:severity;type:varchar(16)" json:"severity"`
	Package     string   `gorm:"column:package;type:varchar(255)" json:"package"`
	Type        string   `gorm:"column:type;type:varchar(255)" json:"type"`
	Member      string   `gorm:"column:member;type:varchar(255)" json:"member"`
	Annotation  string   `gorm:"column:annotation;type:varchar(64)" json:"annotation"`
	Message     string   `gorm:"column:message;type:text" json:"message"`
	Node        string   `gorm:"column:node;type:varchar(512)" json:"node,omitempty"`
	Suggestions []string `gorm:"column:suggestions;type:text;serializer:json" json:"suggestions,omitempty"`
}

func (SyncLogItem) TableName() string {
	return "sync_log_items"
}
