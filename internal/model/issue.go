package model

type IssuePriority string

const (
	PriorityLow    IssuePriority = "LOW"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityHigh   IssuePriority = "HIGH"
	PriorityUrgent IssuePriority = "URGENT"
)

// ValidIssuePriority reports whether p is one of the four known priorities.
func ValidIssuePriority(p IssuePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Issue is a board card. Status is an opaque workflow column key validated
// against configuration, not a hardcoded enum. Within one
// (ProjectID, Status) column the Order values form the board sort; the
// composite unique index keeps them distinct under concurrent writers.
type Issue struct {
	BaseModel
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `json:"description"`
	Status      string        `gorm:"size:50;not null;uniqueIndex:idx_issue_column_order" json:"status"`
	Priority    IssuePriority `gorm:"size:10;not null;default:'MEDIUM'" json:"priority"`
	Order       int           `gorm:"not null;uniqueIndex:idx_issue_column_order" json:"order"`

	ProjectID  string  `gorm:"type:uuid;not null;uniqueIndex:idx_issue_column_order,priority:1" json:"project_id"`
	SprintID   *string `gorm:"type:uuid;index" json:"sprint_id"`
	ReporterID string  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	AssigneeID *string `gorm:"type:uuid;index" json:"assignee_id"`

	Project  Project `json:"-"`
	Reporter User    `gorm:"foreignKey:ReporterID" json:"reporter"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee"`
}
