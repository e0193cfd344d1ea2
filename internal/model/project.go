package model

import "gorm.io/datatypes"

type Project struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Key         string `gorm:"size:25;not null;uniqueIndex:idx_project_org_key" json:"key"`
	Description string `gorm:"size:500" json:"description"`

	// External organization id; a project belongs to exactly one org.
	OrganizationID string `gorm:"size:64;not null;index;uniqueIndex:idx_project_org_key" json:"organization_id"`

	// Local user ids allowed to administer the project.
	AdminIDs datatypes.JSONSlice[string] `json:"admin_ids"`

	Sprints []Sprint `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"sprints,omitempty"`
	Issues  []Issue  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"issues,omitempty"`
}

// IsAdmin reports whether the given local user id is in the admin set.
func (p *Project) IsAdmin(userID string) bool {
	for _, id := range p.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
