package model

// User is the local profile record for an account owned by the external
// identity provider. Created lazily on first authenticated access; the
// ExternalID mapping never changes once set.
type User struct {
	BaseModel
	ExternalID string `gorm:"uniqueIndex;size:64;not null" json:"external_id"`
	Name       string `gorm:"size:100" json:"name"`
	Email      string `gorm:"size:100" json:"email"`
	ImageURL   string `gorm:"size:255" json:"image_url"`
}
