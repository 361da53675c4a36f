package model

import "gorm.io/gorm"

// Application statuses.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusDeclined = "declined"
)

// Favorite marks a listing a parent has saved.
type Favorite struct {
	gorm.Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_favorites_user_daycare" json:"userId"`
	DaycareID uint    `gorm:"not null;uniqueIndex:idx_favorites_user_daycare" json:"daycareId"`
	Daycare   Daycare `gorm:"foreignKey:DaycareID" json:"daycare,omitempty"`
}

// Application is a parent's enrollment request for a listing.
type Application struct {
	gorm.Model
	UserID       uint    `gorm:"not null;index" json:"userId"`
	DaycareID    uint    `gorm:"not null;index" json:"daycareId"`
	Daycare      Daycare `gorm:"foreignKey:DaycareID" json:"daycare,omitempty"`
	ChildName    string  `gorm:"size:100;not null" json:"childName"`
	ChildAge     int     `gorm:"not null" json:"childAge"`
	StartDate    string  `gorm:"size:20" json:"startDate,omitempty"`
	Notes        string  `gorm:"type:text" json:"notes,omitempty"`
	Status       string  `gorm:"size:20;default:pending;index" json:"status"`
	ProviderNote string  `gorm:"type:text" json:"providerNote,omitempty"`
}

// ContactLog records an outreach attempt from a parent to a listing.
type ContactLog struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	DaycareID uint   `gorm:"not null;index" json:"daycareId"`
	Method    string `gorm:"size:20;not null" json:"method"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
}

// Message is a direct message between two accounts.
type Message struct {
	gorm.Model
	SenderID    uint   `gorm:"not null;index" json:"senderId"`
	RecipientID uint   `gorm:"not null;index" json:"recipientId"`
	Subject     string `gorm:"size:255" json:"subject"`
	Body        string `gorm:"type:text;not null" json:"body"`
	Read        bool   `gorm:"default:false" json:"read"`
}
