package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Child describes a dependent on a parent account.
type Child struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// CommunicationPreferences holds opt-in flags for outbound contact.
// Acknowledgement records the terms acceptance given at registration.
type CommunicationPreferences struct {
	Email           bool `json:"email"`
	SMS             bool `json:"sms"`
	Phone           bool `json:"phone"`
	Acknowledgement bool `json:"acknowledgement"`
}

// User represents a registered account. Parents browse and apply to
// listings; providers manage the listing referenced by DaycareID.
type User struct {
	gorm.Model
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	UserType  string `gorm:"size:20;not null;index" json:"userType"`
	Phone     string `gorm:"size:30" json:"phone,omitempty"`
	Address   string `gorm:"size:255" json:"address,omitempty"`

	// Provider accounts link to the listing they manage.
	DaycareID *uint `gorm:"index" json:"daycareId,omitempty"`

	Children                 datatypes.JSONType[[]Child]                  `json:"children,omitempty"`
	CommunicationPreferences datatypes.JSONType[CommunicationPreferences] `json:"communicationPreferences,omitempty"`

	IsActive      bool `gorm:"default:true" json:"isActive"`
	EmailVerified bool `gorm:"default:false" json:"emailVerified"`

	EmailVerificationToken        string     `gorm:"size:64;index" json:"-"`
	EmailVerificationTokenExpires *time.Time `json:"-"`
	ResetPasswordToken            string     `gorm:"size:64;index" json:"-"`
	ResetPasswordTokenExpires     *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// FullName returns the display name for emails and messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsParent reports whether the account is a parent account.
func (u *User) IsParent() bool {
	return u.UserType == "parent"
}

// IsProvider reports whether the account manages a listing.
func (u *User) IsProvider() bool {
	return u.UserType == "provider"
}
