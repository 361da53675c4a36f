package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AgeGroup holds the open capacity for one age band.
type AgeGroup struct {
	Capacity int `json:"capacity"`
}

// AgeGroups maps the five supported age bands to their capacity.
// JSON keys match the stored column layout, so SQL predicates address
// bands as e.g. age_groups #>> '{toddler,capacity}'.
type AgeGroups struct {
	Infant       AgeGroup `json:"infant"`
	Toddler      AgeGroup `json:"toddler"`
	Preschool    AgeGroup `json:"preschool"`
	Kindergarten AgeGroup `json:"kindergarten"`
	SchoolAge    AgeGroup `json:"schoolAge"`
}

// Daycare is a directory listing.
type Daycare struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;index" json:"name"`
	City        string `gorm:"size:100;index" json:"city"`
	Region      string `gorm:"size:100;index" json:"region"`
	Ward        string `gorm:"size:100;index" json:"ward"`
	Address     string `gorm:"size:255" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	Phone       string `gorm:"size:30" json:"phone,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Website     string `gorm:"size:255" json:"website,omitempty"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"reviewCount"`

	// Price is the monthly fee used for range filtering. PriceString
	// keeps the original display form ("$1,250/month", "Contact us").
	Price           *float64 `gorm:"index" json:"price,omitempty"`
	PriceString     string   `gorm:"size:100" json:"priceString,omitempty"`
	RegistrationFee *float64 `json:"registrationFee,omitempty"`

	Availability string `gorm:"size:10;default:no;index" json:"availability"`
	DaycareType  string `gorm:"size:100;index" json:"daycareType"`

	ProgramAge datatypes.JSONSlice[string]  `json:"programAge"`
	Features   datatypes.JSONSlice[string]  `json:"features"`
	AgeGroups  datatypes.JSONType[AgeGroups] `gorm:"type:jsonb" json:"ageGroups"`

	CWELCC           bool `gorm:"column:cwelcc;default:false;index" json:"cwelcc"`
	SubsidyAvailable bool `gorm:"default:false;index" json:"subsidyAvailable"`
}

// AgeGroupKeys lists the JSON keys of AgeGroups in display order.
var AgeGroupKeys = []string{"infant", "toddler", "preschool", "kindergarten", "schoolAge"}
