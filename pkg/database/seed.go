package database

import (
	"time"

	"github.com/daycarehub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin user credentials.
type DefaultAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// GetDefaultAdmin returns the default admin user.
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		FirstName: "Admin",
		LastName:  "Directory",
		Email:     "admin@daycarehub.local",
		Password:  "Admin@123", // Change this in production!
	}
}

// Seed creates initial data for the database.
func Seed(db *gorm.DB) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	return SeedDaycares(db)
}

// SeedUsers creates the default admin user if it does not exist.
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)
	if result.Error == nil {
		return nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), 12)
	if err != nil {
		return err
	}

	now := time.Now()
	user := model.User{
		FirstName:     admin.FirstName,
		LastName:      admin.LastName,
		Email:         admin.Email,
		Password:      string(hashedPassword),
		UserType:      "provider",
		IsActive:      true,
		EmailVerified: true,
		LastLogin:     &now,
	}

	return db.Create(&user).Error
}

// SeedDaycares inserts a handful of sample listings on an empty table
// so a fresh environment has something to search.
func SeedDaycares(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Daycare{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	price1 := 1250.0
	price2 := 980.0
	price3 := 1540.0

	samples := []model.Daycare{
		{
			Name:         "Sunshine Early Learning Centre",
			City:         "Toronto",
			Region:       "Toronto",
			Ward:         "Davenport",
			Address:      "120 Ossington Ave",
			Description:  "Play-based learning with a focus on outdoor time.",
			Price:        &price1,
			PriceString:  "$1,250/month",
			Availability: "yes",
			DaycareType:  "Licensed Centre",
			ProgramAge:   datatypes.NewJSONSlice([]string{"Infant", "Toddler", "Preschool"}),
			Features:     datatypes.NewJSONSlice([]string{"Outdoor Playground", "Meals Included", "French Immersion"}),
			AgeGroups: datatypes.NewJSONType(model.AgeGroups{
				Infant:    model.AgeGroup{Capacity: 2},
				Toddler:   model.AgeGroup{Capacity: 5},
				Preschool: model.AgeGroup{Capacity: 8},
			}),
			CWELCC:           true,
			SubsidyAvailable: true,
		},
		{
			Name:         "Maplewood Home Daycare",
			City:         "Ottawa",
			Region:       "Ottawa",
			Ward:         "Kitchissippi",
			Address:      "45 Maple Grove Rd",
			Description:  "Small home daycare with flexible hours.",
			Price:        &price2,
			PriceString:  "$980/month",
			Availability: "no",
			DaycareType:  "Licensed Home",
			ProgramAge:   datatypes.NewJSONSlice([]string{"Toddler", "Preschool"}),
			Features:     datatypes.NewJSONSlice([]string{"Flexible Hours", "Meals Included"}),
			AgeGroups: datatypes.NewJSONType(model.AgeGroups{
				Toddler:   model.AgeGroup{Capacity: 0},
				Preschool: model.AgeGroup{Capacity: 0},
			}),
			SubsidyAvailable: true,
		},
		{
			Name:         "Riverside Montessori Academy",
			City:         "Mississauga",
			Region:       "Peel",
			Ward:         "Ward 1",
			Address:      "300 Lakeshore Rd E",
			Description:  "Montessori curriculum for preschool and kindergarten.",
			Price:        &price3,
			PriceString:  "$1,540/month",
			Availability: "yes",
			DaycareType:  "Montessori",
			ProgramAge:   datatypes.NewJSONSlice([]string{"Preschool", "Kindergarten", "School Age"}),
			Features:     datatypes.NewJSONSlice([]string{"Montessori", "Before & After School", "Music Program"}),
			AgeGroups: datatypes.NewJSONType(model.AgeGroups{
				Preschool:    model.AgeGroup{Capacity: 4},
				Kindergarten: model.AgeGroup{Capacity: 6},
				SchoolAge:    model.AgeGroup{Capacity: 10},
			}),
			CWELCC: true,
		},
	}

	return db.Create(&samples).Error
}
