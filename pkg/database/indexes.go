package database

import (
	"log"

	"gorm.io/gorm"
)

// CreateSearchIndexes creates the indexes the search endpoints rely on.
// Index creation failures are logged and skipped so a partially indexed
// database still starts.
func CreateSearchIndexes(db *gorm.DB) error {
	log.Println("Creating search indexes...")

	daycareIndexes := []string{
		// Trigram indexes back the ILIKE filters on text columns.
		"CREATE EXTENSION IF NOT EXISTS pg_trgm;",
		"CREATE INDEX IF NOT EXISTS idx_daycares_name_trgm ON daycares USING GIN (name gin_trgm_ops);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_description_trgm ON daycares USING GIN (description gin_trgm_ops);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_city_trgm ON daycares USING GIN (city gin_trgm_ops);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_address_trgm ON daycares USING GIN (address gin_trgm_ops);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_ward_trgm ON daycares USING GIN (ward gin_trgm_ops);",

		// JSONB indexes for feature and age group filters.
		"CREATE INDEX IF NOT EXISTS idx_daycares_features_gin ON daycares USING GIN (features);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_age_groups_gin ON daycares USING GIN (age_groups);",
		"CREATE INDEX IF NOT EXISTS idx_daycares_program_age_gin ON daycares USING GIN (program_age);",

		// Composite index for the common region plus type narrowing.
		"CREATE INDEX IF NOT EXISTS idx_daycares_region_type ON daycares(region, daycare_type);",
	}

	userIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_verified ON users(email, email_verified);",
		"CREATE INDEX IF NOT EXISTS idx_users_reset_token_expires ON users(reset_password_token, reset_password_token_expires) WHERE reset_password_token <> '';",
	}

	allIndexes := append(daycareIndexes, userIndexes...)

	for _, indexSQL := range allIndexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
		}
	}

	log.Println("Search indexes created")
	return nil
}
