package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createUsersAndAds creates the users table (owner profiles joined
// into reads; user CRUD is owned by another service) and the ads base
// table with its query indexes.
func createUsersAndAds() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_users_and_ads",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(200) NOT NULL,
					email VARCHAR(200) NOT NULL,
					phone VARCHAR(30)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS ads (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title VARCHAR(200) NOT NULL,
					description TEXT NOT NULL,
					price DECIMAL(14,2) NOT NULL CHECK (price >= 0),
					images TEXT[],
					location VARCHAR(300) NOT NULL,
					category VARCHAR(30) NOT NULL,
					is_active BOOLEAN NOT NULL DEFAULT TRUE,
					posted_by UUID NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_ads_category ON ads(category);",
				"CREATE INDEX IF NOT EXISTS idx_ads_price ON ads(price);",
				"CREATE INDEX IF NOT EXISTS idx_ads_is_active ON ads(is_active);",
				"CREATE INDEX IF NOT EXISTS idx_ads_posted_by ON ads(posted_by);",
				"CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads(created_at DESC);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP TABLE IF EXISTS ads;").Error; err != nil {
				return err
			}
			return tx.Exec("DROP TABLE IF EXISTS users;").Error
		},
	}
}
