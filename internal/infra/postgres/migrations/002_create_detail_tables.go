package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createDetailTables creates the three category detail tables, each
// 1:1 with ads via a unique ad_id. There is intentionally no foreign
// key to ads: the owning table is chosen at runtime by category and
// the pairing is enforced by the application (the consistency scan
// reports violations).
func createDetailTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_detail_tables",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS property_ads (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					ad_id UUID NOT NULL,
					property_type VARCHAR(50) NOT NULL,
					bedrooms INTEGER NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
					bathrooms INTEGER NOT NULL DEFAULT 0 CHECK (bathrooms >= 0),
					area_sqft DECIMAL(10,2) NOT NULL DEFAULT 0 CHECK (area_sqft >= 0),
					floor INTEGER,
					is_furnished BOOLEAN NOT NULL DEFAULT FALSE,
					has_parking BOOLEAN NOT NULL DEFAULT FALSE,
					has_garden BOOLEAN NOT NULL DEFAULT FALSE,
					amenities TEXT[],

					CONSTRAINT uq_property_ads_ad_id UNIQUE (ad_id)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS vehicle_ads (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					ad_id UUID NOT NULL,
					vehicle_type VARCHAR(50) NOT NULL,
					manufacturer_id UUID NOT NULL,
					model_id UUID NOT NULL,
					variant_id UUID,
					year INTEGER NOT NULL CHECK (year >= 1900),
					mileage INTEGER NOT NULL DEFAULT 0 CHECK (mileage >= 0),
					transmission_type_id UUID,
					fuel_type_id UUID,
					color VARCHAR(50),
					is_first_owner BOOLEAN NOT NULL DEFAULT FALSE,
					has_insurance BOOLEAN NOT NULL DEFAULT FALSE,
					has_rc_book BOOLEAN NOT NULL DEFAULT FALSE,
					additional_features TEXT[],

					CONSTRAINT uq_vehicle_ads_ad_id UNIQUE (ad_id)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS commercial_vehicle_ads (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					ad_id UUID NOT NULL,
					vehicle_type VARCHAR(50) NOT NULL,
					commercial_vehicle_type VARCHAR(50) NOT NULL,
					body_type VARCHAR(50),
					manufacturer_id UUID NOT NULL,
					model_id UUID NOT NULL,
					variant_id UUID,
					year INTEGER NOT NULL CHECK (year >= 1900),
					mileage INTEGER NOT NULL DEFAULT 0 CHECK (mileage >= 0),
					transmission_type_id UUID,
					fuel_type_id UUID,
					color VARCHAR(50),
					payload_capacity DECIMAL(12,2) NOT NULL DEFAULT 0 CHECK (payload_capacity >= 0),
					payload_unit VARCHAR(10),
					axle_count INTEGER NOT NULL DEFAULT 0 CHECK (axle_count BETWEEN 0 AND 10),
					seating_capacity INTEGER NOT NULL DEFAULT 0 CHECK (seating_capacity >= 0),
					has_fitness BOOLEAN NOT NULL DEFAULT FALSE,
					has_permit BOOLEAN NOT NULL DEFAULT FALSE,
					is_first_owner BOOLEAN NOT NULL DEFAULT FALSE,
					has_insurance BOOLEAN NOT NULL DEFAULT FALSE,
					has_rc_book BOOLEAN NOT NULL DEFAULT FALSE,
					additional_features TEXT[],

					CONSTRAINT uq_commercial_vehicle_ads_ad_id UNIQUE (ad_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_vehicle_ads_manufacturer ON vehicle_ads(manufacturer_id);",
				"CREATE INDEX IF NOT EXISTS idx_vehicle_ads_model ON vehicle_ads(model_id);",
				"CREATE INDEX IF NOT EXISTS idx_commercial_ads_manufacturer ON commercial_vehicle_ads(manufacturer_id);",
				"CREATE INDEX IF NOT EXISTS idx_commercial_ads_model ON commercial_vehicle_ads(model_id);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for _, table := range []string{"commercial_vehicle_ads", "vehicle_ads", "property_ads"} {
				if err := tx.Exec("DROP TABLE IF EXISTS " + table + ";").Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
