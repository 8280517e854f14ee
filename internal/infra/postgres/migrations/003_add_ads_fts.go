package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addAdsFTS adds PostgreSQL full-text search over ads.
//
// A search_vector tsvector column is maintained by trigger on
// INSERT/UPDATE and indexed with GIN. Weights: title 'A',
// description 'B', location 'C', so a term hit in the title ranks a
// listing above the same hit buried in the description.
func addAdsFTS() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_add_ads_fts",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				ALTER TABLE ads
				ADD COLUMN IF NOT EXISTS search_vector tsvector
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_ads_search_vector
				ON ads USING GIN (search_vector)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE OR REPLACE FUNCTION ads_search_vector_update()
				RETURNS trigger AS $$
				BEGIN
					NEW.search_vector :=
						setweight(to_tsvector('english', coalesce(NEW.title, '')), 'A') ||
						setweight(to_tsvector('english', coalesce(NEW.description, '')), 'B') ||
						setweight(to_tsvector('english', coalesce(NEW.location, '')), 'C');
					RETURN NEW;
				END
				$$ LANGUAGE plpgsql
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				DROP TRIGGER IF EXISTS trg_ads_search_vector ON ads
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TRIGGER trg_ads_search_vector
				BEFORE INSERT OR UPDATE OF title, description, location
				ON ads
				FOR EACH ROW
				EXECUTE FUNCTION ads_search_vector_update()
			`).Error; err != nil {
				return err
			}

			// Backfill existing rows.
			return tx.Exec(`
				UPDATE ads SET search_vector =
					setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
					setweight(to_tsvector('english', coalesce(description, '')), 'B') ||
					setweight(to_tsvector('english', coalesce(location, '')), 'C')
				WHERE search_vector IS NULL
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec(`DROP TRIGGER IF EXISTS trg_ads_search_vector ON ads`).Error
			_ = tx.Exec(`DROP FUNCTION IF EXISTS ads_search_vector_update()`).Error
			_ = tx.Exec(`DROP INDEX IF EXISTS idx_ads_search_vector`).Error
			_ = tx.Exec(`ALTER TABLE ads DROP COLUMN IF EXISTS search_vector`).Error
			return nil
		},
	}
}
