package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

// Up00002 adds the optional capture metadata columns carried over from the
// source point properties
func Up00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE public.greenview_points ADD COLUMN IF NOT EXISTS captured_at timestamp without time zone;
		ALTER TABLE public.greenview_points ADD COLUMN IF NOT EXISTS sequence_id text;
		`)
	return err
}

// Down00002 undoes the effects of Up00002
func Down00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE public.greenview_points DROP COLUMN IF EXISTS captured_at;
		ALTER TABLE public.greenview_points DROP COLUMN IF EXISTS sequence_id;
		`)
	return err
}
