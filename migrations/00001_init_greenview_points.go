package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the greenview_points index table.
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	err := addTables(tx)

	if err == nil {
		err = addIndexes(tx)
	}

	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.greenview_points;`)
	return err
}

func addTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE public.greenview_points
		(
			image_id text COLLATE pg_catalog."default" NOT NULL,
			filename text COLLATE pg_catalog."default" NOT NULL,
			gvi_score double precision NOT NULL,
			index_threshold double precision NOT NULL,
			vegetation_pixels integer NOT NULL,
			total_pixels integer NOT NULL,
			uniform_index boolean NOT NULL DEFAULT false,
			scored_at timestamp without time zone NOT NULL,
			location geometry NOT NULL,
			CONSTRAINT "greenview_points_pk_imageId" PRIMARY KEY (image_id)
		)
		WITH (
			OIDS = FALSE
		);
		`)

	return err
}

func addIndexes(tx *sql.Tx) error {

	_, err := tx.Exec(`
		CREATE INDEX idx_greenview_points_location
		ON public.greenview_points USING gist
		(location);

		CREATE INDEX idx_greenview_points_score
		ON public.greenview_points (gvi_score);
		`)

	return err
}
