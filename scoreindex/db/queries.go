package db

import (
	"database/sql"
	"errors"

	"github.com/venicegeo/geojson-go/geojson"
)

const scoreColumns = `image_id, filename, gvi_score, index_threshold, vegetation_pixels,
	total_pixels, uniform_index, scored_at, captured_at, sequence_id, ST_AsGeoJSON(location)`

const upsertScoreStatement = `
INSERT INTO greenview_points as gp (
	image_id,
	filename,
	gvi_score,
	index_threshold,
	vegetation_pixels,
	total_pixels,
	uniform_index,
	scored_at,
	captured_at,
	sequence_id,
	location)
VALUES
(
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	ST_SetSRID(ST_GeomFromGeoJSON($11), 4326)
)
	ON CONFLICT (image_id) DO UPDATE
	SET filename = $2,
		gvi_score = $3,
		index_threshold = $4,
		vegetation_pixels = $5,
		total_pixels = $6,
		uniform_index = $7,
		scored_at = $8,
		captured_at = $9,
		sequence_id = $10,
		location = ST_SetSRID(ST_GeomFromGeoJSON($11), 4326)
	`

//SearchScores returns the indexed points inside the given bounding box (all
//points, when the bbox is empty) whose scores fall in [minScore, maxScore].
func SearchScores(tx *sql.Tx, bbox geojson.BoundingBox, minScore float64, maxScore float64) ([]GreenViewPointRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if len(bbox) >= 4 {
		rows, err = tx.Query(`
			SELECT `+scoreColumns+`
			FROM public.greenview_points
			WHERE gvi_score >= $1 AND gvi_score <= $2
			AND ST_Intersects(location, ST_MakeEnvelope($3, $4, $5, $6, 4326))
			ORDER BY image_id`,
			minScore, maxScore, bbox[0], bbox[1], bbox[2], bbox[3],
		)
	} else {
		rows, err = tx.Query(`
			SELECT `+scoreColumns+`
			FROM public.greenview_points
			WHERE gvi_score >= $1 AND gvi_score <= $2
			ORDER BY image_id`,
			minScore, maxScore,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []GreenViewPointRecord{}
	for rows.Next() {
		record, err := scanScoreRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

//GetScoreByImageID looks up a single indexed point by its image identifier.
func GetScoreByImageID(tx *sql.Tx, imageID string) (*GreenViewPointRecord, error) {
	rows, err := tx.Query(`
		SELECT `+scoreColumns+`
		FROM public.greenview_points
		WHERE image_id=$1
		LIMIT 1`,
		imageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	return scanScoreRecord(rows)
}

//UpsertScore inserts or refreshes one indexed point.
func UpsertScore(database *sql.DB, record GreenViewPointRecord) error {
	if record.Location == nil {
		return errors.New("an indexed point must have a location")
	}

	_, err := database.Exec(upsertScoreStatement,
		record.ImageID,
		record.Filename,
		record.Score,
		record.Threshold,
		record.VegetationPixels,
		record.TotalPixels,
		record.UniformIndex,
		record.ScoredAt,
		record.CapturedAt,
		sql.NullString{String: record.SequenceID, Valid: record.SequenceID != ""},
		record.Location.String(),
	)
	return err
}

func scanScoreRecord(rows *sql.Rows) (*GreenViewPointRecord, error) {
	var (
		record        GreenViewPointRecord
		capturedAt    sql.NullTime
		sequenceID    sql.NullString
		locationBytes []byte
		err           error
	)

	err = rows.Scan(&record.ImageID, &record.Filename, &record.Score, &record.Threshold,
		&record.VegetationPixels, &record.TotalPixels, &record.UniformIndex, &record.ScoredAt,
		&capturedAt, &sequenceID, &locationBytes)
	if err != nil {
		return nil, err
	}

	if capturedAt.Valid {
		record.CapturedAt = &capturedAt.Time
	}
	record.SequenceID = sequenceID.String

	record.Location, err = geojson.PointFromBytes(locationBytes)
	if err != nil {
		return nil, err
	}

	return &record, nil
}
