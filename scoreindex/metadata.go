package scoreindex

import (
	"database/sql"

	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/scoreindex/db"
)

func getScoreMetadata(tx *sql.Tx, ctx Context, imageID string) (model.GeoJSONFeatureCreator, error) {
	record, err := db.GetScoreByImageID(tx, imageID)
	if err != nil {
		return nil, err
	}

	return scoredPointResultFromRecord(*record), nil
}
