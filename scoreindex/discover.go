package scoreindex

import (
	"database/sql"

	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/scoreindex/db"
	"github.com/venicegeo/geojson-go/geojson"
)

func discoverScores(tx *sql.Tx, ctx Context, bbox geojson.BoundingBox,
	minScore float64, maxScore float64) (model.GeoJSONFeatureCollectionCreator, error) {
	records, err := db.SearchScores(tx, bbox, minScore, maxScore)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(records)),
	}
	for i, record := range records {
		multiResult.FeatureCreators[i] = scoredPointResultFromRecord(record)
	}

	return multiResult, nil
}

func scoredPointResultFromRecord(record db.GreenViewPointRecord) model.ScoredPointResult {
	point := geojson.NewFeature(record.Location, record.ImageID, map[string]interface{}{
		"image_id":          record.ImageID,
		"gvi_threshold":     record.Threshold,
		"vegetation_pixels": record.VegetationPixels,
		"total_pixels":      record.TotalPixels,
		"uniform_index":     record.UniformIndex,
		"scored_at":         record.ScoredAt.UTC().Format(model.ScoredTimeFormat),
	})

	result := model.ScoredPointResult{
		Point: point,
		GreenView: &model.GreenViewResult{
			Filename:         record.Filename,
			ImageID:          record.ImageID,
			Score:            record.Score,
			Threshold:        record.Threshold,
			VegetationPixels: record.VegetationPixels,
			TotalPixels:      record.TotalPixels,
			UniformIndex:     record.UniformIndex,
			ScoredAt:         record.ScoredAt,
		},
	}

	if record.CapturedAt != nil || record.SequenceID != "" {
		metadata := model.CaptureMetadata{SequenceID: record.SequenceID}
		if record.CapturedAt != nil {
			metadata.CapturedAt = *record.CapturedAt
		}
		result.CaptureMetadata = &metadata
	}

	return result
}
