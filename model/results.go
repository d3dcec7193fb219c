package model

import (
	"errors"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// GreenViewResult holds the score of one street-level image along with the
// statistics behind it
type GreenViewResult struct {
	Filename         string
	ImageID          string
	Score            float64
	Threshold        float64
	VegetationPixels int
	TotalPixels      int
	UniformIndex     bool
	ScoredAt         time.Time
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface. The feature
// carries no geometry; location only enters by joining onto point features.
func (gv GreenViewResult) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(nil, gv.ImageID, map[string]interface{}{
		"filename":          gv.Filename,
		"gvi_score":         gv.Score,
		"gvi_threshold":     gv.Threshold,
		"vegetation_pixels": gv.VegetationPixels,
		"total_pixels":      gv.TotalPixels,
		"uniform_index":     gv.UniformIndex,
		"scored_at":         gv.ScoredAt.UTC().Format(ScoredTimeFormat),
	})
	return f, nil
}

// Apply implements the GeoJSONFeatureMixin interface, augmenting a point
// feature with the score of the image captured there. Only the columns of
// the exported dataset are written; diagnostics stay on the standalone
// feature.
func (gv GreenViewResult) Apply(feature *geojson.Feature) error {
	feature.Properties["filename"] = gv.Filename
	feature.Properties["gvi_score"] = gv.Score
	return nil
}

// ScoredPointResult pairs a geographic point feature with the score of the
// image captured at that location; the score may be absent for unmatched
// points
type ScoredPointResult struct {
	Point     *geojson.Feature
	GreenView *GreenViewResult
	*CaptureMetadata
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface, building a
// new feature rather than mutating the input point
func (result ScoredPointResult) GeoJSONFeature() (*geojson.Feature, error) {
	if result.Point == nil {
		return nil, errors.New("scored point result has no point feature")
	}

	properties := make(map[string]interface{}, len(result.Point.Properties)+2)
	for key, value := range result.Point.Properties {
		properties[key] = value
	}
	feature := geojson.NewFeature(result.Point.Geometry, result.Point.ID, properties)

	if result.GreenView != nil {
		if err := result.GreenView.Apply(feature); err != nil {
			return nil, err
		}
	}

	if result.CaptureMetadata != nil {
		if err := result.CaptureMetadata.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// MultiResult is a container type for bundling multiple results together,
// e.g. as results from a discover endpoint or a batch join
type MultiResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
