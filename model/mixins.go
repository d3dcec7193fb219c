package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// CaptureMetadata is a mixin containing optional capture metadata carried
// over from the source imagery platform's point features
type CaptureMetadata struct {
	CapturedAt time.Time
	SequenceID string
}

// Apply implements the GeoJSONFeatureMixin interface
func (cm CaptureMetadata) Apply(feature *geojson.Feature) error {
	if !cm.CapturedAt.IsZero() {
		feature.Properties["captured_at"] = cm.CapturedAt.UTC().Format(ScoredTimeFormat)
	}
	if cm.SequenceID != "" {
		feature.Properties["sequence_id"] = cm.SequenceID
	}
	return nil
}

// CaptureMetadataFromFeature recovers capture metadata from a point feature's
// properties, tolerating the capture time encodings of ParseCaptureTime.
// Returns nil when the feature carries none.
func CaptureMetadataFromFeature(feature *geojson.Feature) *CaptureMetadata {
	if feature == nil {
		return nil
	}

	metadata := CaptureMetadata{SequenceID: feature.PropertyString("sequence_id")}

	switch value := feature.Properties["captured_at"].(type) {
	case string:
		if capturedAt, err := ParseCaptureTime(value); err == nil {
			metadata.CapturedAt = capturedAt
		}
	case float64:
		millis := int64(value)
		metadata.CapturedAt = time.Unix(millis/1000, (millis%1000)*int64(time.Millisecond)).UTC()
	}

	if metadata.CapturedAt.IsZero() && metadata.SequenceID == "" {
		return nil
	}
	return &metadata
}
