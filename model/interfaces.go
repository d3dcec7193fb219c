package model

import "github.com/venicegeo/geojson-go/geojson"

// ImageFormat is an enum type for recognized raster input types
type ImageFormat string

// JPEG corresponds to .jpeg/.jpg files
const JPEG ImageFormat = "jpeg"

// PNG corresponds to .png files
const PNG ImageFormat = "png"

// GIF corresponds to .gif files
const GIF ImageFormat = "gif"

// TIFF corresponds to .tif/.tiff files
const TIFF ImageFormat = "tiff"

// BMP corresponds to .bmp files
const BMP ImageFormat = "bmp"

// WebP corresponds to .webp files
const WebP ImageFormat = "webp"

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeatureMixin is an interface for data that can be used to augment an existing GeoJSON feature
type GeoJSONFeatureMixin interface {
	Apply(*geojson.Feature) error
}
