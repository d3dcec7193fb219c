// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package points

import (
	"errors"
	"fmt"
	"os"

	"github.com/pyneet/street-view-green-view/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ReadPointCollection parses GeoJSON bytes into a point feature collection
func ReadPointCollection(context util.LogContext, body []byte) (*geojson.FeatureCollection, error) {
	var (
		pointFeatureCollection *geojson.FeatureCollection
		geoJSONParsedData      interface{}
		ok                     bool
		err                    error
	)
	if geoJSONParsedData, err = geojson.Parse(body); err != nil {
		err = util.LogSimpleErr(context, "Failed to parse point dataset as GeoJSON.", err)
		return nil, err
	}

	if pointFeatureCollection, ok = geoJSONParsedData.(*geojson.FeatureCollection); !ok {
		message := fmt.Sprintf("Expected a FeatureCollection and got %T", geoJSONParsedData)
		ptErr := util.Error{LogMsg: message, SimpleMsg: message}
		err = ptErr.Log(context, "")
		return nil, err
	}

	return pointFeatureCollection, nil
}

// LoadPointFile reads and parses the GeoJSON point dataset at the given path
func LoadPointFile(context util.LogContext, path string) (*geojson.FeatureCollection, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Points file could not be read: %s", path), err)
	}
	return ReadPointCollection(context, body)
}

// ValidatePoints checks that a dataset is usable as join input; it must
// contain at least one feature with point geometry
func ValidatePoints(pointFC *geojson.FeatureCollection) error {
	if pointFC == nil || len(pointFC.Features) == 0 {
		return errors.New("Points dataset does not contain any features")
	}
	for _, feature := range pointFC.Features {
		if _, ok := feature.Geometry.(*geojson.Point); ok {
			return nil
		}
	}
	return errors.New("Points dataset does not contain any point features")
}

// WriteCollectionFile persists a feature collection as GeoJSON at the given
// path, replacing any previous contents
func WriteCollectionFile(path string, collection *geojson.FeatureCollection) error {
	return os.WriteFile(path, []byte(collection.String()), 0644)
}
