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
	"fmt"

	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// JoinReport tallies both sides of a score join
type JoinReport struct {
	MatchedPoints   int
	UnmatchedPoints int
	DroppedScores   int
}

func (report JoinReport) String() string {
	return fmt.Sprintf("%d points matched, %d points unmatched, %d scores dropped",
		report.MatchedPoints, report.UnmatchedPoints, report.DroppedScores)
}

// MatchScores left-joins computed scores onto point features by the given
// join property, returning structured pairs in the original point order.
// Input features are never mutated. Points with no matching score get a nil
// GreenView, and scores matching no point are dropped and counted. When two
// scores collide on one identifier the first wins.
func MatchScores(context util.LogContext, pointFC *geojson.FeatureCollection, results []*model.GreenViewResult, joinProperty string) ([]model.ScoredPointResult, JoinReport) {
	var report JoinReport

	scoresByID := make(map[string]*model.GreenViewResult, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		if kept, collision := scoresByID[result.ImageID]; collision {
			util.LogAlert(context, fmt.Sprintf("Duplicate image identifier %s: keeping %s, dropping %s",
				result.ImageID, kept.Filename, result.Filename))
			report.DroppedScores++
			continue
		}
		scoresByID[result.ImageID] = result
	}

	matchedIDs := make(map[string]bool, len(scoresByID))
	matches := make([]model.ScoredPointResult, 0, len(pointFC.Features))
	for _, feature := range pointFC.Features {
		scored := model.ScoredPointResult{
			Point:           feature,
			CaptureMetadata: model.CaptureMetadataFromFeature(feature),
		}
		id := feature.PropertyString(joinProperty)
		if result, ok := scoresByID[id]; ok && id != "" {
			scored.GreenView = result
			matchedIDs[id] = true
			report.MatchedPoints++
		} else {
			report.UnmatchedPoints++
		}
		matches = append(matches, scored)
	}
	report.DroppedScores += len(scoresByID) - len(matchedIDs)

	return matches, report
}

// JoinScores left-joins computed scores onto point features by the given
// join property and renders the matches as a new feature collection in the
// original point order.
func JoinScores(context util.LogContext, pointFC *geojson.FeatureCollection, results []*model.GreenViewResult, joinProperty string) (*geojson.FeatureCollection, JoinReport, error) {
	matches, report := MatchScores(context, pointFC, results, joinProperty)

	creators := make([]model.GeoJSONFeatureCreator, len(matches))
	for i, match := range matches {
		creators[i] = match
	}

	collection, err := model.MultiResult{FeatureCreators: creators}.GeoJSONFeatureCollection()
	if err != nil {
		return nil, report, err
	}
	return collection, report, nil
}
