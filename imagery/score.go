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

package imagery

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pyneet/street-view-green-view/gvi"
	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/util"
)

// ScoreFile decodes and scores one image file. A nil deriver falls back to
// DefaultImageID.
func ScoreFile(path string, deriveID IDDeriver) (*model.GreenViewResult, error) {
	if deriveID == nil {
		deriveID = DefaultImageID
	}

	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(path)
	scored, err := gvi.ScoreImage(img)
	if err != nil {
		return nil, DecodeError{Filename: filename, Err: err}
	}

	return &model.GreenViewResult{
		Filename:         filename,
		ImageID:          deriveID(filename),
		Score:            scored.Score,
		Threshold:        scored.Threshold,
		VegetationPixels: scored.VegetationPixels,
		TotalPixels:      scored.TotalPixels,
		UniformIndex:     scored.UniformIndex,
		ScoredAt:         time.Now().UTC(),
	}, nil
}

// Outcome is one lazily produced batch result: either the score of a single
// image or its isolated failure.
type Outcome struct {
	Filename string
	Result   *model.GreenViewResult
	Err      error
}

// ScoreDirectory scores every recognized image in a directory concurrently,
// yielding outcomes on the returned channel as they complete, in no
// guaranteed order. Per-image failures are isolated into their outcomes;
// only configuration problems fail the call itself.
func ScoreDirectory(ctx util.LogContext, imageDirectory string, workerCount int, deriveID IDDeriver) (<-chan Outcome, error) {
	if err := ValidateImageDirectory(imageDirectory); err != nil {
		return nil, err
	}
	filenames, err := ListImages(imageDirectory)
	if err != nil {
		return nil, err
	}

	if workerCount < 1 {
		workerCount = 1
	}
	if deriveID == nil {
		deriveID = DefaultImageID
	}

	util.LogAudit(ctx, util.LogAuditInput{
		Actor:    ctx.AppName(),
		Action:   "batch scoring started",
		Actee:    imageDirectory,
		Message:  fmt.Sprintf("Scoring %d images with %d workers", len(filenames), workerCount),
		Severity: util.INFO,
	})

	filesQueue := make(chan string, workerCount)
	outcomesQueue := make(chan Outcome, workerCount)
	workerCompleteChan := make(chan bool, 1)

	for i := 0; i < workerCount; i++ {
		go scoreWorker(imageDirectory, deriveID, filesQueue, outcomesQueue, workerCompleteChan)
	}

	go func() {
		workersDone := 0
		for workersDone < workerCount {
			<-workerCompleteChan
			workersDone++
		}
		close(outcomesQueue)
		util.LogAudit(ctx, util.LogAuditInput{
			Actor:    ctx.AppName(),
			Action:   "batch scoring finished",
			Actee:    imageDirectory,
			Message:  fmt.Sprintf("Scored %d images", len(filenames)),
			Severity: util.INFO,
		})
	}()

	go func() {
		for _, filename := range filenames {
			filesQueue <- filename
		}
		close(filesQueue)
	}()

	return outcomesQueue, nil
}

func scoreWorker(imageDirectory string, deriveID IDDeriver, filesChan chan string, outcomesChan chan Outcome, completeChan chan bool) {
	for filename := range filesChan {
		result, err := ScoreFile(filepath.Join(imageDirectory, filename), deriveID)
		outcomesChan <- Outcome{Filename: filename, Result: result, Err: err}
	}
	completeChan <- true
}
