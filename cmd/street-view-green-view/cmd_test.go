// Copyright 2018, RadiantBlue Technologies, Inc.
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

package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pyneet/street-view-green-view/util"
	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

const testPointsGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-71.05, 42.36]}, "properties": {"image_id": "a"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-71.06, 42.37]}, "properties": {"image_id": "b"}}
	]
}`

func writeTestJPEG(t *testing.T, path string, fill color.NRGBA) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	file, err := os.Create(path)
	assert.Nil(t, err)
	defer file.Close()
	assert.Nil(t, jpeg.Encode(file, img, nil))
}

func TestMain(m *testing.M) {
	os.Unsetenv(connectionStringEnv)
	os.Unsetenv(vcapServicesEnv)
	code := m.Run()
	os.Exit(code)
}

func TestServe_CallsLaunchServer(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_BaseHealthCheckEndpoint(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		responseBody, _ := io.ReadAll(response.Result().Body)
		success <- (string(responseBody) == "OK")
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case healthy := <-success:
		assert.True(t, healthy, "Health check endpoint did not respond with OK")
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestCreateRouter_ScoringRoutesWithoutDatabase(t *testing.T) {
	// Tested code
	router, err := createRouter(&(util.BasicLogContext{}))

	// Asserts
	assert.Nil(t, err)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest("POST", "/gvi", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, response.Code, "Scoring route should be registered even without a database")

	response = httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest("GET", "/scores/discover", strings.NewReader("")))
	assert.Equal(t, http.StatusNotFound, response.Code, "Score index routes should not be registered without a database")
}

func TestProcess_ScoresAndJoinsPoints(t *testing.T) {
	// Mock
	workDir := t.TempDir()
	imageDir := filepath.Join(workDir, "images")
	assert.Nil(t, os.Mkdir(imageDir, 0755))
	writeTestJPEG(t, filepath.Join(imageDir, "a.jpeg"), color.NRGBA{R: 20, G: 240, B: 30, A: 255})
	writeTestJPEG(t, filepath.Join(imageDir, "b.jpeg"), color.NRGBA{R: 240, G: 20, B: 30, A: 255})

	pointsPath := filepath.Join(workDir, "points.geojson")
	assert.Nil(t, os.WriteFile(pointsPath, []byte(testPointsGeoJSON), 0644))

	outputPath := filepath.Join(workDir, "scored.geojson")

	// Tested code
	err := createCliApp().Run([]string{"street-view-green-view", "process", imageDir, pointsPath, outputPath})

	// Asserts
	assert.Nil(t, err)

	data, err := os.ReadFile(outputPath)
	assert.Nil(t, err)
	parsed, err := geojson.Parse(data)
	assert.Nil(t, err)
	scored, ok := parsed.(*geojson.FeatureCollection)
	assert.True(t, ok)
	assert.Len(t, scored.Features, 2)

	scores := map[string]float64{}
	for _, feature := range scored.Features {
		scores[feature.PropertyString("image_id")] = feature.PropertyFloat("gvi_score")
	}
	assert.Equal(t, float64(100), scores["a"])
	assert.Equal(t, float64(0), scores["b"])
}

func TestGetTimerDuration(t *testing.T) {
	os.Unsetenv(ingestFrequencyEnv)
	assert.Equal(t, defaultIngestFrequency, getTimerDuration())

	os.Setenv(ingestFrequencyEnv, "2h")
	assert.Equal(t, 2*time.Hour, getTimerDuration())

	os.Setenv(ingestFrequencyEnv, "30s")
	assert.Equal(t, defaultIngestFrequency, getTimerDuration())
	os.Unsetenv(ingestFrequencyEnv)
}
