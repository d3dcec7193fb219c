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
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

func splitTestImage(width, height int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

func encodeTestPNG(t *testing.T, img image.Image) *bytes.Reader {
	buffer := &bytes.Buffer{}
	assert.Nil(t, png.Encode(buffer, img))
	return bytes.NewReader(buffer.Bytes())
}

func assertMaskPixel(t *testing.T, img image.Image, x int, y int, vegetation bool) {
	r, _, _, _ := img.At(x, y).RGBA()
	if vegetation {
		assert.Equal(t, uint32(0xffff), r, "expected vegetation at (%d,%d)", x, y)
	} else {
		assert.Equal(t, uint32(0), r, "expected background at (%d,%d)", x, y)
	}
}

// Actual tests

func TestScoreHandler(t *testing.T) {
	// Mock
	body := encodeTestPNG(t, solidTestImage(64, 64, testGreen))
	request, err := http.NewRequest("POST", "/gvi?filename=green_pano.jpeg", body)
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewScoreHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusOK, writer.Code)
	parsed, err := geojson.Parse(writer.Body.Bytes())
	assert.Nil(t, err)
	feature, ok := parsed.(*geojson.Feature)
	assert.True(t, ok, "response should parse as a geojson feature")
	assert.Equal(t, "green_pano", feature.IDStr())
	assert.Equal(t, "green_pano.jpeg", feature.PropertyString("filename"))
	assert.Equal(t, 100.0, feature.PropertyFloat("gvi_score"))
	assert.Equal(t, 4096.0, feature.PropertyFloat("total_pixels"))
	assert.Equal(t, true, feature.Properties["uniform_index"])
}

func TestScoreHandler_DefaultFilename(t *testing.T) {
	// Mock
	body := encodeTestPNG(t, solidTestImage(8, 8, testRed))
	request, err := http.NewRequest("POST", "/gvi", body)
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewScoreHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusOK, writer.Code)
	parsed, err := geojson.Parse(writer.Body.Bytes())
	assert.Nil(t, err)
	feature := parsed.(*geojson.Feature)
	assert.Equal(t, "upload", feature.PropertyString("filename"))
	assert.Equal(t, 0.0, feature.PropertyFloat("gvi_score"))
}

func TestScoreHandler_BadUpload(t *testing.T) {
	// Mock
	request, err := http.NewRequest("POST", "/gvi", strings.NewReader("this is not an image"))
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewScoreHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusBadRequest, writer.Code)
	assert.Contains(t, writer.Body.String(), "Could not decode uploaded image")
}

func TestMaskHandler(t *testing.T) {
	// Mock
	body := encodeTestPNG(t, splitTestImage(100, 50, testGreen, testRed))
	request, err := http.NewRequest("POST", "/gvi/mask", body)
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewMaskHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusOK, writer.Code)
	assert.Equal(t, "image/png", writer.Header().Get("Content-Type"))
	mask, err := png.Decode(writer.Body)
	assert.Nil(t, err)
	assert.Equal(t, 100, mask.Bounds().Dx())
	assert.Equal(t, 50, mask.Bounds().Dy())
	assertMaskPixel(t, mask, 10, 25, true)
	assertMaskPixel(t, mask, 90, 25, false)
}

func TestMaskHandler_DownscalesLargePreviews(t *testing.T) {
	// Mock
	body := encodeTestPNG(t, splitTestImage(1200, 600, testGreen, testRed))
	request, err := http.NewRequest("POST", "/gvi/mask", body)
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewMaskHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusOK, writer.Code)
	mask, err := png.Decode(writer.Body)
	assert.Nil(t, err)
	assert.Equal(t, 512, mask.Bounds().Dx())
	assert.Equal(t, 256, mask.Bounds().Dy())
	assertMaskPixel(t, mask, 10, 128, true)
	assertMaskPixel(t, mask, 500, 128, false)
}

func TestMaskHandler_BadUpload(t *testing.T) {
	// Mock
	request, err := http.NewRequest("POST", "/gvi/mask", strings.NewReader("garbage"))
	assert.Nil(t, err)
	writer := httptest.NewRecorder()

	// Tested code
	NewMaskHandler().ServeHTTP(writer, request)

	// Asserts
	assert.Equal(t, http.StatusBadRequest, writer.Code)
}
