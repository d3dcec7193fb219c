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

package gvi

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pureGreen = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	pureRed   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	pureBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	pureWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func solidImage(width, height int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img
}

func splitImage(width, height int, left, right color.RGBA) *image.RGBA {
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

func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 3) % 256),
				G: uint8((x + y) % 256),
				B: uint8((y * 7) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestExcessGreen_PixelValues(t *testing.T) {
	// Mock
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, pureGreen)
	img.SetRGBA(1, 0, pureRed)
	img.SetRGBA(0, 1, pureWhite)
	img.SetRGBA(1, 1, pureBlack)

	// Tested code
	exg := ExcessGreen(img)

	// Asserts
	assert.Len(t, exg, 4)
	assert.InDelta(t, 2.0, exg[0], 1e-9)
	assert.InDelta(t, -1.0, exg[1], 1e-9)
	assert.InDelta(t, 0.0, exg[2], 1e-9)
	assert.InDelta(t, 0.0, exg[3], 1e-9)
}

func TestExcessGreen_CountsEveryPixel(t *testing.T) {
	// Tested code
	exg := ExcessGreen(gradientImage(37, 23))

	// Asserts
	assert.Len(t, exg, 37*23)
}

func TestScoreImage_AllBlack(t *testing.T) {
	// Tested code
	result, err := ScoreImage(solidImage(64, 64, pureBlack))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.True(t, result.UniformIndex)
	assert.Equal(t, 64*64, result.TotalPixels)
	assert.Equal(t, 0, result.VegetationPixels)
}

func TestScoreImage_AllGreen(t *testing.T) {
	// Tested code
	result, err := ScoreImage(solidImage(64, 64, pureGreen))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.UniformIndex)
	assert.Equal(t, 64*64, result.VegetationPixels)
}

func TestScoreImage_AllRed(t *testing.T) {
	// Tested code
	result, err := ScoreImage(solidImage(64, 64, pureRed))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.True(t, result.UniformIndex)
}

func TestScoreImage_HalfGreenHalfRed(t *testing.T) {
	// Tested code
	result, err := ScoreImage(splitImage(64, 64, pureGreen, pureRed))

	// Asserts
	assert.Nil(t, err)
	assert.InDelta(t, 50.0, result.Score, 1.0)
	assert.False(t, result.UniformIndex)
	assert.True(t, result.Threshold > -1.0 && result.Threshold < 2.0)
}

func TestScoreImage_Idempotent(t *testing.T) {
	// Mock
	img := gradientImage(48, 48)

	// Tested code
	first, err1 := ScoreImage(img)
	second, err2 := ScoreImage(img)

	// Asserts
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Threshold, second.Threshold)
	assert.Equal(t, first.VegetationPixels, second.VegetationPixels)
}

func TestScoreImage_ScoreBounds(t *testing.T) {
	// Mock
	inputs := []image.Image{
		gradientImage(31, 17),
		splitImage(10, 10, pureWhite, pureGreen),
		splitImage(100, 2, pureBlack, pureWhite),
		solidImage(1, 1, pureGreen),
	}

	// Tested code and asserts
	for _, img := range inputs {
		result, err := ScoreImage(img)
		assert.Nil(t, err)
		assert.True(t, result.Score >= 0.0 && result.Score <= 100.0, "score out of bounds: %f", result.Score)
		assert.True(t, result.VegetationPixels <= result.TotalPixels)
	}
}

func TestScoreImage_UniformIsDeterministic(t *testing.T) {
	// Mock
	img := solidImage(16, 16, color.RGBA{R: 120, G: 33, B: 7, A: 255})

	// Tested code
	first, err1 := ScoreImage(img)
	second, err2 := ScoreImage(img)

	// Asserts
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.True(t, first.UniformIndex)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, 0.0, first.Score)
}

func TestScoreImage_EmptyImage(t *testing.T) {
	// Tested code
	result, err := ScoreImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))

	// Asserts
	assert.Nil(t, result)
	assert.Equal(t, ErrEmptyImage, err)
}

func TestVegetationMask_MatchesClassification(t *testing.T) {
	// Mock
	img := splitImage(64, 64, pureGreen, pureRed)

	// Tested code
	mask, err := VegetationMask(img)
	result, scoreErr := ScoreImage(img)

	// Asserts
	assert.Nil(t, err)
	assert.Nil(t, scoreErr)
	assert.Equal(t, img.Bounds(), mask.Bounds())
	white := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if mask.GrayAt(x, y).Y == 255 {
				white++
				assert.True(t, x < 32, "vegetation pixel on the red side at (%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, result.VegetationPixels, white)
}

func TestVegetationMask_EmptyImage(t *testing.T) {
	// Tested code
	mask, err := VegetationMask(image.NewRGBA(image.Rect(0, 0, 0, 0)))

	// Asserts
	assert.Nil(t, mask)
	assert.Equal(t, ErrEmptyImage, err)
}
