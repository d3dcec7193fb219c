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
	"errors"
	"image"
	"image/color"
)

// Result holds the Green View Index of one image along with the statistics
// behind it
type Result struct {
	Score            float64
	Threshold        float64
	VegetationPixels int
	TotalPixels      int
	UniformIndex     bool
}

// ScoreImage computes the Green View Index of one image: the percentage of
// pixels whose excess green index strictly exceeds an Otsu threshold derived
// from the image's own index distribution. Pure function of the pixel data.
func ScoreImage(img image.Image) (*Result, error) {
	exg := ExcessGreen(img)
	if len(exg) == 0 {
		return nil, ErrEmptyImage
	}

	threshold, uniform, err := indexThreshold(exg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Threshold:    threshold,
		TotalPixels:  len(exg),
		UniformIndex: uniform,
	}
	for _, v := range exg {
		if v > threshold {
			result.VegetationPixels++
		}
	}
	result.Score = 100 * float64(result.VegetationPixels) / float64(result.TotalPixels)
	return result, nil
}

// VegetationMask renders the binary classification behind the score: white
// where the excess green index exceeds the threshold, black elsewhere.
func VegetationMask(img image.Image) (*image.Gray, error) {
	exg := ExcessGreen(img)
	if len(exg) == 0 {
		return nil, ErrEmptyImage
	}

	threshold, _, err := indexThreshold(exg)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if exg[i] > threshold {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
			i++
		}
	}
	return mask, nil
}

// indexThreshold selects the classification threshold for an index
// distribution. A uniform distribution has no split; the zero cutoff keeps
// the outcome deterministic, with the uniform flag reported to the caller.
func indexThreshold(exg []float64) (float64, bool, error) {
	threshold, err := OtsuThreshold(exg, HistogramBins)
	if err == nil {
		return threshold, false, nil
	}
	if errors.Is(err, ErrUniformIndex) {
		return 0, true, nil
	}
	return 0, false, err
}
