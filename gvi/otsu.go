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
	"math"

	"gonum.org/v1/gonum/floats"
)

// HistogramBins is the bin count used when thresholding an index distribution
const HistogramBins = 256

// ErrEmptyImage indicates an input with no pixels
var ErrEmptyImage = errors.New("image contains no pixels")

// ErrUniformIndex indicates an index distribution with a single distinct
// value, for which no threshold separates two classes
var ErrUniformIndex = errors.New("vegetation index is uniform across all pixels")

// OtsuThreshold computes the threshold maximizing between-class variance over
// a continuous value distribution, histogrammed into the given number of bins
// spanning [min, max]. The returned threshold is the center of the last bin
// of the lower class.
func OtsuThreshold(values []float64, bins int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyImage
	}
	if bins < 2 {
		return 0, errors.New("threshold histogram requires at least two bins")
	}

	low, high := floats.Min(values), floats.Max(values)
	if low == high {
		return 0, ErrUniformIndex
	}

	binWidth := (high - low) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		i := int((v - low) / binWidth)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = low + binWidth*(float64(i)+0.5)
	}

	total := float64(len(values))
	totalSum := 0.0
	for i, c := range counts {
		totalSum += c * centers[i]
	}

	bestVariance := math.Inf(-1)
	bestIndex := 0
	weight1, sum1 := 0.0, 0.0
	for i := 0; i < bins-1; i++ {
		weight1 += counts[i]
		sum1 += counts[i] * centers[i]
		weight2 := total - weight1
		if weight1 == 0 || weight2 == 0 {
			continue
		}
		mean1 := sum1 / weight1
		mean2 := (totalSum - sum1) / weight2
		meanDiff := mean1 - mean2
		variance := weight1 * weight2 * meanDiff * meanDiff
		if variance > bestVariance {
			bestVariance = variance
			bestIndex = i
		}
	}
	return centers[bestIndex], nil
}
