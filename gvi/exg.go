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
	"image/draw"
)

// ExcessGreen computes the per-pixel excess green index 2g - r - b over
// channel intensities normalized to [0, 1]. The result holds exactly one
// value per pixel, in row-major order.
func ExcessGreen(img image.Image) []float64 {
	bounds := img.Bounds()
	rgba := toRGBA(img)
	exg := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := rgba.PixOffset(x, y)
			r := float64(rgba.Pix[i]) / 255.0
			g := float64(rgba.Pix[i+1]) / 255.0
			b := float64(rgba.Pix[i+2]) / 255.0
			exg = append(exg, 2*g-r-b)
		}
	}
	return exg
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
