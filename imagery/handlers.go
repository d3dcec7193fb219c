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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pyneet/street-view-green-view/gvi"
	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/util"
)

const maxUploadBytes = 32 << 20

const maskPreviewSize = 512

// ScoreHandler is a handler for /gvi
// @Title gviScoreHandler
// @Description scores one uploaded image for green visibility
// @Accept  image/*
// @Param   filename        query   string  false        "Original filename, used to derive the image identifier"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /gvi [post]
type ScoreHandler struct {
	Context Context
}

// NewScoreHandler creates a new handler
func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{Context: Context{}}
}

// ServeHTTP implements the http.Handler interface for the ScoreHandler type
func (h ScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	img, filename, ok := decodeUpload(w, r, &h.Context)
	if !ok {
		return
	}

	scored, err := gvi.ScoreImage(img)
	if err != nil {
		message := fmt.Sprintf("Could not score image: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	result := model.GreenViewResult{
		Filename:         filename,
		ImageID:          DefaultImageID(filename),
		Score:            scored.Score,
		Threshold:        scored.Threshold,
		VegetationPixels: scored.VegetationPixels,
		TotalPixels:      scored.TotalPixels,
		UniformIndex:     scored.UniformIndex,
		ScoredAt:         time.Now().UTC(),
	}

	feature, err := result.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting score to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(feature.String()))
}

// MaskHandler is a handler for /gvi/mask
// @Title gviMaskHandler
// @Description renders the binary vegetation mask of one uploaded image as a PNG preview
// @Accept  image/*
// @Success 200 {object}  []byte
// @Failure 400 {object}  string
// @Router /gvi/mask [post]
type MaskHandler struct {
	Context Context
}

// NewMaskHandler creates a new handler
func NewMaskHandler() *MaskHandler {
	return &MaskHandler{Context: Context{}}
}

// ServeHTTP implements the http.Handler interface for the MaskHandler type
func (h MaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	img, _, ok := decodeUpload(w, r, &h.Context)
	if !ok {
		return
	}

	mask, err := gvi.VegetationMask(img)
	if err != nil {
		message := fmt.Sprintf("Could not compute vegetation mask: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	preview := imaging.Fit(mask, maskPreviewSize, maskPreviewSize, imaging.Lanczos)
	w.Header().Set("Content-Type", "image/png")
	if err = png.Encode(w, preview); err != nil {
		util.LogSimpleErr(&h.Context, "Failed to encode mask preview.", err)
	}
}

// decodeUpload reads and decodes an uploaded image, writing the error
// response itself when the upload is unusable
func decodeUpload(w http.ResponseWriter, r *http.Request, ctx *Context) (image.Image, string, bool) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "upload"
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		message := fmt.Sprintf("Could not read uploaded image: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, status)
		return nil, "", false
	}

	img, err := decode(bytes.NewReader(body), filename)
	if err != nil {
		message := fmt.Sprintf("Could not decode uploaded image: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, http.StatusBadRequest)
		return nil, "", false
	}
	return img, filename, true
}
