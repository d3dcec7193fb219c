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
	"os"
	"path/filepath"
	"strings"

	"github.com/pyneet/street-view-green-view/model"
)

var recognizedExtensions = map[string]model.ImageFormat{
	".jpeg": model.JPEG,
	".jpg":  model.JPEG,
	".png":  model.PNG,
	".gif":  model.GIF,
	".tif":  model.TIFF,
	".tiff": model.TIFF,
	".bmp":  model.BMP,
	".webp": model.WebP,
}

// IDDeriver maps an image filename to the identifier used to join its score
// onto point features
type IDDeriver func(filename string) string

// DefaultImageID strips the final extension from a filename, whatever its
// length; extensionless names pass through unchanged
func DefaultImageID(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// FormatForFilename returns the raster format matching a filename's
// extension, if it is recognized
func FormatForFilename(filename string) (model.ImageFormat, bool) {
	format, ok := recognizedExtensions[strings.ToLower(filepath.Ext(filename))]
	return format, ok
}

// IsImageFilename reports whether a filename carries a recognized raster extension
func IsImageFilename(filename string) bool {
	_, ok := FormatForFilename(filename)
	return ok
}

// ValidateImageDirectory confirms the directory exists and holds at least one
// recognized image. Failures here abort a run before any scoring starts.
func ValidateImageDirectory(imageDirectory string) error {
	info, err := os.Stat(imageDirectory)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("Image directory could not be found: %s", imageDirectory)
	}

	images, err := ListImages(imageDirectory)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("Image directory does not contain any images: %s", imageDirectory)
	}
	return nil
}

// ListImages enumerates the recognized image filenames in a directory in
// lexical order, ignoring subdirectories and unrecognized entries
func ListImages(imageDirectory string) ([]string, error) {
	entries, err := os.ReadDir(imageDirectory)
	if err != nil {
		return nil, fmt.Errorf("Image directory could not be read: %v", err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImageFilename(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	return images, nil
}
