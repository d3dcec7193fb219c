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
	"image"
	"io"
	"os"
	"path/filepath"

	// decoders for the recognized raster formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pyneet/street-view-green-view/gvi"
)

// DecodeError indicates one image that could not be read or parsed. It
// carries the offending filename so batch callers can report and continue.
type DecodeError struct {
	Filename string
	Err      error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("could not decode image %s: %v", e.Filename, e.Err)
}

// Unwrap exposes the underlying failure
func (e DecodeError) Unwrap() error {
	return e.Err
}

// DecodeImage reads and decodes one raster file. Every failure mode,
// including a zero-dimension result, is reported as a DecodeError.
func DecodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, DecodeError{Filename: filepath.Base(path), Err: err}
	}
	defer file.Close()

	return decode(file, filepath.Base(path))
}

func decode(reader io.Reader, filename string) (image.Image, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, DecodeError{Filename: filename, Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, DecodeError{Filename: filename, Err: gvi.ErrEmptyImage}
	}
	return img, nil
}
