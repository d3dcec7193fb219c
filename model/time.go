package model

import (
	"fmt"
	"strconv"
	"time"
)

// Crowdsourced imagery platforms disagree on how to encode capture times:
// some emit RFC 3339 strings with or without offsets, others raw epoch
// milliseconds. Thus, we need lenient "multi-format" parsing functionality,
// implemented here.

var captureTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseCaptureTime is a drop-in replacement for time.Parse, but matching
// against multiple possible capture time encodings, including epoch
// milliseconds
func ParseCaptureTime(captureTime string) (time.Time, error) {
	for _, layout := range captureTimeLayouts {
		if output, err := time.Parse(layout, captureTime); err == nil {
			return output, nil
		}
	}
	if millis, err := strconv.ParseInt(captureTime, 10, 64); err == nil {
		return time.Unix(millis/1000, (millis%1000)*int64(time.Millisecond)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("Capture time could not be parsed by any expected format: `%s`", captureTime)
}
