package db

import (
	"database/sql"
	"time"

	"github.com/pyneet/street-view-green-view/util"
	"github.com/venicegeo/geojson-go/geojson"
)

//ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

const (
	//BeginIngestJobMessage asks the job loop to start an ingest job now.
	BeginIngestJobMessage = "begin"
	//AbortIngestJobMessage asks a running ingest job to stop between row writes.
	AbortIngestJobMessage = "abort"
)

//GreenViewPointRecord is one row of the greenview_points index.
type GreenViewPointRecord struct {
	ImageID          string
	Filename         string
	Score            float64
	Threshold        float64
	VegetationPixels int
	TotalPixels      int
	UniformIndex     bool
	ScoredAt         time.Time
	CapturedAt       *time.Time
	SequenceID       string
	Location         *geojson.Point
}
