package db

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pyneet/street-view-green-view/imagery"
	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/points"
	"github.com/pyneet/street-view-green-view/util"
	"github.com/venicegeo/geojson-go/geojson"
)

//IngestConfig holds the settings for recurring score ingest jobs.
type IngestConfig struct {
	ImageDirectory string
	PointsURL      string
	PointsAreGzip  bool
	JoinProperty   string
	WorkerCount    int
}

//Importer manages the state for an ingest job.
type Importer struct {
	config         IngestConfig
	dbConnProvider ConnectionProvider
	statusChan     chan chan string
}

//NewImporter initializes a new importer.
func NewImporter(config IngestConfig, dbConnProvider ConnectionProvider) *Importer {
	return &Importer{
		config:         config,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

//ImportWhile runs the recurring ingest loop. It blocks until messageChan is
//closed, starting a job whenever maxTimeBetweenJobs elapses or a begin
//message arrives, and completes any in-progress job before exiting.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	log.Println("Job loop started with frequency", maxTimeBetweenJobs)

	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	var startJob bool
	for {
		startJob = false

		//Wait for a start trigger. Status is reported cooperatively, so
		//answer any requests that arrive while we wait.
		select {
		case <-scheduleTimer.C:
			log.Println("Maximum time between jobs elapsed.")
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginIngestJobMessage:
				log.Println("User requested job start.")
				startJob = true
			default:
				//Ignore everything else; only begin messages matter here.
			}
		case respChan := <-imp.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus):
			default:
				//The requester went away. Drop it.
			}
		}

		if startJob {
			log.Println("Starting job.")
			previousStatus = imp.Import(messageChan)

			//Drain the timer without tracking whether it already fired,
			//then schedule the next run.
			scheduleTimer.Stop()
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C:
				default:
					break TimerDrainLoop
				}
			}

			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

//GetStatus is a thread safe way to get information about the import operation.
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer. The job loop will not wait to send.
	imp.statusChan <- responseChan
	return <-responseChan
}

//Import performs one full read-score-upsert cycle.
func (imp *Importer) Import(messageChan <-chan string) string {
	var mainReader io.Reader
	sourceReader, err := openReader(imp.config.PointsURL)
	if err != nil {
		return ingestFailure("opening the point dataset", err)
	}
	defer sourceReader.Close()
	mainReader = sourceReader

	if imp.config.PointsAreGzip {
		archiveReader, zipErr := gzip.NewReader(mainReader)
		if zipErr != nil {
			return ingestFailure("opening gzip archive", zipErr)
		}
		defer archiveReader.Close()
		mainReader = archiveReader
	}

	//The database connection is opened right before the ingest, and closed
	//immediately after.
	database, err := imp.dbConnProvider(&util.BasicLogContext{})
	if err != nil {
		return ingestFailure("connecting to the database", err)
	}
	defer database.Close()

	return imp.Ingest(mainReader, database, messageChan)
}

//Ingest scores the configured image directory, matches the scores to the
//point dataset read from pointsReader, and upserts one row per matched
//point. Abort messages on messageChan stop the job between row writes.
func (imp *Importer) Ingest(pointsReader io.Reader, database *sql.DB, messageChan <-chan string) string {
	logContext := &util.BasicLogContext{}

	body, err := io.ReadAll(pointsReader)
	if err != nil {
		return ingestFailure("reading the point dataset", err)
	}
	pointFC, err := points.ReadPointCollection(logContext, body)
	if err != nil {
		return ingestFailure("parsing the point dataset", err)
	}
	if err = points.ValidatePoints(pointFC); err != nil {
		return ingestFailure("validating the point dataset", err)
	}

	outcomes, err := imagery.ScoreDirectory(logContext, imp.config.ImageDirectory, imp.config.WorkerCount, nil)
	if err != nil {
		return ingestFailure("scoring the image directory", err)
	}

	results := []*model.GreenViewResult{}
	failed := 0
	for outcome := range outcomes {
		if outcome.Err != nil {
			log.Println("Skipping", outcome.Filename, "-", outcome.Err)
			failed++
			continue
		}
		results = append(results, outcome.Result)
	}

	matches, report := points.MatchScores(logContext, pointFC, results, imp.config.JoinProperty)

	upserted := 0
	for _, match := range matches {
		if match.GreenView == nil {
			continue
		}

		//Honor abort requests, and answer status requests, between rows.
		select {
		case msg, ok := <-messageChan:
			if !ok || msg == AbortIngestJobMessage {
				log.Println("Ingest job aborted.")
				return fmt.Sprintf("\tAborted %v after %d rows upserted.",
					time.Now().Format("Mon Jan _2 15:04:05 2006"), upserted)
			}
		case respChan := <-imp.statusChan:
			select {
			case respChan <- fmt.Sprintf("Status: Ingest running, %d rows upserted so far", upserted):
			default:
			}
		default:
		}

		record, err := recordFromScoredPoint(match)
		if err != nil {
			log.Println("Skipping", match.GreenView.Filename, "-", err)
			continue
		}
		if err = UpsertScore(database, *record); err != nil {
			return ingestFailure("upserting a scored point", err)
		}
		upserted++
	}

	return fmt.Sprintf("\tCompleted %v\n\t%v\n\t%d images failed, %d rows upserted",
		time.Now().Format("Mon Jan _2 15:04:05 2006"), report, failed, upserted)
}

func recordFromScoredPoint(scored model.ScoredPointResult) (*GreenViewPointRecord, error) {
	if scored.Point == nil || scored.GreenView == nil {
		return nil, errors.New("a scored point row needs both a point and a score")
	}
	point, ok := scored.Point.Geometry.(*geojson.Point)
	if !ok || point == nil {
		return nil, errors.New("matched feature has no point geometry")
	}

	record := GreenViewPointRecord{
		ImageID:          scored.GreenView.ImageID,
		Filename:         scored.GreenView.Filename,
		Score:            scored.GreenView.Score,
		Threshold:        scored.GreenView.Threshold,
		VegetationPixels: scored.GreenView.VegetationPixels,
		TotalPixels:      scored.GreenView.TotalPixels,
		UniformIndex:     scored.GreenView.UniformIndex,
		ScoredAt:         scored.GreenView.ScoredAt,
		Location:         point,
	}
	if scored.CaptureMetadata != nil {
		if !scored.CapturedAt.IsZero() {
			capturedAt := scored.CapturedAt
			record.CapturedAt = &capturedAt
		}
		record.SequenceID = scored.SequenceID
	}

	return &record, nil
}

func ingestFailure(during string, err error) string {
	message := fmt.Sprintf("Ingest failed while %s: %v", during, err)
	log.Println(message)
	return "\t" + message
}

func openReader(pointsURL string) (io.ReadCloser, error) {
	//If this looks like a url then try to download it.
	if strings.HasPrefix(pointsURL, "http://") || strings.HasPrefix(pointsURL, "https://") {
		log.Println("Requesting url:", pointsURL)
		response, netErr := util.HTTPClient().Get(pointsURL)
		if netErr != nil {
			return nil, netErr
		}
		defer response.Body.Close()

		//Download the whole body so we don't need to keep the connection open.
		bodyData, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(bytes.NewBuffer(bodyData)), nil
	}

	//Treat this as a file.
	cleanPath := filepath.Clean(pointsURL)
	log.Println("Opening file", cleanPath)
	return os.Open(cleanPath)
}
