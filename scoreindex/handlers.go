package scoreindex

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pyneet/street-view-green-view/scoreindex/db"
	"github.com/pyneet/street-view-green-view/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /scores/discover
// @Title scoreIndexDiscoverHandler
// @Description discovers scored points from the green view index
// @Accept  plain
// @Param   bbox            query   string  false        "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   minScore        query   string  false        "The minimum green view score (0-100)"
// @Param   maxScore        query   string  false        "The maximum green view score (0-100)"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /scores/discover [get]
type DiscoverHandler struct {
	Context Context
}

// NewDiscoverHandler creates a new handler using a database connection
// from the given provider
func NewDiscoverHandler(connectionProvider db.ConnectionProvider) (*DiscoverHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &DiscoverHandler{
		Context: Context{
			DB: database,
		},
	}, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	var bbox geojson.BoundingBox
	if r.FormValue("bbox") != "" {
		if bbox, err = geojson.NewBoundingBox(r.FormValue("bbox")); err != nil {
			message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	minScore := float64(0)
	if r.FormValue("minScore") != "" {
		if minScore, err = strconv.ParseFloat(r.FormValue("minScore"), 64); err != nil {
			message := fmt.Sprintf("Minimum score value of %v is invalid.", r.FormValue("minScore"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	maxScore := float64(100)
	if r.FormValue("maxScore") != "" {
		if maxScore, err = strconv.ParseFloat(r.FormValue("maxScore"), 64); err != nil {
			message := fmt.Sprintf("Maximum score value of %v is invalid.", r.FormValue("maxScore"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}

	multiResult, err := discoverScores(tx, h.Context, bbox, minScore, maxScore)

	if err != nil {
		message := fmt.Sprintf("Error searching for scored points: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /scores/{id}
// @Title scoreIndexMetadataHandler
// @Description looks up the indexed score of one image by its identifier
// @Accept  plain
// @Param   id            path   string  false        "The image identifier of the requested point"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /scores/{id} [get]
type MetadataHandler struct {
	Context Context
}

// NewMetadataHandler creates a new handler using a database connection
// from the given provider
func NewMetadataHandler(connectionProvider db.ConnectionProvider) (*MetadataHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &MetadataHandler{
		Context: Context{
			DB: database,
		},
	}, nil
}

func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	imageID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No image ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	metadata, err := getScoreMetadata(tx, h.Context, imageID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Score not found: %s", imageID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for score: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := metadata.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting score to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	w.Write([]byte(feature.String()))
}
