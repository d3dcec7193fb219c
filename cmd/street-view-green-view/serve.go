// Copyright 2018, RadiantBlue Technologies, Inc.
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

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/pyneet/street-view-green-view/imagery"
	"github.com/pyneet/street-view-green-view/scoreindex"
	"github.com/pyneet/street-view-green-view/util"
	cli "gopkg.in/urfave/cli.v1"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/gvi", imagery.NewScoreHandler())
	router.Handle("/gvi/mask", imagery.NewMaskHandler())

	if !databaseConfigured() {
		util.LogAlert(ctx, "No database configured, not registering score index routes")
		return router, nil
	}

	if scoreDiscoverHandler, err := scoreindex.NewDiscoverHandler(getDbConnectionFunc); err == nil {
		router.Handle("/scores/discover", scoreDiscoverHandler)
	} else {
		return nil, err
	}

	if scoreMetadataHandler, err := scoreindex.NewMetadataHandler(getDbConnectionFunc); err == nil {
		router.Handle("/scores/{id}", scoreMetadataHandler)
	} else {
		return nil, err
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
