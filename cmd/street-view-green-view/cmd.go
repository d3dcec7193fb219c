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
	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the street-view-green-view webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "process",
		Aliases: []string{"p"},
		Usage:   "Score a directory of images and join the scores onto a point dataset",
		Action:  processAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the green view CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Run scheduled ingest jobs, updating the database with freshly scored imagery",
		Action:  ingestScheduleAction,
	},
	cli.Command{
		Name:   "ingest_once",
		Usage:  "Run a single ingest job and exit",
		Action: ingestOnceAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "street-view-green-view"
	app.Usage = "Launch a street-view-green-view process"
	app.Commands = commands
	return
}
