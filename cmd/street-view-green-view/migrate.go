package main

import (
	"log"

	"github.com/pressly/goose"
	cli "gopkg.in/urfave/cli.v1"

	_ "github.com/pyneet/street-view-green-view/migrations"
	"github.com/pyneet/street-view-green-view/util"
)

func migrateDatabaseAction(*cli.Context) {
	database, err := getDbConnectionFunc(&util.BasicLogContext{})
	if err != nil {
		log.Fatal("Could not open database connection.")
	}
	defer database.Close()

	if err = goose.Run("up", database, "."); err != nil {
		log.Fatal(err)
	}
}
