package main

import (
	"fmt"
	"log"

	"github.com/pyneet/street-view-green-view/imagery"
	"github.com/pyneet/street-view-green-view/model"
	"github.com/pyneet/street-view-green-view/points"
	"github.com/pyneet/street-view-green-view/util"
	cli "gopkg.in/urfave/cli.v1"
)

//processAction scores a directory of images and joins the scores onto a point dataset.
func processAction(c *cli.Context) {
	logContext := &(util.BasicLogContext{})

	args := c.Args()
	if len(args) != 3 {
		log.Fatal("Usage: street-view-green-view process <image directory> <points file> <output file>")
	}
	imageDirectory := args[0]
	pointsPath := args[1]
	outputPath := args[2]

	pointFC, err := points.LoadPointFile(logContext, pointsPath)
	if err != nil {
		log.Fatalf("Could not load the point dataset: %v", err)
	}
	if err = points.ValidatePoints(pointFC); err != nil {
		log.Fatalf("Invalid point dataset: %v", err)
	}

	outcomes, err := imagery.ScoreDirectory(logContext, imageDirectory, util.GetWorkerCount(), nil)
	if err != nil {
		log.Fatalf("Could not score the image directory: %v", err)
	}

	results := []*model.GreenViewResult{}
	failedCount := 0
	for outcome := range outcomes {
		if outcome.Err != nil {
			util.LogAlert(logContext, fmt.Sprintf("Skipping %s: %v", outcome.Filename, outcome.Err))
			failedCount++
			continue
		}
		util.LogInfo(logContext, fmt.Sprintf("%s\t%v", outcome.Filename, outcome.Result.Score))
		results = append(results, outcome.Result)
	}

	scored, report, err := points.JoinScores(logContext, pointFC, results, util.GetJoinProperty())
	if err != nil {
		log.Fatalf("Could not join scores onto the point dataset: %v", err)
	}
	util.LogInfo(logContext, fmt.Sprintf("%v; %d images failed to score", report, failedCount))

	if err = points.WriteCollectionFile(outputPath, scored); err != nil {
		log.Fatalf("Could not write the scored dataset: %v", err)
	}
	util.LogInfo(logContext, fmt.Sprintf("Wrote scored point dataset to %s", outputPath))
}
