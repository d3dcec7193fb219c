package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

//versionAction prints the CLI version number.
func versionAction(*cli.Context) {
	fmt.Printf("street-view-green-view version %s\n", version)
}
