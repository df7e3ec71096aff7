package main

import (
	"fmt"
	"os"

	"github.com/mkettu/runsync/cmd"
	"github.com/mkettu/runsync/internal/conf"
	"github.com/mkettu/runsync/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logCloser := logging.Init(settings)
	defer logCloser.Close()

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		os.Exit(1)
	}
}
