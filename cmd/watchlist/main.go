package main

import (
	"flag"
	"fmt"
	"os"
	"watchlist/internal/di"
	"watchlist/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stderr")
	flag.Parse()

	_, cleanup, err := di.InitApp(flags)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchlist: %s\n", err)
		os.Exit(1)
	}
}
