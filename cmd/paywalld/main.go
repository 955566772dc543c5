package main

import (
	"flag"
	"fmt"
	"os"
	"paywall/internal/di"
	"paywall/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "paywalld: %s\n", err)
		os.Exit(1)
	}
}
