package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"

	_ "github.com/chassiskit/chassisd/internal/logsetup"
	"github.com/chassiskit/chassisd/internal/modulectl"
	"github.com/chassiskit/chassisd/internal/version"
)

func main() {
	versionFlag := pflag.Bool("version", false, "Show version and exit")

	cfg := modulectl.NewConfig()
	cfg.AddFlags(pflag.CommandLine)
	pflag.Parse()

	if *versionFlag {
		version.ShowVersion()
		os.Exit(0)
	}

	if err := cfg.LoadConfig(pflag.CommandLine); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	command := "show"
	if args := pflag.Args(); len(args) > 0 {
		command = args[0]
	}

	app, err := modulectl.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create modules: %v", err)
	}
	defer app.Close() //nolint:errcheck

	switch command {
	case "show":
		err = app.Show()
	case "watch":
		err = app.Watch(cfg.Timeout)
	default:
		log.Fatalf("Unknown command: %s (expected show or watch)", command)
	}
	if err != nil {
		log.Fatalf("Command %s failed: %v", command, err)
	}
}
