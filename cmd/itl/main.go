// Command itl is the ITL CLI: config -> logger -> engine, then either
// load and run a source file or hand control to the interactive REPL.
// The init sequence is the teacher's main.go shape (configuration, then
// logger, then the core subsystem), scoped down to what a language
// engine needs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/YouDevIt/itl/internal/config"
	"github.com/YouDevIt/itl/internal/engine"
	"github.com/YouDevIt/itl/internal/host"
	"github.com/YouDevIt/itl/internal/logger"
	"github.com/YouDevIt/itl/internal/repl"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := "itl.cfg"
	if err := config.Initialize(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "itl: error initializing configuration: %v\n", err)
		return 1
	}

	if err := logger.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "itl: error initializing logger: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger.Info(logger.AreaConfig, "itl started - configuration loaded from %s", configPath)

	console := host.NewConsole()
	eng := engine.New(console, engine.LimitsFromConfig())

	args := os.Args[1:]
	if len(args) > 0 {
		return runFile(eng, args[0])
	}
	repl.New(eng).Run()
	return 0
}

func runFile(eng *engine.Engine, path string) int {
	err := eng.LoadFile(path)
	switch {
	case errors.Is(err, engine.ErrSourceNotFound):
		fmt.Fprintf(os.Stderr, "itl: source not found: %s\n", path)
		return 1
	case errors.Is(err, engine.ErrSourceUnreadable):
		fmt.Fprintf(os.Stderr, "itl: cannot read source: %s\n", path)
		return 1
	case err != nil:
		fmt.Fprintf(os.Stderr, "itl: %v\n", err)
		return 1
	}
	eng.Run()
	return 0
}
