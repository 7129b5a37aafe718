package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds flags shared across subcommands.
type cliFlags struct {
	config      string
	output      string
	host        string
	port        int
	workers     int
	verbose     bool
	showVersion bool
}

// Flag defaults; a config file may override host, port and workers.
const (
	defaultHost = "localhost"
	defaultPort = 8080
)

// parseFlags parses command-line flags and returns the remaining
// positional arguments (subcommand plus scene files).
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("aframe", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "path to YAML config file")
	fs.StringVarP(&flags.output, "output", "o", "", "output file (render) or directory (snapshot)")
	fs.StringVar(&flags.host, "host", defaultHost, "host to bind (serve)")
	fs.IntVarP(&flags.port, "port", "p", defaultPort, "port to bind (serve)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "snapshot workers (0 = auto)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.showVersion, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}

const usageText = `usage: aframe <command> [flags]

Commands:
  render    SCENE.yaml          render the scene document to stdout or -o FILE
  serve     SCENE.yaml          serve the scene until interrupted
  snapshot  SCENE.yaml...       capture PNG screenshots via headless Chrome

Flags:
`
