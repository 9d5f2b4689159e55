package main

import (
	"fmt"
	"io"
	"os"

	"github.com/quix-labs/linkfix/internals"
	"github.com/rs/zerolog"
)

func main() {
	err := run(os.Stdout)
	if err != nil {
		fail(err)
	}
}

// run cleans the links and prints the confirmation line to stdout.
// Nothing is printed when it fails.
func run(stdout io.Writer) error {
	config := &internals.Config{}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		err := config.LoadFromYaml(configFile)
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
	}

	linkFix := &internals.LinkFix{}
	err := linkFix.Init(config)
	if err != nil {
		return fmt.Errorf("unable to initialize: %w", err)
	}
	defer linkFix.Terminate()

	err = linkFix.Run()
	if err != nil {
		return fmt.Errorf("unable to clean links: %w", err)
	}

	_, err = fmt.Fprintf(stdout, "✅ Links cleaned and saved to %s\n", linkFix.OutputPath())
	return err
}

func fail(err error) {
	report(os.Stderr, err)
	os.Exit(1)
}

// report writes err to w at fatal level. When the configured level silences
// fatal events the error is written as plain text instead.
func report(w io.Writer, err error) {
	if zerolog.GlobalLevel() > zerolog.FatalLevel {
		fmt.Fprintf(w, "linkfix: %v\n", err)
		return
	}
	logger := zerolog.New(w).With().Timestamp().Str("service", "main").Logger()
	logger.WithLevel(zerolog.FatalLevel).Err(err).Msg("Run failed")
}
