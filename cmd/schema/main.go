// Command schema writes JSON schema of matchnews configuration. The schema is embedded
// into pkg/config and used to verify config files before loading.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/matchnews/pkg/config"
)

type options struct {
	Out   string `short:"o" long:"out" default:"schema.json" description:"schema file to write"`
	Check bool   `long:"check" description:"fail if schema file is missing or out of date, don't write"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(opts options) error {
	data, err := generate()
	if err != nil {
		return err
	}

	if opts.Check {
		existing, err := os.ReadFile(opts.Out)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.Out, err)
		}
		if !bytes.Equal(bytes.TrimSpace(existing), bytes.TrimSpace(data)) {
			return fmt.Errorf("%s is out of date, run go generate ./pkg/config", opts.Out)
		}
		fmt.Printf("schema %s is up to date\n", opts.Out)
		return nil
	}

	if err := os.WriteFile(opts.Out, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", opts.Out, err)
	}
	fmt.Printf("schema written to %s\n", opts.Out)
	return nil
}

// generate reflects config.Config into indented JSON schema
func generate() ([]byte, error) {
	schema, err := config.GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
