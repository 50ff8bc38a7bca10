// Command generate-config writes an example configuration file holding
// every default value.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/brandi/internal/config"
)

const header = `# Brandi Configuration Example
# Copy this file to config.yaml and customize as needed.
# Environment variables (BRANDI_HOST, BRANDI_PORT, BRANDI_ROUTER_MODE, ...)
# override the values below.

`

func generate(w io.Writer) error {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("error generating YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func main() {
	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	if outputFile == "-" {
		if err := generate(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	if err := generate(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}
