package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-execution/internal/config"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "argo-execution-config.json"
	sampleConfigName = "argo-execution-config.yaml"
)

func main() {
	if err := generate("./config"); err != nil {
		log.Fatal(err)
	}
}

// generate writes the configuration schema to dir, and a sample configuration with every
// default if none exists yet.
func generate(dir string) error {
	cfg := config.Default()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return err
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	samplePath := filepath.Join(dir, sampleConfigName)
	if _, err := os.Stat(samplePath); !os.IsNotExist(err) {
		return nil
	}

	sample, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	sample = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), sample...)
	if err := os.WriteFile(samplePath, sample, 0644); err != nil {
		return err
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}
