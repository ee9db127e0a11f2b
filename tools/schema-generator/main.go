package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/logging"
)

// Writes the reflected schemas that schema/hooklint.schema.json is kept in
// step with.
func main() {
	baseBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}
	loggingSchema := r.Reflect(&logging.Config{})
	loggingSchema.Title = "hooklint logging"
	loggingBytes, err := json.MarshalIndent(loggingSchema, "", "  ")
	if err != nil {
		log.Fatalf("Error generating logging schema: %v", err)
	}

	outputDir := "schema/definitions"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	for name, data := range map[string][]byte{
		"config.schema.json":  baseBytes,
		"logging.schema.json": loggingBytes,
	} {
		outputPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			log.Fatalf("Error writing schema file: %v", err)
		}
		log.Printf("Generated %s", outputPath)
	}
}
