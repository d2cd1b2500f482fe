package pipeline

import (
	"github.com/matzehuels/chartlayout/pkg/model"
)

// Parse decodes and validates a chart definition. An empty format means
// JSON.
func Parse(data []byte, format string) (model.Definition, error) {
	return model.UnmarshalDefinition(data, format)
}

// ParseFile reads a chart definition file. The format follows the file
// extension (.json, .toml, .yaml or .yml).
func ParseFile(path string) (model.Definition, error) {
	return model.ReadDefinitionFile(path)
}
