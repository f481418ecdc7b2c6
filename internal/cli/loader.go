package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/factgraph/internal/fact"
)

// LoadInput reads a YAML input record from disk. The decoded shape is the
// nested map/sequence structure the engine consumes directly; numbers stay
// ints where the document writes ints.
func LoadInput(path string) (fact.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}

	var record map[string]any
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	if record == nil {
		record = map[string]any{}
	}
	return fact.Input(record), nil
}

// moduleNames converts the --modules flag values.
func moduleNames(modules []string) []fact.ModuleName {
	out := make([]fact.ModuleName, len(modules))
	for i, m := range modules {
		out[i] = fact.ModuleName(m)
	}
	return out
}
