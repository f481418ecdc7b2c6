package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance case: an input record and the
// expectations on the evaluated results.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name for RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Modules optionally restricts evaluation to the named modules.
	Modules []string `yaml:"modules,omitempty"`

	// Input is the input record handed to the evaluator.
	Input map[string]any `yaml:"input"`

	// Expect holds the assertions evaluated against the results.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause describes the expected evaluation outcome.
type ExpectClause struct {
	// Results is a subset match over the results record: module → fact →
	// expected value. Per-entity facts use decimal-string entity ids;
	// error values use the {errors: {...}} shape of the canonical
	// encoding. Facts not listed are not checked.
	Results map[string]map[string]any `yaml:"results,omitempty"`

	// InputErrors, when present, must equal the aggregated input errors
	// exactly: key path → message set.
	InputErrors map[string][]string `yaml:"input_errors,omitempty"`
}

// LoadScenario reads a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	return &scenario, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by file
// name so test order is stable.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var scenarios []*Scenario
	for _, path := range matches {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", dir)
	}
	return scenarios, nil
}
