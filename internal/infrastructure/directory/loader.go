// Package directory loads the street directory from its YAML file.
package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vigil/internal/domain/directory"
)

type streetEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type directoryFile struct {
	Events map[string][]streetEntry `yaml:"events"`
}

// Load reads the street directory. A missing file yields an empty
// directory: incidents then carry free-form locations only.
func Load(path string) (*directory.StreetDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return directory.NewStreetDirectory(nil), nil
		}
		return nil, fmt.Errorf("failed to read street directory: %w", err)
	}

	var file directoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse street directory: %w", err)
	}

	streets := make(map[string][]directory.ConcentricStreet, len(file.Events))
	for eventName, entries := range file.Events {
		for _, e := range entries {
			if e.ID == "" {
				return nil, fmt.Errorf("street directory: event %q has a street without an id", eventName)
			}
			streets[eventName] = append(streets[eventName], directory.ConcentricStreet{ID: e.ID, Name: e.Name})
		}
	}

	return directory.NewStreetDirectory(streets), nil
}
