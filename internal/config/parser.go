package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads and validates a settings file. An empty path falls back to the
// conventional location; a missing file at either location yields defaults
// rather than an error.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Defaults(), nil
		}
		return nil, secerrors.NewParseError(path, 0, err)
	}

	settings := Defaults()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, secerrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
