package starter

import (
	"errors"
	"fmt"
	"log/slog"
)

// Setting names read by Init.
const (
	SettingExampleVariable = "EXAMPLE_PLUGIN_VARIABLE"
	SettingA2AVersion      = "AGENT0_A2A_VERSION"
)

// DefaultA2AVersion is the agent-to-agent protocol version advertised when
// none is configured.
const DefaultA2AVersion = "0.30"

// ErrInvalidConfig prefixes every plugin configuration failure.
var ErrInvalidConfig = errors.New("Invalid plugin configuration")

// Config is the validated, immutable plugin configuration.
type Config struct {
	ExampleVariable string
	A2AVersion      string
}

// Init validates plugin settings. An absent EXAMPLE_PLUGIN_VARIABLE is
// allowed and logged; a present but empty one is rejected.
func Init(settings map[string]string, logger *slog.Logger) (Config, error) {
	var violations Violations

	cfg := Config{A2AVersion: DefaultA2AVersion}

	v, ok := settings[SettingExampleVariable]
	switch {
	case !ok:
		logger.Warn("example plugin variable is not provided")
	case v == "":
		violations = append(violations, Violation{
			Field:   SettingExampleVariable,
			Message: "Example plugin variable is not provided",
		})
	default:
		cfg.ExampleVariable = v
	}

	if av, ok := settings[SettingA2AVersion]; ok {
		if av == "" {
			violations = append(violations, Violation{
				Field:   SettingA2AVersion,
				Message: "A2A version must not be empty",
			})
		}
		cfg.A2AVersion = av
	}

	if len(violations) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, violations.Error())
	}

	logger.Info("starter plugin initialized")
	return cfg, nil
}
