package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/prayer"
	"gopkg.in/yaml.v3"
)

// structured reports whether --json or --yaml was requested.
func structured() bool {
	return FlagJSON || FlagYAML
}

// writeStructured encodes v as YAML when --yaml is set, JSON otherwise.
func writeStructured(w io.Writer, v any) error {
	if FlagYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// locationJSON is the location block shared by the structured outputs.
type locationJSON struct {
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Timezone  string  `json:"timezone" yaml:"timezone"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Method    string  `json:"method" yaml:"method"`
	Madhab    string  `json:"madhab" yaml:"madhab"`
}

func (s *session) locationJSON() locationJSON {
	return locationJSON{
		Label:     s.label,
		Timezone:  s.zone.String(),
		Latitude:  s.location.Latitude,
		Longitude: s.location.Longitude,
		Method:    s.method.Key,
		Madhab:    s.config.Madhab.String(),
	}
}

// timingsMap keys formatted times by lower-case timing name.
func timingsMap(timings []prayer.Timing, layout string) map[string]string {
	out := make(map[string]string, len(timings))
	for _, t := range timings {
		out[strings.ToLower(t.Name)] = t.Time.Format(layout)
	}
	return out
}
