// Package hostconfig loads sparse engine configuration objects from YAML,
// TOML or JSON files. Keys are the host-visible property names from
// ngl.ConfigFields; any of them may be omitted.
package hostconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nopeforge/nopegl-go/pkg/marshal"
)

// Format is a configuration file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("unrecognized config extension %q", filepath.Ext(path))
}

// Load reads a configuration file. Unlike optional project files, a missing
// file is an error.
func Load(path string) (marshal.Map, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	m, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// Decode parses data in the given format. An empty document yields an empty
// map.
func Decode(format Format, data []byte) (marshal.Map, error) {
	m := marshal.Map{}
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}

	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &m)
	case TOML:
		err = toml.Unmarshal(data, &m)
	case JSON:
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = marshal.Map{}
	}
	return m, nil
}

// Unknown returns the keys of m that no descriptor in table names, sorted.
func Unknown(m marshal.Map, table []marshal.FieldDescriptor) []string {
	known := make(map[string]bool, len(table))
	for _, fd := range table {
		known[fd.Name] = true
	}
	var keys []string
	for k := range m {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
