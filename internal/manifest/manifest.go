// Package manifest loads command definitions from TOML or YAML files.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Manifest is the decoded contents of a command file.
type Manifest struct {
	Replacements map[string]string `toml:"replacements" yaml:"replacements"`
	Commands     []Command         `toml:"command" yaml:"commands"`
}

// Command is one command definition as written in a manifest.
type Command struct {
	Path          string   `toml:"path" yaml:"path"`
	Description   string   `toml:"description" yaml:"description"`
	Category      string   `toml:"category" yaml:"category"`
	Permission    string   `toml:"permission" yaml:"permission"`
	Conditions    []string `toml:"conditions" yaml:"conditions"`
	Handler       string   `toml:"handler" yaml:"handler"`
	Reply         string   `toml:"reply" yaml:"reply"`
	Hidden        bool     `toml:"hidden" yaml:"hidden"`
	AllowTrailing bool     `toml:"allow_trailing" yaml:"allow_trailing"`
	Params        []Param  `toml:"param" yaml:"params"`
}

// Param is one parameter of a manifest command.
type Param struct {
	Name        string   `toml:"name" yaml:"name"`
	Type        string   `toml:"type" yaml:"type"`
	Optional    bool     `toml:"optional" yaml:"optional"`
	Rest        bool     `toml:"rest" yaml:"rest"`
	Default     string   `toml:"default" yaml:"default"`
	Flags       string   `toml:"flags" yaml:"flags"`
	Conditions  []string `toml:"conditions" yaml:"conditions"`
	Suggest     []string `toml:"suggest" yaml:"suggest"`
	Completion  string   `toml:"completion" yaml:"completion"`
	Description string   `toml:"description" yaml:"description"`
}

// Format is a manifest encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("manifest %s: unsupported extension, want .toml, .yaml or .yml", path)
	}
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Decode parses data. Unknown keys are rejected so typos surface early.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %d", format)
	}

	return &m, m.validate()
}

func (m *Manifest) validate() error {
	for i, c := range m.Commands {
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("command #%d has no path", i+1)
		}
		if c.Handler != "" && c.Reply != "" {
			return fmt.Errorf("command %q sets both handler and reply", c.Path)
		}
		if c.Handler == "" && c.Reply == "" {
			return fmt.Errorf("command %q needs a handler or a reply", c.Path)
		}
		for j, p := range c.Params {
			if p.Name == "" || p.Type == "" {
				return fmt.Errorf("command %q: parameter #%d needs a name and a type", c.Path, j+1)
			}
			if p.Rest && j != len(c.Params)-1 {
				return fmt.Errorf("command %q: rest parameter %q must be last", c.Path, p.Name)
			}
		}
	}
	return nil
}
