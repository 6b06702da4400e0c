// Package config reads and writes user configuration files.
//
// A configuration file lives under $XDG_CONFIG_HOME (~/.config when
// unset) at a caller-supplied relative path. The format is inferred
// from the file extension: YAML (.yaml/.yml), JSON (.json, comments
// and trailing commas tolerated), or TOML (.toml).
//
// Values are accessed through a koanf instance with dotted key paths,
// optionally overlaid with environment variables. Mutations made with
// Set are persisted back to the file with Rewrite.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/zmwangx/docpub/internal/xdg"
)

// Format identifies a configuration file format.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("cannot infer config format from %q (supported: .yaml, .yml, .json, .toml)", path)
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	allowMissing bool
	envPrefix    string
}

// AllowMissing makes Load create the parent directories (mode 0700)
// and an empty config file instead of failing when the file does not
// exist.
func AllowMissing() Option {
	return func(o *loadOptions) { o.allowMissing = true }
}

// WithEnvPrefix overlays environment variables carrying the given
// prefix on top of the file contents (highest precedence). The prefix
// is stripped and the remainder lowercased with underscores mapped to
// key path separators: PREFIX_SERVER_PORT -> server.port.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// File is a loaded configuration file.
type File struct {
	k      *koanf.Koanf
	path   string
	format Format
}

// Load reads the config file at the given path relative to the XDG
// config home.
func Load(relpath string, opts ...Option) (*File, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	confHome, err := xdg.ConfigHome()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(confHome, relpath)

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if !o.allowMissing {
			return nil, fmt.Errorf("config file %q not found", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, err
		}
	}

	k := koanf.New(".")
	if err := loadFile(k, path, format); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if o.envPrefix != "" {
		prefix := o.envPrefix
		if err := k.Load(env.Provider(".", env.Opt{
			Prefix: prefix,
			TransformFunc: func(key, value string) (string, any) {
				key = strings.TrimPrefix(key, prefix)
				key = strings.ToLower(key)
				return strings.ReplaceAll(key, "_", "."), value
			},
		}), nil); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	return &File{k: k, path: path, format: format}, nil
}

func loadFile(k *koanf.Koanf, path string, format Format) error {
	switch format {
	case YAML:
		return k.Load(file.Provider(path), kyaml.Parser())
	case TOML:
		return k.Load(file.Provider(path), ktoml.Parser())
	case JSON:
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		// Tolerate comments and trailing commas in JSON config files.
		b = jsonc.ToJSON(b)
		if len(strings.TrimSpace(string(b))) == 0 {
			return nil
		}
		return k.Load(rawbytes.Provider(b), kjson.Parser())
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Path returns the absolute path of the config file.
func (f *File) Path() string { return f.path }

// Format returns the detected file format.
func (f *File) Format() Format { return f.format }

// Exists reports whether the key is set.
func (f *File) Exists(key string) bool { return f.k.Exists(key) }

// Get returns the raw value at the dotted key path, or nil.
func (f *File) Get(key string) any { return f.k.Get(key) }

// String returns the string value at the dotted key path, or "".
func (f *File) String(key string) string { return f.k.String(key) }

// Int returns the int value at the dotted key path, or 0.
func (f *File) Int(key string) int { return f.k.Int(key) }

// Bool returns the bool value at the dotted key path, or false.
func (f *File) Bool(key string) bool { return f.k.Bool(key) }

// Set assigns a value at the dotted key path. The change is in-memory
// until Rewrite is called.
func (f *File) Set(key string, value any) error { return f.k.Set(key, value) }

// Unmarshal decodes the subtree at the dotted key path ("" for the
// whole file) into out.
func (f *File) Unmarshal(key string, out any) error { return f.k.Unmarshal(key, out) }

// Rewrite persists the current in-memory state back to the config
// file, serialized in the file's own format.
func (f *File) Rewrite() error {
	var (
		b   []byte
		err error
	)
	switch f.format {
	case YAML:
		b, err = yaml.Marshal(f.k.Raw())
	case JSON:
		b, err = json.MarshalIndent(f.k.Raw(), "", "    ")
	case TOML:
		b, err = toml.Marshal(f.k.Raw())
	default:
		return fmt.Errorf("unsupported format %q", f.format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o644)
}
