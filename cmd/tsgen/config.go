package main

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v3"

	"github.com/gqlc/tsgen/doc"
	"github.com/gqlc/tsgen/typescript"
)

// Environment variables overriding the config file.
const (
	envEndpoint = "TSGEN_ENDPOINT"
	envToken    = "TSGEN_TOKEN"
)

// Config is the tsgen.yaml file.
type Config struct {
	// Endpoint is introspected for the schema.
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`

	// Schema lists glob patterns of local SDL files, used when no endpoint
	// is configured.
	Schema []string `yaml:"schema" validate:"dive,required"`

	OutDir    string   `yaml:"outDir" validate:"required"`
	Documents []string `yaml:"documents" validate:"dive,required"`

	// Clean removes the previous output before generating.
	Clean bool `yaml:"clean"`

	// Headers are sent with the introspection query. Values may reference
	// environment variables.
	Headers map[string]string `yaml:"headers"`

	Aliases map[string]map[string]string `yaml:"aliases"`

	Options typescript.Options `yaml:"options"`
	Docs    *doc.Options       `yaml:"docs"`

	// dir is the directory holding the config file. Relative paths
	// resolve against it.
	dir string
}

var errNoConfig = errors.New("config file not found")

// findConfig returns the path of the first file called name under root.
// Hidden directories, node_modules and dist are not searched.
func findConfig(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			switch base := d.Name(); {
			case base[0] == '.', base == "node_modules", base == "dist":
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", errors.Wrapf(errNoConfig, "%s under %s", name, root)
	}
	return found, nil
}

// loadEnv loads the given env files, or .env when none are given. A missing
// default .env is not an error.
func loadEnv(files ...string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}

	err := godotenv.Load()
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// loadConfig reads, overrides and validates the config at path.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)
	if err = yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	cfg.dir = filepath.Dir(path)

	if endpoint, ok := os.LookupEnv(envEndpoint); ok {
		cfg.Endpoint = endpoint
	}
	for key, v := range cfg.Headers {
		cfg.Headers[key] = os.ExpandEnv(v)
	}
	if token := os.Getenv(envToken); token != "" {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers["Authorization"] = "Bearer " + token
	}

	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the config fields and options.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Endpoint == "" && len(c.Schema) == 0 {
		return errors.New("one of endpoint or schema is required")
	}
	return c.Options.Validate()
}

// Header returns the introspection request headers.
func (c *Config) Header() http.Header {
	h := make(http.Header, len(c.Headers))
	for key, v := range c.Headers {
		h.Set(key, v)
	}
	return h
}

// Path resolves p against the config directory.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// readSources reads every file matched by patterns. Files matched more
// than once are read once; each pattern has to match something.
func (c *Config) readSources(patterns []string) ([]*ast.Source, error) {
	seen := make(map[string]bool)
	var sources []*ast.Source
	for _, pattern := range patterns {
		matches, err := filepath.Glob(c.Path(pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "bad pattern %q", pattern)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("pattern %q matches no files", pattern)
		}
		sort.Strings(matches)

		for _, name := range matches {
			if seen[name] {
				continue
			}
			seen[name] = true

			b, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			sources = append(sources, &ast.Source{Name: name, Input: string(b)})
		}
	}
	return sources, nil
}
