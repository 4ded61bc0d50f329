package domain

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/domainforge/domainforge/internal/debug"
)

// ToolVersion is the version of the generator toolchain, compared against a
// configuration's min_tool_version gate. Overridden at build time.
var ToolVersion = "0.1.0"

// ParseError reports malformed configuration input. It is fatal: no
// generation is attempted for input that does not parse.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadConfig parses a serialized domain configuration. YAML and JSON are both
// accepted; JSON is decoded through the same path since YAML is a superset.
// The returned config is parsed but not validated; call Validate before
// generating.
func LoadConfig(data []byte) (*DomainConfig, error) {
	debug.Debug("Loading domain config", "bytes", len(data))

	var cfg DomainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		debug.Error("Config parse failed", "error", err)
		return nil, &ParseError{Err: err}
	}

	if cfg.MinToolVersion != "" {
		if err := checkToolVersion(cfg.MinToolVersion); err != nil {
			return nil, err
		}
	}

	debug.Debug("Config loaded", "domain", cfg.Name, "entities", len(cfg.Entities))
	return &cfg, nil
}

// LoadConfigFile reads and parses a configuration file through the given
// filesystem.
func LoadConfigFile(fs afero.Fs, path string) (*DomainConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

func checkToolVersion(min string) error {
	required, err := goversion.NewVersion(min)
	if err != nil {
		return &ParseError{Err: fmt.Errorf("invalid min_tool_version %q: %w", min, err)}
	}
	current, err := goversion.NewVersion(ToolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", ToolVersion, err)
	}
	if current.LessThan(required) {
		return fmt.Errorf("config requires tool version >= %s, running %s", min, ToolVersion)
	}
	return nil
}
