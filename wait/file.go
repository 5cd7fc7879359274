package wait

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

// fileConfig mirrors Config as it appears in a configuration file. Pointer fields distinguish
// absent keys from zero values.
type fileConfig struct {
	Hosts      any    `yaml:"hosts" toml:"hosts"`
	Timeout    *int64 `yaml:"timeout" toml:"timeout"`
	WaitBefore *int64 `yaml:"wait_before" toml:"wait_before"`
	WaitAfter  *int64 `yaml:"wait_after" toml:"wait_after"`
}

// LoadConfigFile reads a YAML (.yaml, .yml) or TOML (.toml) file and applies the keys it sets on
// top of base. Unlike environment variables, invalid values in a file are reported as errors.
func LoadConfigFile(path string, base Config) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		// A document without any node decodes to io.EOF; treat it as an empty config.
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(content), &fc)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %q", ext)
	}

	return fc.apply(base)
}

// apply overlays the keys present in fc onto base.
func (fc *fileConfig) apply(base Config) (Config, error) {
	cfg := base

	if fc.Hosts != nil {
		hosts, err := joinHosts(fc.Hosts)
		if err != nil {
			return Config{}, err
		}
		cfg.Hosts = hosts
	}

	fields := []struct {
		name string
		src  *int64
		dst  *uint64
	}{
		{"timeout", fc.Timeout, &cfg.Timeout},
		{"wait_before", fc.WaitBefore, &cfg.WaitBefore},
		{"wait_after", fc.WaitAfter, &cfg.WaitAfter},
	}
	for _, field := range fields {
		if field.src == nil {
			continue
		}
		if *field.src < 0 {
			return Config{}, fmt.Errorf("%s must not be negative, got %d", field.name, *field.src)
		}
		*field.dst = uint64(*field.src)
	}

	return cfg, nil
}

// joinHosts accepts either a comma-separated string or a list of strings.
func joinHosts(raw any) (string, error) {
	switch value := raw.(type) {
	case string:
		return value, nil
	case []any:
		hosts := make([]string, len(value))
		for i, item := range value {
			host, isString := item.(string)
			if !isString {
				return "", fmt.Errorf("hosts[%d] must be a string, got %T", i, item)
			}
			hosts[i] = strings.TrimSpace(host)
		}
		return strings.Join(hosts, ","), nil
	default:
		return "", fmt.Errorf("hosts must be a string or a list of strings, got %T", raw)
	}
}
