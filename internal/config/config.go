package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bindkit/internal/binding"
	"github.com/danmuck/bindkit/internal/property"
	"golang.org/x/text/language"
)

var ErrInvalidManifest = errors.New("config: invalid manifest")

// Manifest declares bindings between named objects and a script of writes
// to replay against them.
type Manifest struct {
	Name     string          `toml:"name"`
	Bindings []BindingConfig `toml:"binding"`
	Steps    []StepConfig    `toml:"step"`
}

type BindingConfig struct {
	Source     string `toml:"source"`
	SourcePath string `toml:"source_path"`
	Target     string `toml:"target"`
	TargetPath string `toml:"target_path"`
	Mode       string `toml:"mode"`
	Parameter  string `toml:"parameter"`
	Locale     string `toml:"locale"`
	Enabled    bool   `toml:"enabled_from_writability"`
}

type StepConfig struct {
	Object string `toml:"object"`
	Path   string `toml:"path"`
	Value  string `toml:"value"`
}

// ConverterParameter returns the value threaded to converters: the locale
// tag when set, else the format parameter, else nil.
func (b BindingConfig) ConverterParameter() (any, error) {
	if loc := strings.TrimSpace(b.Locale); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", ErrInvalidManifest, loc, err)
		}
		return tag, nil
	}
	if b.Parameter != "" {
		return b.Parameter, nil
	}
	return nil, nil
}

func LoadManifest(path string) (Manifest, error) {
	var cfg Manifest
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest load failed (%s): %w", path, err)
	}
	return finishManifest(cfg, meta)
}

// DecodeManifest parses and validates manifest text with the same rules as
// LoadManifest.
func DecodeManifest(data string) (Manifest, error) {
	var cfg Manifest
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest parse failed: %w", err)
	}
	return finishManifest(cfg, meta)
}

func finishManifest(cfg Manifest, meta toml.MetaData) (Manifest, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("%w: unknown key %q", ErrInvalidManifest, undecoded[0].String())
	}
	if !meta.IsDefined("name") || strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "bindctl"
	}
	if err := ValidateManifest(cfg); err != nil {
		return Manifest{}, err
	}
	return cfg, nil
}

func ValidateManifest(cfg Manifest) error {
	for i, b := range cfg.Bindings {
		if err := ValidateBinding(b); err != nil {
			return fmt.Errorf("binding[%d] invalid: %w", i, err)
		}
	}
	for i, s := range cfg.Steps {
		if err := ValidateStep(s); err != nil {
			return fmt.Errorf("step[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateBinding(b BindingConfig) error {
	if strings.TrimSpace(b.Source) == "" || strings.TrimSpace(b.Target) == "" {
		return fmt.Errorf("%w: source and target are required", ErrInvalidManifest)
	}
	if _, err := property.ParsePath(b.SourcePath); err != nil {
		return fmt.Errorf("%w: source_path: %v", ErrInvalidManifest, err)
	}
	if _, err := property.ParsePath(b.TargetPath); err != nil {
		return fmt.Errorf("%w: target_path: %v", ErrInvalidManifest, err)
	}
	if _, err := binding.ParseMode(b.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if _, err := b.ConverterParameter(); err != nil {
		return err
	}
	return nil
}

func ValidateStep(s StepConfig) error {
	if strings.TrimSpace(s.Object) == "" {
		return fmt.Errorf("%w: object is required", ErrInvalidManifest)
	}
	if _, err := property.ParsePath(s.Path); err != nil {
		return fmt.Errorf("%w: path: %v", ErrInvalidManifest, err)
	}
	return nil
}
