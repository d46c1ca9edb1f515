package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/bindkit/internal/testutil/testlog"
	"golang.org/x/text/language"
)

func TestTemplatesDecodeAndValidate(t *testing.T) {
	testlog.Start(t)
	for _, kind := range []string{"demo", "locale"} {
		raw, err := Template(kind)
		if err != nil {
			t.Fatalf("template %s: %v", kind, err)
		}
		m, err := DecodeManifest(raw)
		if err != nil {
			t.Fatalf("decode %s: %v", kind, err)
		}
		if m.Name != kind || len(m.Bindings) == 0 || len(m.Steps) == 0 {
			t.Fatalf("unexpected %s manifest: %+v", kind, m)
		}
	}
	if _, err := Template("window"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestLoadManifestFromFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "bind.toml")
	if err := WriteTemplate(path, "demo", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, "demo", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, "locale", true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	param, err := m.Bindings[0].ConverterParameter()
	tag, ok := param.(language.Tag)
	if err != nil || !ok || tag.String() != "de" {
		t.Fatalf("locale parameter: %v err=%v", param, err)
	}
}

func TestLoadManifestDefaultsAndUnknownKeys(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.toml")
	if err := os.WriteFile(plain, []byte("[[step]]\nobject = \"view\"\npath = \"NumericBox.Text\"\nvalue = \"1\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := LoadManifest(plain)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Name != "bindctl" {
		t.Fatalf("default name not applied: %q", m.Name)
	}

	typo := filepath.Join(dir, "typo.toml")
	if err := os.WriteFile(typo, []byte("[[binding]]\nsorce = \"viewmodel\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadManifest(typo); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest, got %v", err)
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestValidateBindingFailures(t *testing.T) {
	testlog.Start(t)
	ok := BindingConfig{Source: "viewmodel", SourcePath: "Number", Target: "view", TargetPath: "NumericBox.Text"}
	if err := ValidateBinding(ok); err != nil {
		t.Fatalf("valid binding rejected: %v", err)
	}

	cases := []func(*BindingConfig){
		func(b *BindingConfig) { b.Source = "" },
		func(b *BindingConfig) { b.Target = " " },
		func(b *BindingConfig) { b.SourcePath = "" },
		func(b *BindingConfig) { b.TargetPath = "NumericBox..Text" },
		func(b *BindingConfig) { b.Mode = "sideways" },
		func(b *BindingConfig) { b.Locale = "not a tag!" },
	}
	for i, mutate := range cases {
		b := ok
		mutate(&b)
		if err := ValidateBinding(b); !errors.Is(err, ErrInvalidManifest) {
			t.Fatalf("case %d: expected ErrInvalidManifest, got %v", i, err)
		}
	}
}

func TestValidateStepFailures(t *testing.T) {
	testlog.Start(t)
	cases := []StepConfig{
		{Object: "", Path: "Number"},
		{Object: "viewmodel", Path: ""},
		{Object: "viewmodel", Path: "Items[0]"},
	}
	for _, s := range cases {
		if err := ValidateStep(s); !errors.Is(err, ErrInvalidManifest) {
			t.Fatalf("step %+v: expected ErrInvalidManifest, got %v", s, err)
		}
	}
}

func TestConverterParameter(t *testing.T) {
	testlog.Start(t)
	if p, err := (BindingConfig{}).ConverterParameter(); p != nil || err != nil {
		t.Fatalf("empty parameter: %v %v", p, err)
	}
	if p, _ := (BindingConfig{Parameter: "%05d"}).ConverterParameter(); p != "%05d" {
		t.Fatalf("format parameter: %v", p)
	}
	if p, _ := (BindingConfig{Parameter: "%05d", Locale: "en"}).ConverterParameter(); p.(language.Tag).String() != "en" {
		t.Fatalf("locale wins over format: %v", p)
	}
}

func TestDecodeManifestMatchesLoadRules(t *testing.T) {
	testlog.Start(t)
	if _, err := DecodeManifest("[[binding]]\nsorce = \"viewmodel\"\n"); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest for unknown key, got %v", err)
	}
	if _, err := DecodeManifest("nmae = \"demo\"\n"); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest for unknown top-level key, got %v", err)
	}
	m, err := DecodeManifest("name = \"  \"\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Name != "bindctl" {
		t.Fatalf("default name not applied: %q", m.Name)
	}
}
