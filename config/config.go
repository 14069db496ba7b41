// Package config — .arb2android.yaml and environment configuration.
//
// Settings are layered; a later layer overrides an earlier one:
//
//  1. .arb2android.yaml in the project root
//  2. a .env file in the project root (ARB2ANDROID_* keys)
//  3. the process environment (ARB2ANDROID_* variables)
//  4. command-line flags (applied by the caller)
//
// Values left empty fall back to the defaults of the convert package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".arb2android.yaml"

// EnvFileName is the optional dotenv file read from the project root.
const EnvFileName = ".env"

// Environment variable names.
const (
	EnvSource        = "ARB2ANDROID_SOURCE"
	EnvOutput        = "ARB2ANDROID_OUTPUT"
	EnvResDir        = "ARB2ANDROID_RES_DIR"
	EnvDefaultLocale = "ARB2ANDROID_DEFAULT_LOCALE"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the .arb2android.yaml structure.
type File struct {
	// Source is the ARB bundle path relative to the project root.
	Source string `yaml:"source,omitempty"`
	// Output is the generated strings.xml path relative to the project root.
	Output string `yaml:"output,omitempty"`
	// ResDir is the Android res/ directory; the values-* subdirectory is
	// derived from the bundle's @@locale when Output is empty.
	ResDir string `yaml:"res_dir,omitempty"`
	// DefaultLocale is the locale written to res/values/ (default "en").
	DefaultLocale string `yaml:"default_locale,omitempty"`
}

// LoadFile loads .arb2android.yaml from rootDir.
// Returns nil if no config file exists. Unknown keys are rejected.
func LoadFile(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// Settings is the merged configuration of one invocation.
type Settings struct {
	Source        string
	Output        string
	ResDir        string
	DefaultLocale string
}

// Load merges the config file, the .env file and the environment for rootDir.
func Load(rootDir string) (*Settings, error) {
	s := &Settings{}

	f, err := LoadFile(rootDir)
	if err != nil {
		return nil, err
	}
	if f != nil {
		s.Source = f.Source
		s.Output = f.Output
		s.ResDir = f.ResDir
		s.DefaultLocale = f.DefaultLocale
	}

	dotenv, err := readDotenv(filepath.Join(rootDir, EnvFileName))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}
	override(&s.Source, lookup(EnvSource))
	override(&s.Output, lookup(EnvOutput))
	override(&s.ResDir, lookup(EnvResDir))
	override(&s.DefaultLocale, lookup(EnvDefaultLocale))

	return s, nil
}

// readDotenv reads a dotenv file without touching the process environment.
// A missing file yields an empty map.
func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return env, nil
}

// Override replaces non-empty fields of s with the non-empty values of o.
func (s *Settings) Override(o Settings) {
	override(&s.Source, o.Source)
	override(&s.Output, o.Output)
	override(&s.ResDir, o.ResDir)
	override(&s.DefaultLocale, o.DefaultLocale)
}

// ResolvePaths makes relative paths absolute against rootDir.
// Empty paths stay empty.
func (s *Settings) ResolvePaths(rootDir string) {
	for _, p := range []*string{&s.Source, &s.Output, &s.ResDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(rootDir, *p)
		}
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
