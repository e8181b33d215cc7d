// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world

import (
	_ "embed"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the semver constraint world files must satisfy.
const SupportedVersions = "^1"

// File is the on-disk world format.
type File struct {
	Version   string     `yaml:"version" json:"version" jsonschema:"minLength=1"`
	Locations []Location `yaml:"locations" json:"locations" jsonschema:"minItems=1"`
}

//go:embed default_world.yaml
var defaultWorld []byte

var supportedConstraint = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

// Parse decodes and validates a YAML world file.
func Parse(data []byte) (*Map, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code(CodeYAMLInvalid).Wrapf(err, "invalid YAML")
	}

	if err := CheckVersion(f.Version); err != nil {
		return nil, err
	}

	return NewMap(f.Locations)
}

// Load reads and parses the world file at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, oops.Code(CodeReadFailed).With("path", path).Wrap(err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return m, nil
}

// Default returns the embedded seed world.
func Default() *Map {
	m, err := Parse(defaultWorld)
	if err != nil {
		panic("embedded world is invalid: " + err.Error())
	}
	return m
}

// CheckVersion verifies the file version satisfies SupportedVersions.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return oops.Code(CodeVersionUnsupported).
			With("version", version).
			Wrapf(err, "invalid world file version")
	}
	if !supportedConstraint.Check(v) {
		return oops.Code(CodeVersionUnsupported).
			With("version", version).
			With("supported", SupportedVersions).
			Errorf("world file version %s is not supported (want %s)", version, SupportedVersions)
	}
	return nil
}
