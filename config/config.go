/*
 * config.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */


// Package config reads gosasa settings from TOML files.
//
// A configuration file looks like:
//
//	probe_radius = 1.4
//	n_points = 100
//	include_hetatm = false
//	alt_loc_primary = "A"
//	workers = 8
//	reference_table = "tien2013-theoretical"
//	extended_reference = false
//
//	[output]
//	format = "csv"
//	level = "all"
//	dir = "results"
//
//	[store]
//	path = "~/.gosasa/runs.db"
//
// Keys not present keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/tables"
)

// Output contains the settings for the result tables. An empty Dir means
// that tables are written to the standard output.
type Output struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Store contains the settings for the run database. An empty Path
// means that runs are not stored.
type Store struct {
	Path string `toml:"path"`
}

// Config is the content of a configuration file.
type Config struct {
	ProbeRadius       float64 `toml:"probe_radius"`
	NPoints           int     `toml:"n_points"`
	IncludeHetatm     bool    `toml:"include_hetatm"`
	AltLocPrimary     string  `toml:"alt_loc_primary"`
	Workers           int     `toml:"workers"`
	ReferenceTable    string  `toml:"reference_table"`
	ExtendedReference bool    `toml:"extended_reference"`
	Output            Output  `toml:"output"`
	Store             Store   `toml:"store"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ProbeRadius:    sasa.DefaultProbe,
		NPoints:        sasa.DefaultNPoints,
		AltLocPrimary:  sasa.DefaultAltLoc,
		Workers:        runtime.NumCPU(),
		ReferenceTable: sasa.DefaultReference,
		Output: Output{
			Format: tables.FormatCSV,
			Level:  tables.LevelAll,
		},
	}
}

// DefaultPath returns ~/.gosasa/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gosasa", "config.toml"), nil
}

// Parse reads a configuration from TOML data. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown configuration keys:\n%s", serr.String())
		}
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDefault reads the file at DefaultPath, or returns the default
// configuration if there is no such file.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Validate checks that all the values in the configuration can be used.
func (c *Config) Validate() error {
	var errs []error
	if c.ProbeRadius < 0 || math.IsNaN(c.ProbeRadius) || math.IsInf(c.ProbeRadius, 0) {
		errs = append(errs, fmt.Errorf("probe_radius must be a finite, non-negative number, got %v", c.ProbeRadius))
	}
	if c.NPoints < 1 {
		errs = append(errs, fmt.Errorf("n_points must be at least 1, got %d", c.NPoints))
	}
	if strings.TrimSpace(c.AltLocPrimary) == "" {
		errs = append(errs, errors.New("alt_loc_primary can't be empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := sasa.Reference(c.ReferenceTable, c.ExtendedReference); err != nil {
		errs = append(errs, err)
	}
	if !oneOf(c.Output.Format, tables.Formats) {
		errs = append(errs, fmt.Errorf("output format must be one of %s, got %q", strings.Join(tables.Formats, ", "), c.Output.Format))
	}
	if !oneOf(c.Output.Level, tables.Levels) {
		errs = append(errs, fmt.Errorf("output level must be one of %s, got %q", strings.Join(tables.Levels, ", "), c.Output.Level))
	}
	return errors.Join(errs...)
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Options returns the calculation options for the configuration.
func (c *Config) Options() *sasa.Options {
	o := sasa.DefaultOptions()
	o.Probe(c.ProbeRadius)
	o.NPoints(c.NPoints)
	o.HetAtoms(c.IncludeHetatm)
	o.AltLocPrimary(c.AltLocPrimary)
	o.Cpus(c.Workers)
	o.ReferenceSet(c.ReferenceTable)
	o.ExtendedReference(c.ExtendedReference)
	return o
}

// StorePath returns the store path with a leading ~ expanded to the
// home directory.
func (c *Config) StorePath() string {
	p := c.Store.Path
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// Marshal returns the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
