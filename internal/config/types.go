/*
 * types.go, part of tcparse.
 *
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
 *
 */

// Package config provides configuration management for the tcparse CLI.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/rmera/tcparse"
	"github.com/rmera/tcparse/report"
)

// Defaults.
const (
	DefaultSeparator = ","
	DefaultKeep      = "last"
	DefaultFormat    = "text"
	DefaultColor     = "auto"
)

// Config holds all CLI configuration options.
type Config struct {
	Summary       bool               `koanf:"summary"`
	ReportOnly    bool               `koanf:"report_only"`
	Tabs          bool               `koanf:"tabs"`
	Plot          bool               `koanf:"plot"`
	Separator     string             `koanf:"separator"`
	Keep          string             `koanf:"keep"`
	NoTemperature bool               `koanf:"no_temperature"`
	NoDerive      bool               `koanf:"no_derive"`
	Phases        bool               `koanf:"phases"`
	Format        string             `koanf:"format"`
	Color         string             `koanf:"color"`
	Verbose       bool               `koanf:"verbose"`
	Masses        map[string]float64 `koanf:"masses"` // overrides of the standard atomic masses
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Separator: DefaultSeparator,
		Keep:      DefaultKeep,
		Format:    DefaultFormat,
		Color:     DefaultColor,
	}
}

// Validate checks the values that are not simple switches.
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.ReportFormat(); err != nil {
		return err
	}
	if !c.Tabs && utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("unknown color mode %q, use auto, on or off", c.Color)
	}
	for el, m := range c.Masses {
		if m <= 0 {
			return fmt.Errorf("atomic mass of %s must be positive, got %v", el, m)
		}
	}
	return nil
}

// Sep returns the field separator for CSV output.
func (c *Config) Sep() rune {
	if c.Tabs {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Separator)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Policy returns the duplicate temperature policy.
func (c *Config) Policy() (tcparse.Policy, error) {
	return tcparse.ParsePolicy(c.Keep)
}

// ReportFormat returns the format of the composition report.
func (c *Config) ReportFormat() (report.Format, error) {
	return report.ParseFormat(c.Format)
}

// AtomicMasses returns the standard atomic masses with the overrides of
// the configuration applied, or nil if there are none.
func (c *Config) AtomicMasses() tcparse.AtomicMasses {
	if len(c.Masses) == 0 {
		return nil
	}
	ret := make(tcparse.AtomicMasses, len(tcparse.StandardMasses())+len(c.Masses))
	for el, m := range tcparse.StandardMasses() {
		ret[el] = m
	}
	for el, m := range c.Masses {
		ret[tcparse.Symbol(el)] = m
	}
	return ret
}
