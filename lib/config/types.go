// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration written as text, e.g. "500ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("Can't parse duration: '%s'", string(text))
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Hex struct {
	RecordLength byte `toml:"record_length"`
	Fill         byte `toml:"fill"`
}

type Gamma struct {
	// Used when a snapshot doesn't name a gamma value
	Default string `toml:"default,omitempty"`
}

type Watch struct {
	Backoff Duration `toml:"backoff"`
}

type Config struct {
	Hex   Hex   `toml:"hex"`
	Gamma Gamma `toml:"gamma"`
	Watch Watch `toml:"watch"`
}
