// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package config

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/usedbytes/lbrc-tools/lib/gamma"
	"github.com/usedbytes/lbrc-tools/lib/ihex"
)

func stringIfNotEmpty(prefix, val string) string {
	if len(val) > 0 {
		return fmt.Sprintf("%s %s\n", prefix, val)
	}
	return ""
}

func Defaults() *Config {
	return &Config{
		Hex: Hex{
			RecordLength: ihex.DefaultRecordLen,
			Fill:         ihex.DefaultFill,
		},
		Watch: Watch{
			Backoff: Duration{500 * time.Millisecond},
		},
	}
}

func (c *Config) Validate() error {
	if c.Hex.RecordLength == 0 {
		return errors.New("hex.record_length must be at least 1")
	}

	if len(c.Gamma.Default) != 0 {
		if _, err := gamma.ParseValue(c.Gamma.Default); err != nil {
			return errors.Wrap(err, "gamma.default")
		}
	}

	if c.Watch.Backoff.Duration <= 0 {
		return errors.New("watch.backoff must be positive")
	}

	return nil
}

// Parse decodes a TOML document on top of the defaults.
func Parse(data string) (*Config, error) {
	cfg := Defaults()

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}

	if undec := md.Undecoded(); len(undec) != 0 {
		return nil, errors.Errorf("unrecognised key '%s'", undec[0].String())
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the config file at path. An empty path gives the defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	if len(path) == 0 {
		return Defaults(), nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading config '%s'", path)
	}

	return cfg, nil
}

func (c *Config) Write(fs afero.Fs, path string) error {
	buf := &bytes.Buffer{}
	enc := toml.NewEncoder(buf)
	err := enc.Encode(c)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}

func (c *Config) String() string {
	var s string
	s += "Config:\n"
	s += fmt.Sprintf("   Hex record length: %d\n", c.Hex.RecordLength)
	s += fmt.Sprintf("   Hex fill: 0x%02x\n", c.Hex.Fill)
	s += stringIfNotEmpty("   Default gamma:", c.Gamma.Default)
	s += fmt.Sprintf("   Watch backoff: %s\n", c.Watch.Backoff)
	return s
}
