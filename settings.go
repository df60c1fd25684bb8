// Copyright 2024 Josh Deprez
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dialogue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by
// LoadSettingsFile and ApplyEnv.
const EnvPrefix = "DIALOGUE_"

// DefaultFrameInterval is the default time between ticks of a Loop.
const DefaultFrameInterval = 16 * time.Millisecond

// Settings holds the tunable parameters of playback.
type Settings struct {
	// Time between characters appearing.
	TypingInterval time.Duration `yaml:"typing_interval" env:"TYPING_INTERVAL"`

	// Hold time for monologue lines that don't specify one.
	DefaultHold time.Duration `yaml:"default_hold" env:"DEFAULT_HOLD"`

	// Time between ticks when playing in real time.
	FrameInterval time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		TypingInterval: DefaultTypingInterval,
		DefaultHold:    DefaultHold,
		FrameInterval:  DefaultFrameInterval,
	}
}

// ReadSettings reads YAML settings from r. Settings missing from the YAML
// keep their default values.
func ReadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettingsFile loads settings from a YAML file, then applies overrides
// from the environment (see ApplyEnv). If path is empty, only defaults and
// the environment are used.
func LoadSettingsFile(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("reading settings file: %w", err)
		}
		if s, err = ReadSettings(bytes.NewReader(data)); err != nil {
			return Settings{}, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyEnv overrides settings with environment variables, e.g.
// DIALOGUE_TYPING_INTERVAL=30ms.
func (s *Settings) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return s.Validate()
}

// Validate checks the settings make sense.
func (s Settings) Validate() error {
	if s.TypingInterval <= 0 {
		return fmt.Errorf("typing interval %v must be positive", s.TypingInterval)
	}
	if s.DefaultHold < 0 {
		return fmt.Errorf("default hold %v must not be negative", s.DefaultHold)
	}
	if s.FrameInterval <= 0 {
		return fmt.Errorf("frame interval %v must be positive", s.FrameInterval)
	}
	return nil
}
