// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// config.go reduces the NewEngine API footprint using functional
// options. See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//
// Config is a shape, not a loader: parsing a file, reading flags, and
// choosing a format are the external CLI/config collaborator's job
// (§7b); wallglass only needs yaml struct tags so that collaborator can
// unmarshal a document straight into a Config before passing it to
// NewEngine.

import "time"

// Config contains configuration attributes the engine needs before its
// game loop starts.
type Config struct {
	Monitors []MonitorConfig `yaml:"monitors"`

	TransitionDuration time.Duration `yaml:"transition_duration"`
	TransitionEasing   string        `yaml:"transition_easing"`

	// Loop re-opens videos at end-of-stream instead of stopping
	// (per-Video do_loop_video default, §9).
	Loop bool `yaml:"loop"`
}

// MonitorConfig names the wallpaper assigned to one output by label,
// deferring actual output enumeration to the Wayland collaborator.
type MonitorConfig struct {
	Output string `yaml:"output"`
	Source string `yaml:"source"`
}

// configDefaults provides reasonable defaults so the engine runs even
// if no configuration attributes are set.
var configDefaults = Config{
	TransitionDuration: time.Second,
	TransitionEasing:   "linear",
	Loop:               true,
}

// Attr defines optional configuration attributes used to build a
// Config.
//
//	cfg := wallglass.NewConfig(
//	   wallglass.Transition(2*time.Second, "linear"),
//	   wallglass.Looping(false),
//	)
type Attr func(*Config)

// NewConfig builds a Config from configDefaults plus the given
// attributes.
func NewConfig(attrs ...Attr) Config {
	cfg := configDefaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	return cfg
}

// Transition sets the default crossfade duration and easing curve name
// used when a wallpaper change isn't accompanied by its own transition
// request.
func Transition(duration time.Duration, easing string) Attr {
	return func(c *Config) { c.TransitionDuration = duration; c.TransitionEasing = easing }
}

// Looping sets whether videos loop at end-of-stream by default.
func Looping(loop bool) Attr {
	return func(c *Config) { c.Loop = loop }
}

// WithMonitor appends a monitor->source assignment.
func WithMonitor(output, source string) Attr {
	return func(c *Config) { c.Monitors = append(c.Monitors, MonitorConfig{Output: output, Source: source}) }
}
