// Package config loads and validates a receive session's runtime
// configuration: SDR tuning, DSP/demodulator parameters, channel
// assignment, and post-processing options.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dvdesolve/mlrpt/consts"
)

// ChannelConfig is the per-channel (red/green/blue) slice of the
// runtime configuration: which APID feeds it and its output rescale
// range.
type ChannelConfig struct {
	APID  byte `yaml:"apid"`
	Black byte `yaml:"black"`
	White byte `yaml:"white"`
}

// Config is the full set of options a session needs, whether loaded
// from a structured YAML file, a flat key=value file, or overridden
// from the command line.
type Config struct {
	CenterFreqHz uint64 `yaml:"center_freq_hz"`
	SampleRateHz uint64 `yaml:"sample_rate_hz"`
	FilterBWHz   uint64 `yaml:"filter_bw_hz"`
	TunerGain    int    `yaml:"tuner_gain"` // 0 = auto

	RRCOrder int     `yaml:"rrc_order"`
	RRCAlpha float64 `yaml:"rrc_alpha"`

	CostasBandwidth  float64 `yaml:"costas_bandwidth"`
	PLLLockedThresh  float64 `yaml:"pll_locked_threshold"`
	PSKMode          string  `yaml:"psk_mode"` // QPSK, DOQPSK, IDOQPSK
	SymbolRateHz     float64 `yaml:"symbol_rate_hz"`
	InterpFactor     int     `yaml:"interp_factor"`

	Channels [consts.ChannelImageCount]ChannelConfig `yaml:"channels"`

	RectifyFunction string `yaml:"rectify_function"` // NONE, W2RG, 5B4AZ

	ColorizeBlueMin     byte `yaml:"colorize_blue_min"`
	ColorizeBlueMax     byte `yaml:"colorize_blue_max"`
	CloudsThreshold     byte `yaml:"clouds_threshold"`
	ColorizeEnabled     bool `yaml:"colorize_enabled"`

	OperationTimeSec int `yaml:"operation_time_sec"`

	ImagesDir string `yaml:"images_dir"`
	Quiet     bool   `yaml:"quiet"`
	FlipImages bool  `yaml:"flip_images"`
}

// Defaults returns the baseline configuration applied before any
// config file or flag override, matching the original mlrptrc's
// stock settings for Meteor-M2's downlink.
func Defaults() *Config {
	return &Config{
		CenterFreqHz: 137_100_000,
		SampleRateHz: 6_000_000,
		FilterBWHz:   140_000,
		TunerGain:    0,
		RRCOrder:     64,
		RRCAlpha:     0.6,
		CostasBandwidth: 0.02,
		PLLLockedThresh: 0.8,
		PSKMode:         "QPSK",
		SymbolRateHz:    72_000,
		InterpFactor:    4,
		Channels: [consts.ChannelImageCount]ChannelConfig{
			{APID: 64, Black: 2, White: 253},
			{APID: 65, Black: 2, White: 253},
			{APID: 66, Black: 2, White: 253},
		},
		RectifyFunction:  "NONE",
		ColorizeBlueMin:  20,
		ColorizeBlueMax:  240,
		CloudsThreshold:  220,
		OperationTimeSec: 900,
		ImagesDir:        defaultImagesDir(),
	}
}

func defaultImagesDir() string {
	if cache := os.Getenv("XDG_CACHE_HOME"); cache != "" {
		return cache + "/mlrpt"
	}
	home := os.Getenv("HOME")
	return home + "/.cache/mlrpt"
}

// Load reads a config file, auto-detecting format: files beginning
// with a YAML document marker or a top-level mapping are parsed as
// YAML; anything else falls back to the flat key=value format the
// original mlrptrc tooling used.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Defaults()
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "---") || looksLikeYAMLMapping(trimmed) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s as YAML: %w", path, err)
		}
		return cfg, nil
	}

	if err := loadFlat(cfg, data); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func looksLikeYAMLMapping(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Contains(line, ": ") || strings.HasSuffix(line, ":")
	}
	return false
}

// loadFlat parses "#"-commented key=value lines; unknown keys are
// warned about and ignored rather than treated as fatal, per spec's
// "unknown keys ignored with a warning" contract.
func loadFlat(cfg *Config, data []byte) error {
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := applyFlatKey(cfg, key, value); err != nil {
			fmt.Fprintf(os.Stderr, "config: warning: %v\n", err)
		}
	}
	return scanner.Err()
}

func applyFlatKey(cfg *Config, key, value string) error {
	switch key {
	case "center_freq_hz":
		return setUint64(&cfg.CenterFreqHz, value)
	case "sample_rate_hz":
		return setUint64(&cfg.SampleRateHz, value)
	case "filter_bw_hz":
		return setUint64(&cfg.FilterBWHz, value)
	case "tuner_gain":
		return setInt(&cfg.TunerGain, value)
	case "rrc_order":
		return setInt(&cfg.RRCOrder, value)
	case "rrc_alpha":
		return setFloat(&cfg.RRCAlpha, value)
	case "costas_bandwidth":
		return setFloat(&cfg.CostasBandwidth, value)
	case "pll_locked_threshold":
		return setFloat(&cfg.PLLLockedThresh, value)
	case "psk_mode":
		cfg.PSKMode = value
	case "symbol_rate_hz":
		return setFloat(&cfg.SymbolRateHz, value)
	case "interp_factor":
		return setInt(&cfg.InterpFactor, value)
	case "rectify_function":
		cfg.RectifyFunction = value
	case "colorize_enabled":
		cfg.ColorizeEnabled = value == "1" || strings.EqualFold(value, "true")
	case "operation_time_sec":
		return setInt(&cfg.OperationTimeSec, value)
	case "images_dir":
		cfg.ImagesDir = value
	case "quiet":
		cfg.Quiet = value == "1" || strings.EqualFold(value, "true")
	case "flip_images":
		cfg.FlipImages = value == "1" || strings.EqualFold(value, "true")
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func setUint64(dst *uint64, value string) error {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setInt(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// PSKModeValue resolves the PSKMode string into its enum, defaulting
// to QPSK for an unrecognized value.
func (c *Config) PSKModeValue() consts.PSKMode {
	switch strings.ToUpper(c.PSKMode) {
	case "DOQPSK":
		return consts.DOQPSK
	case "IDOQPSK":
		return consts.IDOQPSK
	default:
		return consts.QPSK
	}
}

// RectifyFunctionValue resolves the RectifyFunction string into its
// enum. Callers that need to reject an unrecognized value must check
// validRectifyFunctionName (or Validate) first - this defaults to
// RectifyNone rather than failing, since by the time Finish calls it
// Validate has already guaranteed the string is one of the known ones.
func (c *Config) RectifyFunctionValue() consts.RectifyFunction {
	switch strings.ToUpper(c.RectifyFunction) {
	case "W2RG":
		return consts.RectifyW2RG
	case "5B4AZ":
		return consts.Rectify5B4AZ
	default:
		return consts.RectifyNone
	}
}

// validRectifyFunctionName reports whether s names a recognized
// rectify function, checked against the raw config string rather than
// through RectifyFunctionValue, which silently defaults anything
// unrecognized to RectifyNone before Valid() could ever see it.
func validRectifyFunctionName(s string) bool {
	switch strings.ToUpper(s) {
	case "", "NONE", "W2RG", "5B4AZ":
		return true
	default:
		return false
	}
}

// Validate checks the invariants a session depends on before it opens
// any device. It never silently clamps a rejected value - the session
// refuses to start instead.
func (c *Config) Validate() error {
	if c.FilterBWHz < consts.MinBandwidthHz {
		return fmt.Errorf("config: filter_bw_hz %d below minimum %d", c.FilterBWHz, consts.MinBandwidthHz)
	}
	if c.SampleRateHz == 0 {
		return fmt.Errorf("config: sample_rate_hz must be nonzero")
	}
	if c.RRCAlpha <= 0 || c.RRCAlpha > 1 {
		return fmt.Errorf("config: rrc_alpha %f out of (0,1]", c.RRCAlpha)
	}
	if !validRectifyFunctionName(c.RectifyFunction) {
		return fmt.Errorf("config: rectify_function %q invalid", c.RectifyFunction)
	}
	for i, ch := range c.Channels {
		if ch.White <= ch.Black {
			return fmt.Errorf("config: channel %d white %d must exceed black %d", i, ch.White, ch.Black)
		}
	}
	if c.InterpFactor <= 0 {
		return fmt.Errorf("config: interp_factor must be positive")
	}
	return nil
}
