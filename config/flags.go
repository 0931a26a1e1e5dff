package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides a session applies on top of
// its loaded config file.
type Flags struct {
	ConfigPath   string
	FreqKHz      float64
	FreqSet      bool
	Rectify      string
	RectifySet   bool
	Window       string
	DurationMin  int
	DurationSet  bool
	Quiet        bool
	FlipImages   bool
	Help         bool
	Version      bool
}

// ParseFlags parses argv (excluding argv[0]) into a Flags value. Short
// forms mirror the original mlrpt CLI; pflag also accepts the
// equivalent GNU-style long forms.
func ParseFlags(args []string) (*Flags, error) {
	fs := pflag.NewFlagSet("mlrpt", pflag.ContinueOnError)

	configPath := fs.StringP("config", "c", "", "path to config file")
	freqKHz := fs.Float64P("freq-khz", "f", 0, "override center frequency, kHz")
	rectify := fs.StringP("rectify", "r", "", "override rectification function: NONE, W2RG, 5B4AZ")
	window := fs.StringP("window", "s", "", "UTC operation window, hhmm-hhmm (parsed but not applied)")
	duration := fs.IntP("duration", "t", 0, "operation duration, minutes")
	quiet := fs.BoolP("quiet", "q", false, "suppress non-error output")
	flip := fs.BoolP("flip", "i", false, "flip output images")
	help := fs.BoolP("help", "h", false, "show usage and exit")
	version := fs.BoolP("version", "v", false, "show version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parsing flags: %w", err)
	}
	if *help {
		fs.PrintDefaults()
	}

	return &Flags{
		ConfigPath:  *configPath,
		FreqKHz:     *freqKHz,
		FreqSet:     fs.Changed("freq-khz"),
		Rectify:     *rectify,
		RectifySet:  fs.Changed("rectify"),
		Window:      *window,
		DurationMin: *duration,
		DurationSet: fs.Changed("duration"),
		Quiet:       *quiet,
		FlipImages:  *flip,
		Help:        *help,
		Version:     *version,
	}, nil
}

// Apply overlays the parsed flags onto cfg, overriding whatever the
// config file set.
func (f *Flags) Apply(cfg *Config) {
	if f.FreqSet {
		cfg.CenterFreqHz = uint64(f.FreqKHz * 1000)
	}
	if f.RectifySet {
		cfg.RectifyFunction = f.Rectify
	}
	if f.DurationSet {
		cfg.OperationTimeSec = f.DurationMin * 60
	}
	if f.Quiet {
		cfg.Quiet = true
	}
	if f.FlipImages {
		cfg.FlipImages = true
	}
}
