// Command mlrpt receives and decodes a Meteor-M2 LRPT downlink,
// writing channel and composite images once the session ends.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dvdesolve/mlrpt/config"
	"github.com/dvdesolve/mlrpt/imagewriter"
	"github.com/dvdesolve/mlrpt/sdr"
	"github.com/dvdesolve/mlrpt/session"
	"github.com/dvdesolve/mlrpt/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Printf("mlrpt: %v", err)
		return -1
	}
	if flags.Help {
		return 0
	}
	if flags.Version {
		log.Println("mlrpt (dvdesolve/mlrpt)")
		return 0
	}

	cfg := config.Defaults()
	if flags.ConfigPath != "" {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			log.Printf("mlrpt: %v", err)
			return -1
		}
		cfg = loaded
	}
	flags.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Printf("mlrpt: %v", err)
		return -1
	}

	dev, err := sdr.OpenHackRF()
	if err != nil {
		log.Printf("mlrpt: opening device: %v", err)
		return -1
	}

	ctx, cancel := utils.SignalContext(context.Background())
	defer cancel()

	sess := session.New(cfg, dev)
	defer sess.Close()

	if !cfg.Quiet {
		log.Printf("arming: center %d Hz, sample rate %d Hz, operation time %ds",
			cfg.CenterFreqHz, cfg.SampleRateHz, cfg.OperationTimeSec)
	}

	result, err := sess.Run(ctx)
	if err != nil {
		log.Printf("mlrpt: %v", err)
		return -1
	}

	if !cfg.Quiet {
		log.Printf("decoding finished: %d/%d frames ok (%.1f%%), %d packets, %d sync losses, %d packet gaps",
			result.Stats.FramesOK, result.Stats.FramesTotal, result.Stats.SignalQualityPercent(),
			result.Stats.PacketsTotal, result.Stats.SyncLosses, result.Stats.PacketGaps)
	}

	written, err := sess.Finish(result, cfg.ImagesDir, time.Now().UTC(), imagewriter.FormatJPEG, 90)
	if err != nil {
		log.Printf("mlrpt: writing images: %v", err)
		return -1
	}
	for _, path := range written {
		log.Printf("wrote %s", path)
	}

	return 0
}
