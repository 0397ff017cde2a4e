package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/peragwin/xmatrix/audio"
)

var (
	channels   = flag.Int("channels", 2, "number of tone channels")
	sampleRate = flag.Float64("rate", 48000, "sample rate")
	blockSize  = flag.Int("block", 256, "frames per block")
)

// tones plays channel k at (k+1)*110 Hz, a source for checking routes.
func main() {
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	cfg := &audio.Config{BlockSize: *blockSize, Channels: *channels, SampleRate: *sampleRate}
	glog.Infof("playing %d tones from %v Hz", cfg.Channels, audio.ToneBase)
	if err := audio.Play(ctx, cfg, audio.NewTones(cfg.Channels, cfg.SampleRate)); err != nil {
		glog.Fatal(err)
	}
}
