package audio

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new Stream.
type Config struct {
	// BlockSize refers to the buffer size for each block
	BlockSize int
	// Channels is the number of input channels
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// Processor renders one block. out and foldback each hold Channels buffers.
type Processor interface {
	Process(in, out, foldback [][]float32) error
}

// Serve opens a duplex stream with Channels inputs and 2*Channels outputs and
// drives p from the host's audio callback until ctx is cancelled. Outputs
// [0, N) carry the routed mixes and [N, 2N) the foldback mixes.
func Serve(ctx context.Context, cfg *Config, p Processor) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("Error initializing portaudio: %v", err)
	}
	defer portaudio.Terminate()

	n := cfg.Channels
	var failed uint64
	callback := func(in, out [][]float32) {
		if err := p.Process(in, out[:n], out[n:]); err != nil {
			atomic.AddUint64(&failed, 1)
		}
	}

	stream, err := portaudio.OpenDefaultStream(
		n, 2*n, cfg.SampleRate, cfg.BlockSize, callback)
	if err != nil {
		return fmt.Errorf("Error opening stream: %v", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("Error starting stream: %v", err)
	}
	glog.Infof("audio: %d in, %d out at %v Hz, %d frames per block",
		n, 2*n, cfg.SampleRate, cfg.BlockSize)

	<-ctx.Done()

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("Error stopping stream: %v", err)
	}
	if f := atomic.LoadUint64(&failed); f > 0 {
		glog.Warningf("audio: %d blocks failed to render", f)
	}
	return nil
}

// Play opens an output-only stream with Channels outputs and renders t into
// it until ctx is cancelled.
func Play(ctx context.Context, cfg *Config, t *Tones) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("Error initializing portaudio: %v", err)
	}
	defer portaudio.Terminate()

	stream, err := portaudio.OpenDefaultStream(
		0, cfg.Channels, cfg.SampleRate, cfg.BlockSize, t.Process)
	if err != nil {
		return fmt.Errorf("Error opening stream: %v", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("Error starting stream: %v", err)
	}

	<-ctx.Done()
	return stream.Stop()
}
