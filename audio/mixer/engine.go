package mixer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/peragwin/xmatrix/audio/handoff"
	"github.com/peragwin/xmatrix/audio/matrix"
)

// DefaultRamp is the crossfade time used when Config.Ramp is zero.
const DefaultRamp = 100 * time.Millisecond

// ErrChannels is returned by Process when fewer than N buffers are supplied
// for inputs, outputs or foldback.
var ErrChannels = errors.New("mixer: wrong number of channel buffers")

// Config sets up an Engine. Everything here is fixed for its lifetime.
type Config struct {
	// Channels is the matrix size N.
	Channels int
	// SampleRate is the host sample rate (Fs).
	SampleRate float64
	// Ramp is the crossfade duration. Negative disables fading.
	Ramp time.Duration
	// Initial is the routing in effect from the first block. Ring if nil.
	Initial *matrix.Gains
}

// Stats counts audio-side events. All fields are read atomically.
type Stats struct {
	Blocks    uint64
	Adoptions uint64
}

// Engine is the routing context shared by the audio callback and the
// control plane. The ramp, scratch and snapshot storage are allocated once;
// Process does not allocate.
type Engine struct {
	n    int
	ramp *matrix.Ramp
	slot *handoff.Slot

	// audio side only
	adopt *matrix.Gains

	snapMu sync.Mutex
	snap   *matrix.Gains

	blocks    uint64
	adoptions uint64
}

// New builds an Engine from cfg.
func New(cfg *Config) (*Engine, error) {
	initial := cfg.Initial
	if initial == nil {
		ring, err := matrix.Ring(cfg.Channels)
		if err != nil {
			return nil, err
		}
		initial = ring
	}
	if initial.Size() != cfg.Channels {
		return nil, fmt.Errorf("%w: initial matrix is %dx%d, want %d channels",
			matrix.ErrSize, initial.Size(), initial.Size(), cfg.Channels)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("mixer: invalid sample rate %v", cfg.SampleRate)
	}
	ramp := cfg.Ramp
	if ramp == 0 {
		ramp = DefaultRamp
	}

	slot, err := handoff.NewSlot(cfg.Channels)
	if err != nil {
		return nil, err
	}
	return &Engine{
		n:     cfg.Channels,
		ramp:  matrix.NewRamp(initial, matrix.Samples(ramp, cfg.SampleRate)),
		slot:  slot,
		adopt: matrix.MustNew(cfg.Channels),
		snap:  initial.Clone(),
	}, nil
}

// Channels is N.
func (e *Engine) Channels() int { return e.n }

// RampSamples is the crossfade length in samples.
func (e *Engine) RampSamples() int { return e.ramp.Length() }

// Publish hands a complete matrix to the audio side. It is the control
// plane's only way in and may block briefly.
func (e *Engine) Publish(candidate *matrix.Gains) {
	e.slot.Publish(candidate)
}

// Process renders one block. in holds N input buffers, out receives the N
// routed mixes and foldback the N mix-minus sums. All buffers share the
// length of in[0].
func (e *Engine) Process(in, out, foldback [][]float32) error {
	n := e.n
	if len(in) < n || len(out) < n || len(foldback) < n {
		return ErrChannels
	}

	if e.slot.TryAdopt(e.adopt) {
		e.ramp.Start(e.adopt)
		atomic.AddUint64(&e.adoptions, 1)
	}

	frames := len(in[0])
	for c := 0; c < n; c++ {
		o := out[c][:frames]
		for i := range o {
			o[i] = 0
		}
		for r := 0; r < n; r++ {
			x := in[r][:frames]
			cell := r*n + c
			for i := range o {
				o[i] += x[i] * e.ramp.Advance(cell)
			}
		}
	}

	for c := 0; c < n; c++ {
		f := foldback[c][:frames]
		for i := range f {
			f[i] = 0
		}
		for r := 0; r < n; r++ {
			if r == c {
				continue
			}
			x := in[r][:frames]
			for i := range f {
				f[i] += x[i]
			}
		}
	}

	if e.snapMu.TryLock() {
		e.ramp.CopyCurrent(e.snap)
		e.snapMu.Unlock()
	}
	atomic.AddUint64(&e.blocks, 1)
	return nil
}

// Snapshot copies the gains applied at the end of a recent block into dst.
// It is safe to call from any goroutine.
func (e *Engine) Snapshot(dst *matrix.Gains) {
	e.snapMu.Lock()
	dst.CopyFrom(e.snap)
	e.snapMu.Unlock()
}

// Stats returns the audio-side counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Blocks:    atomic.LoadUint64(&e.blocks),
		Adoptions: atomic.LoadUint64(&e.adoptions),
	}
}
