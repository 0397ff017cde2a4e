package matrix

import "time"

// Samples converts a ramp duration to a whole number of samples.
func Samples(d time.Duration, sampleRate float64) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(d.Seconds()*sampleRate + 0.5)
}

// Ramp holds the gain actually applied to audio and fades it linearly
// toward the most recent target. It is owned by the audio thread.
type Ramp struct {
	n      int
	length int

	current   []float32
	target    []float32
	increment []float32
	// remaining counts samples left in each cell's ramp; the cell snaps to
	// target when it reaches zero so convergence never exceeds length.
	remaining []int32
}

// NewRamp seeds every cell at its initial gain, already settled.
func NewRamp(initial *Gains, length int) *Ramp {
	if length < 0 {
		length = 0
	}
	r := &Ramp{
		n:         initial.n,
		length:    length,
		current:   make([]float32, len(initial.cells)),
		target:    make([]float32, len(initial.cells)),
		increment: make([]float32, len(initial.cells)),
		remaining: make([]int32, len(initial.cells)),
	}
	copy(r.current, initial.cells)
	copy(r.target, initial.cells)
	return r
}

// Size is N.
func (r *Ramp) Size() int { return r.n }

// Length is the ramp duration in samples.
func (r *Ramp) Length() int { return r.length }

// Start begins fading every cell from wherever it is now toward targets.
// A ramp already in flight is replaced, not stacked.
func (r *Ramp) Start(targets *Gains) {
	if targets.n != r.n {
		panic("matrix: ramp target size mismatch")
	}
	for i, t := range targets.cells {
		r.target[i] = t
		delta := t - r.current[i]
		if r.length == 0 || delta == 0 {
			r.current[i] = t
			r.increment[i] = 0
			r.remaining[i] = 0
			continue
		}
		inc := delta / float32(r.length)
		if inc == 0 {
			// too small to represent per sample
			r.current[i] = t
			r.increment[i] = 0
			r.remaining[i] = 0
			continue
		}
		r.increment[i] = inc
		r.remaining[i] = int32(r.length)
	}
}

// Advance moves cell i one sample toward its target and returns the gain
// to apply for that sample.
func (r *Ramp) Advance(i int) float32 {
	c, t := r.current[i], r.target[i]
	if c == t {
		return c
	}
	inc := r.increment[i]
	c += inc
	r.remaining[i]--
	if (inc < 0 && c <= t) || (inc >= 0 && c >= t) || r.remaining[i] <= 0 {
		c = t
		r.remaining[i] = 0
	}
	r.current[i] = c
	return c
}

// AdvanceAll moves every cell one sample.
func (r *Ramp) AdvanceAll() {
	for i := range r.current {
		r.Advance(i)
	}
}

// Ramping reports whether any cell is still moving.
func (r *Ramp) Ramping() bool {
	for i := range r.current {
		if r.current[i] != r.target[i] {
			return true
		}
	}
	return false
}

// Current is the gain being applied at (row, col).
func (r *Ramp) Current(row, col int) float32 {
	return r.current[r.index(row, col)]
}

// Target is the gain (row, col) is fading toward.
func (r *Ramp) Target(row, col int) float32 {
	return r.target[r.index(row, col)]
}

// Increment is the per-sample step of (row, col).
func (r *Ramp) Increment(row, col int) float32 {
	return r.increment[r.index(row, col)]
}

// CopyCurrent writes the applied gains into dst.
func (r *Ramp) CopyCurrent(dst *Gains) {
	copy(dst.cells, r.current)
}

func (r *Ramp) index(row, col int) int {
	if row < 0 || row >= r.n || col < 0 || col >= r.n {
		panic("matrix: ramp cell out of range")
	}
	return row*r.n + col
}
