package audio

import "github.com/chewxy/math32"

const (
	toneTableSize = 16384
	// ToneBase is the frequency of channel 0; channel k plays (k+1)*ToneBase.
	ToneBase = 110.0
)

var sineTable = func() []float32 {
	t := make([]float32, toneTableSize)
	for i := range t {
		t[i] = math32.Sin(2 * math32.Pi * float32(i) / toneTableSize)
	}
	return t
}()

// Tones is a bank of table-lookup sine oscillators, one per channel, used
// as a test source for the router.
type Tones struct {
	step  []float32
	phase []float32
}

// NewTones tunes channel k to (k+1)*ToneBase Hz.
func NewTones(channels int, sampleRate float64) *Tones {
	t := &Tones{
		step:  make([]float32, channels),
		phase: make([]float32, channels),
	}
	for k := range t.step {
		t.step[k] = float32(ToneBase * float64(k+1) / sampleRate)
	}
	return t
}

// Process fills each output buffer with its channel's tone.
func (t *Tones) Process(out [][]float32) {
	for k, o := range out {
		if k >= len(t.step) {
			break
		}
		ph := t.phase[k]
		for i := range o {
			o[i] = sineTable[int(ph*toneTableSize)%toneTableSize]
			ph += t.step[k]
			if ph >= 1 {
				ph -= 1
			}
		}
		t.phase[k] = ph
	}
}
