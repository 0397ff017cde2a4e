package audio

import (
	"testing"

	"github.com/gordonklaus/portaudio"
	"github.com/stretchr/testify/assert"
)

func TestTonesRange(t *testing.T) {
	tones := NewTones(4, 48000)
	out := make([][]float32, 4)
	for k := range out {
		out[k] = make([]float32, 256)
	}
	for block := 0; block < 100; block++ {
		tones.Process(out)
		for k := range out {
			for _, v := range out[k] {
				assert.True(t, v >= -1 && v <= 1)
			}
		}
	}
	for _, ph := range tones.phase {
		assert.True(t, ph >= 0 && ph < 1)
	}
}

func TestTonesFrequency(t *testing.T) {
	const rate = 44100
	tones := NewTones(2, rate)
	out := [][]float32{make([]float32, rate), make([]float32, rate)}
	tones.Process(out)

	// one second holds (k+1)*ToneBase cycles, two upward zero crossings each
	for k := range out {
		crossings := 0
		for i := 1; i < len(out[k]); i++ {
			if out[k][i-1] < 0 && out[k][i] >= 0 {
				crossings++
			}
		}
		assert.InDelta(t, ToneBase*float64(k+1), crossings, 1, "channel %d", k)
	}
}

func TestTonesContinuousAcrossBlocks(t *testing.T) {
	whole := NewTones(1, 48000)
	split := NewTones(1, 48000)
	a := [][]float32{make([]float32, 512)}
	b1 := [][]float32{make([]float32, 256)}
	b2 := [][]float32{make([]float32, 256)}
	whole.Process(a)
	split.Process(b1)
	split.Process(b2)
	assert.Equal(t, a[0][:256], b1[0])
	assert.Equal(t, a[0][256:], b2[0])
}

func TestTonesExtraOutputsUntouched(t *testing.T) {
	tones := NewTones(1, 48000)
	out := [][]float32{make([]float32, 8), {7, 7}}
	tones.Process(out)
	assert.Equal(t, []float32{7, 7}, out[1])
}

func TestSineTable(t *testing.T) {
	assert.Equal(t, float32(0), sineTable[0])
	assert.InDelta(t, 1, sineTable[toneTableSize/4], 1e-6)
	assert.InDelta(t, 0, sineTable[toneTableSize/2], 1e-3)
	assert.InDelta(t, -1, sineTable[3*toneTableSize/4], 1e-6)
}

func TestFitsRouter(t *testing.T) {
	d := &portaudio.DeviceInfo{MaxInputChannels: 4, MaxOutputChannels: 8}
	assert.True(t, FitsRouter(d, 4))
	assert.False(t, FitsRouter(d, 5))
	d.MaxOutputChannels = 7
	assert.False(t, FitsRouter(d, 4))
}
