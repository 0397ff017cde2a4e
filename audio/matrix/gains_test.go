package matrix

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{2, 1},
		{math32.Inf(1), 1},
		{math32.Inf(-1), 0},
		{math32.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.in), "Clamp(%v)", tt.in)
	}
}

func TestNewSize(t *testing.T) {
	for _, n := range []int{0, -1, MaxSize + 1} {
		_, err := New(n)
		assert.True(t, errors.Is(err, ErrSize), "n=%d", n)
	}

	g, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 9, g.Len())
	for _, v := range g.Cells() {
		assert.Zero(t, v)
	}
}

func TestGainsIndexing(t *testing.T) {
	g := MustNew(3)
	g.Set(1, 2, 0.5)
	g.Set(2, 0, 7)

	assert.Equal(t, float32(0.5), g.At(1, 2))
	assert.Equal(t, float32(1), g.At(2, 0))
	assert.Equal(t, float32(0.5), g.Cells()[1*3+2])

	assert.True(t, g.Valid(2, 2))
	assert.False(t, g.Valid(3, 0))
	assert.False(t, g.Valid(0, -1))
	assert.Panics(t, func() { g.At(3, 0) })
	assert.Panics(t, func() { g.Set(0, 3, 1) })
}

func TestGainsSetAll(t *testing.T) {
	g := MustNew(2)
	require.NoError(t, g.SetAll([]float32{-1, 0.5, 2, 1}))
	assert.Equal(t, []float32{0, 0.5, 1, 1}, g.Cells())

	err := g.SetAll([]float32{1, 2, 3})
	assert.Error(t, err)
	assert.Equal(t, []float32{0, 0.5, 1, 1}, g.Cells())
}

func TestGainsCloneEqual(t *testing.T) {
	g := MustNew(2)
	g.Set(0, 1, 1)
	c := g.Clone()
	assert.True(t, g.Equal(c))

	c.Set(0, 1, 0.25)
	assert.False(t, g.Equal(c))
	assert.Equal(t, float32(1), g.At(0, 1))

	g.CopyFrom(c)
	assert.True(t, g.Equal(c))

	assert.False(t, g.Equal(MustNew(3)))
	assert.Panics(t, func() { g.CopyFrom(MustNew(3)) })
}

func TestGainsDense(t *testing.T) {
	g := MustNew(2)
	g.Set(1, 0, 0.5)
	d := g.Dense()
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.5, d.At(1, 0))
	assert.Equal(t, []float64{0, 0, 0.5, 0}, g.Float64s())
}

func TestTopologies(t *testing.T) {
	ring, err := Topology("ring", 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{
		0, 1, 0,
		0, 0, 1,
		1, 0, 0,
	}, ring.Cells())

	star, err := Topology("star", 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{
		0, 1, 1,
		1, 0, 0,
		1, 0, 0,
	}, star.Cells())

	full, err := Topology("full", 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 1, 0}, full.Cells())

	id, err := Topology("identity", 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0, 1}, id.Cells())

	silent, err := Topology("silent", 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0}, silent.Cells())

	_, err = Topology("mesh", 2)
	assert.True(t, errors.Is(err, ErrTopology))
	_, err = Topology("ring", 0)
	assert.True(t, errors.Is(err, ErrSize))

	assert.Equal(t, []string{"full", "identity", "ring", "silent", "star"}, Topologies())
}
