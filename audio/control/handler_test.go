package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peragwin/xmatrix/audio/matrix"
)

// recorder keeps every matrix it is handed.
type recorder struct {
	got []*matrix.Gains
}

func (r *recorder) Publish(g *matrix.Gains) {
	r.got = append(r.got, g.Clone())
}

func (r *recorder) last() *matrix.Gains {
	return r.got[len(r.got)-1]
}

func newHandler(t *testing.T, n int) (*Handler, *recorder) {
	ring, err := matrix.Ring(n)
	require.NoError(t, err)
	rec := &recorder{}
	return NewHandler(ring, rec), rec
}

func TestSetAbsolute(t *testing.T) {
	h, rec := newHandler(t, 2)

	require.NoError(t, h.SetAbsolute([]float32{0.5, -3, 2, 0.25}))
	require.Len(t, rec.got, 1)
	assert.Equal(t, []float32{0.5, 0, 1, 0.25}, rec.last().Cells())
	assert.Equal(t, []float32{0.5, 0, 1, 0.25}, h.Published().Cells())
}

func TestSetAbsoluteWrongCount(t *testing.T) {
	h, rec := newHandler(t, 2)
	before := h.Published()

	for _, values := range [][]float32{nil, {1, 1, 1}, {1, 1, 1, 1, 1}} {
		err := h.SetAbsolute(values)
		assert.True(t, errors.Is(err, ErrArgCount), "len=%d", len(values))
	}
	assert.Empty(t, rec.got)
	assert.True(t, before.Equal(h.Published()))
}

func TestSetSparsePatch(t *testing.T) {
	h, rec := newHandler(t, 3)
	require.NoError(t, h.SetAbsolute([]float32{
		0.1, 0.2, 0.3,
		0.4, 0.5, 0.6,
		0.7, 0.8, 0.9,
	}))
	prior := h.Published()

	require.NoError(t, h.SetSparse([]Cell{{Row: 2, Col: 0, Gain: 0}}))
	want := prior.Clone()
	want.Set(2, 0, 0)
	assert.True(t, want.Equal(rec.last()))
	assert.True(t, want.Equal(h.Published()))
}

func TestSetSparseClamps(t *testing.T) {
	h, rec := newHandler(t, 2)
	prior := h.Published()

	require.NoError(t, h.SetSparse([]Cell{{Row: 0, Col: 1, Gain: 2}, {Row: 1, Col: 1, Gain: -1}}))
	got := rec.last()
	assert.Equal(t, float32(1), got.At(0, 1))
	assert.Equal(t, float32(0), got.At(1, 1))
	assert.Equal(t, prior.At(1, 0), got.At(1, 0))
	assert.Equal(t, prior.At(0, 0), got.At(0, 0))
}

func TestSetSparseAllOrNothing(t *testing.T) {
	h, rec := newHandler(t, 2)
	before := h.Published()

	err := h.SetSparse([]Cell{
		{Row: 0, Col: 0, Gain: 1},
		{Row: 1, Col: 2, Gain: 1},
	})
	assert.True(t, errors.Is(err, ErrOutOfRange))
	err = h.SetSparse([]Cell{{Row: -1, Col: 0, Gain: 1}})
	assert.True(t, errors.Is(err, ErrOutOfRange))

	assert.Empty(t, rec.got)
	assert.True(t, before.Equal(h.Published()))
}

func TestSetSparsePatchesPublishedNotRamping(t *testing.T) {
	h, rec := newHandler(t, 2)
	require.NoError(t, h.SetAbsolute([]float32{0, 0, 0, 0}))
	require.NoError(t, h.SetSparse([]Cell{{Row: 0, Col: 0, Gain: 1}}))
	// the ring is gone even though the audio side may still be fading it out
	assert.Equal(t, []float32{1, 0, 0, 0}, rec.last().Cells())
}

func TestDecodeAbsolute(t *testing.T) {
	values, err := DecodeAbsolute([]interface{}{float32(0.5), float64(0.25), int32(1), int64(0)})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25, 1, 0}, values)

	_, err = DecodeAbsolute([]interface{}{float32(1), "loud"})
	assert.True(t, errors.Is(err, ErrArgType))
}

func TestDecodeSparse(t *testing.T) {
	cells, err := DecodeSparse([]interface{}{
		int32(0), int32(1), float32(2),
		int64(1), 0, float64(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 1, 2}, {1, 0, 0.5}}, cells)

	tests := []struct {
		name string
		args []interface{}
		want error
	}{
		{"short", []interface{}{int32(0), int32(1)}, ErrArgCount},
		{"long", []interface{}{int32(0), int32(1), float32(1), int32(0)}, ErrArgCount},
		{"float_row", []interface{}{float32(0), int32(1), float32(1)}, ErrArgType},
		{"string_col", []interface{}{int32(0), "1", float32(1)}, ErrArgType},
		{"int_gain", []interface{}{int32(0), int32(1), int32(1)}, ErrArgType},
		{"late_bad_triple", []interface{}{
			int32(0), int32(1), float32(1),
			int32(1), int32(0), true,
		}, ErrArgType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := DecodeSparse(tt.args)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Nil(t, cells)
		})
	}

	cells, err = DecodeSparse(nil)
	require.NoError(t, err)
	assert.Empty(t, cells)
}
