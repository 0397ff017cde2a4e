package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/peragwin/xmatrix/audio/matrix"
)

// Validation errors. A rejected operation leaves the published matrix as it
// was.
var (
	ErrArgCount   = errors.New("control: wrong number of arguments")
	ErrArgType    = errors.New("control: wrong argument type")
	ErrOutOfRange = errors.New("control: row or column out of range")
)

// Publisher receives complete candidate matrices.
type Publisher interface {
	Publish(candidate *matrix.Gains)
}

// Cell is one sparse update.
type Cell struct {
	Row, Col int
	Gain     float32
}

// Handler validates control operations and publishes the resulting
// absolute matrix. It is safe for concurrent use by several transports.
type Handler struct {
	mu        sync.Mutex
	n         int
	published *matrix.Gains
	pub       Publisher
}

// NewHandler starts from initial, which should match what the audio side
// is already playing.
func NewHandler(initial *matrix.Gains, pub Publisher) *Handler {
	return &Handler{
		n:         initial.Size(),
		published: initial.Clone(),
		pub:       pub,
	}
}

// Size is N.
func (h *Handler) Size() int { return h.n }

// Published returns a copy of the last published matrix.
func (h *Handler) Published() *matrix.Gains {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.published.Clone()
}

// SetAbsolute replaces the whole matrix with N*N row-major gains.
func (h *Handler) SetAbsolute(values []float32) error {
	if len(values) != h.n*h.n {
		return fmt.Errorf("%w: got %d gains, want %d", ErrArgCount, len(values), h.n*h.n)
	}
	candidate := matrix.MustNew(h.n)
	if err := candidate.SetAll(values); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.commit(candidate)
	return nil
}

// SetSparse patches individual cells of the last published matrix. Either
// every cell is applied or none is.
func (h *Handler) SetSparse(cells []Cell) error {
	for i, c := range cells {
		if c.Row < 0 || c.Row >= h.n || c.Col < 0 || c.Col >= h.n {
			return fmt.Errorf("%w: cell %d is (%d, %d), size %d",
				ErrOutOfRange, i, c.Row, c.Col, h.n)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	candidate := h.published.Clone()
	for _, c := range cells {
		candidate.Set(c.Row, c.Col, c.Gain)
	}
	h.commit(candidate)
	return nil
}

func (h *Handler) commit(candidate *matrix.Gains) {
	h.published = candidate
	h.pub.Publish(candidate)
}

// DecodeAbsolute converts transport arguments into gains. Any numeric type
// is accepted.
func DecodeAbsolute(args []interface{}) ([]float32, error) {
	values := make([]float32, len(args))
	for i, a := range args {
		v, ok := asNumber(a)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d is %T", ErrArgType, i, a)
		}
		values[i] = v
	}
	return values, nil
}

// DecodeSparse converts (row, column, gain) triples. Rows and columns must
// be integers and gains floats.
func DecodeSparse(args []interface{}) ([]Cell, error) {
	if len(args)%3 != 0 {
		return nil, fmt.Errorf("%w: %d is not a multiple of 3", ErrArgCount, len(args))
	}
	cells := make([]Cell, 0, len(args)/3)
	for i := 0; i < len(args); i += 3 {
		row, ok := asInt(args[i])
		if !ok {
			return nil, fmt.Errorf("%w: row of triple %d is %T", ErrArgType, i/3, args[i])
		}
		col, ok := asInt(args[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: column of triple %d is %T", ErrArgType, i/3, args[i+1])
		}
		gain, ok := asFloat(args[i+2])
		if !ok {
			return nil, fmt.Errorf("%w: gain of triple %d is %T", ErrArgType, i/3, args[i+2])
		}
		cells = append(cells, Cell{Row: row, Col: col, Gain: gain})
	}
	return cells, nil
}

func asInt(a interface{}) (int, bool) {
	switch v := a.(type) {
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func asFloat(a interface{}) (float32, bool) {
	switch v := a.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	}
	return 0, false
}

func asNumber(a interface{}) (float32, bool) {
	if v, ok := asFloat(a); ok {
		return v, true
	}
	if v, ok := asInt(a); ok {
		return float32(v), true
	}
	return 0, false
}
