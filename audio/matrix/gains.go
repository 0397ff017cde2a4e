package matrix

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"
)

// MaxSize is the largest supported number of streams.
const MaxSize = 16

var (
	// ErrSize is returned when a matrix is requested with an unsupported size.
	ErrSize = errors.New("matrix: size out of range")
	// ErrIndex is returned for a row or column outside [0, N).
	ErrIndex = errors.New("matrix: index out of range")
)

// Clamp limits a gain to [0, 1]. NaN maps to 0.
func Clamp(v float32) float32 {
	if v != v {
		return 0
	}
	return math32.Min(1, math32.Max(0, v))
}

// Gains is an NxN gain matrix stored row-major in one contiguous buffer.
// Rows are sources and columns are destinations.
type Gains struct {
	n     int
	cells []float32
}

// New returns a silent NxN matrix.
func New(n int) (*Gains, error) {
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrSize, n, MaxSize)
	}
	return &Gains{n: n, cells: make([]float32, n*n)}, nil
}

// MustNew is like New but panics on an invalid size.
func MustNew(n int) *Gains {
	g, err := New(n)
	if err != nil {
		panic(err)
	}
	return g
}

// Size is N.
func (g *Gains) Size() int { return g.n }

// Len is the number of cells, N*N.
func (g *Gains) Len() int { return len(g.cells) }

// Valid reports whether (row, col) addresses a cell.
func (g *Gains) Valid(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

func (g *Gains) index(row, col int) int {
	if !g.Valid(row, col) {
		panic(fmt.Sprintf("matrix: cell (%d, %d) outside %dx%d", row, col, g.n, g.n))
	}
	return row*g.n + col
}

// At returns the gain routing row into col.
func (g *Gains) At(row, col int) float32 {
	return g.cells[g.index(row, col)]
}

// Set stores a clamped gain for (row, col).
func (g *Gains) Set(row, col int, v float32) {
	g.cells[g.index(row, col)] = Clamp(v)
}

// SetAll replaces every cell from row-major values, clamping each one.
func (g *Gains) SetAll(values []float32) error {
	if len(values) != len(g.cells) {
		return fmt.Errorf("%w: got %d values, want %d", ErrSize, len(values), len(g.cells))
	}
	for i, v := range values {
		g.cells[i] = Clamp(v)
	}
	return nil
}

// Cells exposes the row-major backing slice. Callers must not write to it.
func (g *Gains) Cells() []float32 { return g.cells }

// CopyFrom overwrites g with src. Both must have the same size.
func (g *Gains) CopyFrom(src *Gains) {
	if src.n != g.n {
		panic(fmt.Sprintf("matrix: copy %dx%d into %dx%d", src.n, src.n, g.n, g.n))
	}
	copy(g.cells, src.cells)
}

// Clone returns a deep copy.
func (g *Gains) Clone() *Gains {
	c := &Gains{n: g.n, cells: make([]float32, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both matrices hold identical cells.
func (g *Gains) Equal(o *Gains) bool {
	if g.n != o.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Dense converts the matrix for rendering with gonum.
func (g *Gains) Dense() *mat.Dense {
	data := make([]float64, len(g.cells))
	for i, v := range g.cells {
		data[i] = float64(v)
	}
	return mat.NewDense(g.n, g.n, data)
}

// Float64s returns the cells widened to float64, row-major.
func (g *Gains) Float64s() []float64 {
	return g.Dense().RawMatrix().Data
}
