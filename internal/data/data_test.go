package data

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1337, 1))
}

func TestMakeMoons_Noiseless(t *testing.T) {
	d := MakeMoons(100, 0, newRand())

	require.NoError(t, d.Validate())
	assert.Equal(t, 100, d.Len())
	assert.Equal(t, 2, d.Features())

	neg, pos := 0, 0
	for i, row := range d.X {
		if d.Y[i] < 0 {
			neg++
			// Upper moon lies on the unit circle with y >= 0.
			assert.InDelta(t, 1.0, math.Hypot(row[0], row[1]), 1e-9)
			assert.GreaterOrEqual(t, row[1], -1e-9)
		} else {
			pos++
			// Lower moon is centered at (1, 0.5).
			assert.InDelta(t, 1.0, math.Hypot(row[0]-1, row[1]-0.5), 1e-9)
			assert.LessOrEqual(t, row[1], 0.5+1e-9)
		}
	}
	assert.Equal(t, 50, neg)
	assert.Equal(t, 50, pos)
}

func TestMakeMoons_OddCount(t *testing.T) {
	d := MakeMoons(5, 0.1, newRand())
	require.NoError(t, d.Validate())

	pos := 0
	for _, y := range d.Y {
		if y > 0 {
			pos++
		}
	}
	assert.Equal(t, 3, pos)
}

func TestMakeMoons_Deterministic(t *testing.T) {
	a := MakeMoons(20, 0.1, newRand())
	b := MakeMoons(20, 0.1, newRand())
	assert.Equal(t, a, b)
}

func TestBatch(t *testing.T) {
	d := MakeMoons(30, 0.1, newRand())

	assert.Same(t, d, d.Batch(0, newRand()))
	assert.Same(t, d, d.Batch(30, newRand()))

	b := d.Batch(10, newRand())
	assert.Equal(t, 10, b.Len())
	require.NoError(t, b.Validate())

	seen := map[*float64]bool{}
	for _, row := range b.X {
		assert.False(t, seen[&row[0]], "sample drawn twice")
		seen[&row[0]] = true
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Dataset
	}{
		{"empty", Dataset{}},
		{"length mismatch", Dataset{X: [][]float64{{1}}, Y: []float64{1, -1}}},
		{"no features", Dataset{X: [][]float64{{}}, Y: []float64{1}}},
		{"ragged", Dataset{X: [][]float64{{1, 2}, {3}}, Y: []float64{1, -1}}},
		{"bad label", Dataset{X: [][]float64{{1}}, Y: []float64{0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.d.Validate())
		})
	}

	empty := Dataset{}
	assert.True(t, errors.Is(empty.Validate(), ErrEmpty))
}

func TestLoadCSV(t *testing.T) {
	input := "x1,x2,label\n0.5,-0.25,1\n1.5, 2,0\n-1,3,-1\n"

	d, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0.5, -0.25}, {1.5, 2}, {-1, 3}}, d.X)
	assert.Equal(t, []float64{1, -1, -1}, d.Y)
}

func TestLoadCSV_NoHeader(t *testing.T) {
	d, err := LoadCSV(strings.NewReader("1,2,1\n3,4,-1\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "a,b,label\n"},
		{"single column", "1\n2\n"},
		{"bad feature", "1,2,1\n3,x,1\n"},
		{"bad label", "1,2,yes\n"},
		{"ragged", "1,2,1\n3,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moons.csv")
	require.NoError(t, os.WriteFile(path, []byte("0.1,0.2,1\n0.3,0.4,0\n"), 0o600))

	d, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
