package autodiff_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/autodiff/ops"
)

// TestBackward_ConcreteScenario checks f = (a*b) * (a+b) at a=-2, b=3.
func TestBackward_ConcreteScenario(t *testing.T) {
	a := autodiff.New(-2)
	b := autodiff.New(3)
	d := a.Mul(b)
	e := a.Add(b)
	f := d.Mul(e)

	assert.Equal(t, -6.0, d.Data())
	assert.Equal(t, 1.0, e.Data())
	assert.Equal(t, -6.0, f.Data())

	f.Backward()

	assert.Equal(t, 1.0, f.Grad())
	assert.Equal(t, -3.0, a.Grad())
	assert.Equal(t, -8.0, b.Grad())
}

func TestBackward_Primitives(t *testing.T) {
	t.Run("mul", func(t *testing.T) {
		for _, tc := range [][2]float64{{2, 3}, {-1.5, 4}, {0, 7}} {
			a, b := autodiff.New(tc[0]), autodiff.New(tc[1])
			a.Mul(b).Backward()
			assert.Equal(t, tc[1], a.Grad())
			assert.Equal(t, tc[0], b.Grad())
		}
	})

	t.Run("add", func(t *testing.T) {
		a, b := autodiff.New(1.25), autodiff.New(-8)
		out := a.Add(b)
		out.Backward()
		assert.Equal(t, -6.75, out.Data())
		assert.Equal(t, 1.0, a.Grad())
		assert.Equal(t, 1.0, b.Grad())
	})

	t.Run("pow", func(t *testing.T) {
		tests := []struct{ a, k float64 }{
			{3, 2}, {2, 3}, {-2, 3}, {4, -1}, {2.5, 0.5}, {1.7, -2.3}, {5, 0},
		}
		for _, tt := range tests {
			a := autodiff.New(tt.a)
			out := a.Pow(tt.k)
			out.Backward()
			assert.InDelta(t, math.Pow(tt.a, tt.k), out.Data(), 1e-12)
			assert.InDelta(t, tt.k*math.Pow(tt.a, tt.k-1), a.Grad(), 1e-12, "a=%v k=%v", tt.a, tt.k)
		}
	})

	t.Run("relu", func(t *testing.T) {
		tests := []struct{ in, wantOut, wantGrad float64 }{
			{3, 3, 1}, {-3, 0, 0}, {0, 0, 0}, {1e-9, 1e-9, 1},
		}
		for _, tt := range tests {
			x := autodiff.New(tt.in)
			y := x.ReLU()
			y.Backward()
			assert.Equal(t, tt.wantOut, y.Data())
			assert.Equal(t, tt.wantGrad, x.Grad(), "relu(%v)", tt.in)
		}
	})
}

// TestBackward_ReLUAtZero checks that an input of exactly zero blocks the gradient.
func TestBackward_ReLUAtZero(t *testing.T) {
	x := autodiff.New(0.0)
	y := x.ReLU()
	y.Backward()
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, 1.0, y.Grad())
}

// TestBackward_SharedSubgraph checks contributions through two consumers are summed.
func TestBackward_SharedSubgraph(t *testing.T) {
	// d1 = c², d2 = 4c, so droot/dc = 2c + 4 = 7 at c = 1.5.
	c := autodiff.New(1.5)
	d1 := c.Pow(2)
	d2 := c.Mul(autodiff.New(4))
	root := d1.Add(d2)

	root.Backward()

	assert.InDelta(t, 7.0, c.Grad(), 1e-12)
}

// TestBackward_SameOperandTwice checks x*x and x+x count both operand slots.
func TestBackward_SameOperandTwice(t *testing.T) {
	x := autodiff.New(3)
	x.Mul(x).Backward()
	assert.Equal(t, 6.0, x.Grad())

	y := autodiff.New(3)
	y.Add(y).Backward()
	assert.Equal(t, 2.0, y.Grad())
}

func TestBackward_Diamond(t *testing.T) {
	// a feeds b and c, both feed d: a visited once, gradient summed over both paths.
	a := autodiff.New(2)
	b := a.Mul(autodiff.New(3))
	c := a.Pow(2)
	d := b.Mul(c) // d = 3a * a² = 3a³, dd/da = 9a² = 36

	d.Backward()

	assert.InDelta(t, 24.0, d.Data(), 1e-12)
	assert.InDelta(t, 36.0, a.Grad(), 1e-12)
	assert.Len(t, autodiff.TopoSort(d), 5)
}

func TestBackward_Leaf(t *testing.T) {
	x := autodiff.New(42)
	x.Backward()
	assert.Equal(t, 1.0, x.Grad())
	assert.Equal(t, 42.0, x.Data())
}

// TestBackward_Accumulates checks repeated passes sum until reset.
func TestBackward_Accumulates(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(5)
	out := a.Mul(b)

	out.Backward()
	out.Backward()
	assert.Equal(t, 10.0, a.Grad())
	assert.Equal(t, 4.0, b.Grad())

	autodiff.ZeroGrads(a, b, out)
	out.Backward()
	assert.Equal(t, 5.0, a.Grad())
	assert.Equal(t, 2.0, b.Grad())

	a.ZeroGrad()
	assert.Equal(t, 0.0, a.Grad())
}

func TestBackward_DataUnchanged(t *testing.T) {
	a := autodiff.New(-1.5)
	b := autodiff.New(0.25)
	out := a.Mul(b).Add(a.Pow(3)).ReLU().Add(b.Div(a))

	nodes := autodiff.TopoSort(out)
	before := make([]float64, len(nodes))
	for i, n := range nodes {
		before[i] = n.Data()
	}

	for range 3 {
		out.Backward()
	}

	for i, n := range nodes {
		assert.Equal(t, before[i], n.Data())
	}
}

func TestDerivedOps(t *testing.T) {
	x := autodiff.New(4)

	tests := []struct {
		name     string
		build    func() *autodiff.Value
		wantData float64
		wantGrad float64
	}{
		{"neg", func() *autodiff.Value { return x.Neg() }, -4, -1},
		{"sub", func() *autodiff.Value { return x.Sub(autodiff.New(1)) }, 3, 1},
		{"sub reflected", func() *autodiff.Value { return autodiff.Sub(10, x) }, 6, -1},
		{"add reflected", func() *autodiff.Value { return autodiff.Add(2.5, x) }, 6.5, 1},
		{"mul reflected", func() *autodiff.Value { return autodiff.Mul(3, x) }, 12, 3},
		{"div", func() *autodiff.Value { return x.Div(autodiff.New(2)) }, 2, 0.5},
		{"div scalar", func() *autodiff.Value { return autodiff.Div(x, 8.0) }, 0.5, 0.125},
		{"div reflected", func() *autodiff.Value { return autodiff.Div(2, x) }, 0.5, -0.125},
		{"pow func", func() *autodiff.Value { return autodiff.Pow(x, 2) }, 16, 8},
		{"relu func", func() *autodiff.Value { return autodiff.ReLU(x) }, 4, 1},
		{"neg func", func() *autodiff.Value { return autodiff.Neg(x) }, -4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x.ZeroGrad()
			out := tt.build()
			out.Backward()
			assert.InDelta(t, tt.wantData, out.Data(), 1e-12)
			assert.InDelta(t, tt.wantGrad, x.Grad(), 1e-12)
		})
	}
}

func TestDerivedOps_Composition(t *testing.T) {
	// Derived operations are built from the four primitive rules only.
	x := autodiff.New(4)
	kinds := map[ops.Kind]bool{}
	for _, n := range autodiff.TopoSort(autodiff.Div(1, x.Sub(autodiff.New(2)).Neg())) {
		kinds[n.Op().Kind()] = true
	}
	assert.Equal(t, map[ops.Kind]bool{
		ops.KindLeaf: true,
		ops.KindAdd:  true,
		ops.KindMul:  true,
		ops.KindPow:  true,
	}, kinds)
}

func TestLift(t *testing.T) {
	v := autodiff.New(1)
	assert.Same(t, v, autodiff.Lift(v))

	assert.Equal(t, 2.5, autodiff.Lift(2.5).Data())
	assert.Equal(t, 3.0, autodiff.Lift(3).Data())
	assert.Equal(t, 0.5, autodiff.Lift(float32(0.5)).Data())
	assert.True(t, autodiff.Lift(7).IsLeaf())

	var nilValue *autodiff.Value
	assert.Panics(t, func() { autodiff.Lift(nilValue) })
}

func TestSum(t *testing.T) {
	xs := []*autodiff.Value{autodiff.New(1), autodiff.New(2), autodiff.New(3)}
	s := autodiff.Sum(0.5, xs...)
	s.Backward()

	assert.Equal(t, 6.5, s.Data())
	for _, x := range xs {
		assert.Equal(t, 1.0, x.Grad())
	}

	start := autodiff.New(1)
	assert.Same(t, start, autodiff.Sum(start))
}

func TestPow_InvalidExponent(t *testing.T) {
	for _, k := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		x := autodiff.New(2)
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "exponent %v should panic", k)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, autodiff.ErrInvalidExponent))
				assert.Contains(t, err.Error(), "pow:")
			}()
			x.Pow(k)
		}()
	}
}

func TestSetData(t *testing.T) {
	w := autodiff.New(1)
	w.SetData(0.5)
	assert.Equal(t, 0.5, w.Data())

	out := w.Mul(autodiff.New(2))
	assert.Panics(t, func() { out.SetData(3) })
}

func TestValue_Accessors(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(3)
	out := a.Mul(b)

	assert.True(t, a.IsLeaf())
	assert.False(t, out.IsLeaf())
	assert.Equal(t, "", a.Label())
	assert.Equal(t, "*", out.Label())
	assert.Equal(t, "**2", a.Pow(2).Label())
	assert.Equal(t, "relu", a.ReLU().Label())
	assert.Equal(t, "+", a.Add(b).Label())
	assert.Equal(t, []*autodiff.Value{a, b}, out.Operands())
	assert.Equal(t, ops.KindMul, out.Op().Kind())

	out.Backward()
	assert.Equal(t, "Value(data=6, grad=1)", out.String())
	assert.Equal(t, "Value(data=2, grad=3)", a.String())
}

func TestTopoSort_Order(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := range 20 {
		root, _ := randomGraph(rng, 40)
		order := autodiff.TopoSort(root)

		index := make(map[*autodiff.Value]int, len(order))
		for i, n := range order {
			_, dup := index[n]
			require.False(t, dup, "trial %d: node listed twice", trial)
			index[n] = i
		}

		assert.Same(t, root, order[len(order)-1])
		for i, n := range order {
			for _, o := range n.Operands() {
				j, ok := index[o]
				require.True(t, ok, "trial %d: operand missing from order", trial)
				assert.Less(t, j, i, "trial %d: operand after consumer", trial)
			}
		}
	}
}

func TestTopoSort_Leaf(t *testing.T) {
	x := autodiff.New(1)
	assert.Equal(t, []*autodiff.Value{x}, autodiff.TopoSort(x))
}

// TestBackward_DeepChain checks long chains do not exhaust the stack.
func TestBackward_DeepChain(t *testing.T) {
	x := autodiff.New(1)
	acc := x
	const depth = 200_000
	for range depth {
		acc = acc.Add(x)
	}
	acc.Backward()

	assert.Equal(t, float64(depth+1), acc.Data())
	assert.Equal(t, float64(depth+1), x.Grad())
}

// randomGraph builds a random DAG over a few leaves, reusing earlier nodes as operands.
func randomGraph(rng *rand.Rand, size int) (*autodiff.Value, []*autodiff.Value) {
	leaves := make([]*autodiff.Value, 3)
	for i := range leaves {
		leaves[i] = autodiff.New(rng.Float64()*2 + 0.5)
	}
	pool := append([]*autodiff.Value{}, leaves...)

	for range size {
		a := pool[rng.IntN(len(pool))]
		b := pool[rng.IntN(len(pool))]
		var n *autodiff.Value
		switch rng.IntN(4) {
		case 0:
			n = a.Add(b)
		case 1:
			n = a.Mul(b)
		case 2:
			n = a.Pow(2)
		default:
			n = a.ReLU()
		}
		pool = append(pool, n)
	}

	return pool[len(pool)-1], leaves
}
