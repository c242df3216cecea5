// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/grad/autodiff"
)

// TestPublicAPI runs the a=-2, b=3 example through the public package.
func TestPublicAPI(t *testing.T) {
	a := autodiff.New(-2)
	b := autodiff.New(3)
	d := autodiff.Mul(a, b)
	e := autodiff.Add(a, b)
	f := autodiff.Mul(d, e)
	f.Backward()

	assert.InDelta(t, -6.0, f.Data(), 1e-12)
	assert.InDelta(t, -3.0, a.Grad(), 1e-12)
	assert.InDelta(t, -8.0, b.Grad(), 1e-12)
	assert.Equal(t, autodiff.KindMul, f.Op().Kind())

	order := autodiff.TopoSort(f)
	require.Len(t, order, 5)
	assert.Same(t, f, order[len(order)-1])

	autodiff.ZeroGrads(order...)
	assert.Zero(t, a.Grad())
}

func TestPublicAPI_Coercion(t *testing.T) {
	x := autodiff.New(4)

	assert.InDelta(t, -3.0, autodiff.Sub(1, x).Data(), 1e-12)
	assert.InDelta(t, 0.5, autodiff.Div(2, x).Data(), 1e-12)
	assert.InDelta(t, 16.0, autodiff.Pow(x, 2).Data(), 1e-12)
	assert.InDelta(t, 0.0, autodiff.ReLU(autodiff.Neg(x)).Data(), 1e-12)
	assert.InDelta(t, 10.0, autodiff.Sum(2, x, autodiff.Lift(4)).Data(), 1e-12)
	assert.Same(t, x, autodiff.Lift(x))
}

func TestPublicAPI_InvalidExponent(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, autodiff.ErrInvalidExponent)
	}()
	autodiff.New(2).Pow(math.NaN())
}
