package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affine"
	"affine/ode"
)

func TestHenonPoint(t *testing.T) {
	c := affine.NewContext()
	h, err := NewHenon(c, "1.4", "0.3")
	require.NoError(t, err)
	x, y := h.Iterate(c.NewFloat64(0), c.NewFloat64(0))
	assert.Equal(t, 1.0, x.Float64())
	assert.Equal(t, 0.0, y.Float64())
	// float64 迭代落在值域内
	xf, yf := 1.0, 0.0
	for i := 0; i < 10; i++ {
		x, y = h.Iterate(x, y)
		xf, yf = 1-1.4*xf*xf+yf, 0.3*xf
		lo, hi := x.Float64Bounds()
		assert.InDelta(t, xf, x.Float64(), 1e-9)
		assert.True(t, lo-1e-9 <= xf && xf <= hi+1e-9, "step %d: %v 不在 [%v, %v]", i, xf, lo, hi)
	}
	assert.InDelta(t, yf, y.Float64(), 1e-9)

	_, err = NewHenon(c, "a", "0.3")
	assert.ErrorIs(t, err, affine.ErrSyntax)
}

func TestHenonReduce(t *testing.T) {
	c := affine.NewContext()
	h := DefaultHenon(c)
	x, y := h.Initial(c)
	maxTerms := 0
	x, y = h.Run(x, y, 500, 50, 0.3, func(i int, x, y *affine.Form) {
		if n := x.NumTerms() + y.NumTerms(); n > maxTerms {
			maxTerms = n
		}
	})
	assert.True(t, x.IsBounded())
	assert.True(t, y.IsBounded())
	// 每 50 次合并一次，项数不会随迭代次数线性增长到 500 以上
	assert.Less(t, maxTerms, 1000)
	lo, hi := x.Float64Bounds()
	assert.False(t, math.IsNaN(lo) || math.IsNaN(hi))

	// 不合并时项数更多
	x2, y2 := h.Initial(c)
	x2, y2 = h.Run(x2, y2, 100, 0, 0, nil)
	x3, y3 := h.Initial(c)
	x3, y3 = h.Run(x3, y3, 100, 10, 0.3, nil)
	assert.Less(t, x3.NumTerms()+y3.NumTerms(), x2.NumTerms()+y2.NumTerms())
}

// mlFloat Morris–Lecar 的 float64 Euler 参考解
func mlFloat(steps int, dt float64) (v, n float64) {
	v, n = -60, 0
	for i := 0; i < steps; i++ {
		mss := 1 / (1 + math.Exp(-2*(v+1.2)/18))
		nss := 1 / (1 + math.Exp(-2*(v-12)/17.4))
		dv := (80 - 2*(v+60) - 4*mss*(v-120) - 8*n*(v+80)) / 20
		dn := (nss - n) * (1.0 / 15) * math.Cosh((v-12)/(2*17.4))
		v, n = v+dt*dv, n+dt*dn
	}
	return v, n
}

func TestMorrisLecar(t *testing.T) {
	c := affine.NewContext()
	m := NewMorrisLecar(c)
	s, err := ode.NewStepper(m, ode.Euler, c.New(), m.Initial(c))
	require.NoError(t, err)
	s.ReduceEvery = 50
	s.ReduceFraction = 0.3
	const steps = 40
	s.Run(c.NewFloat64(1), steps, nil)

	v, n := mlFloat(steps, 1)
	x := s.X()
	assert.InDelta(t, v, x[0].Float64(), 1e-6)
	assert.InDelta(t, n, x[1].Float64(), 1e-8)
	for _, f := range x {
		assert.True(t, f.IsBounded())
		assert.Greater(t, f.NumTerms(), 0)
	}
	vlo, vhi := x[0].Float64Bounds()
	assert.True(t, vlo-1e-9 <= v && v <= vhi+1e-9)
}

func TestFitzHughNagumo(t *testing.T) {
	c := affine.NewContext()
	f := NewFitzHughNagumo(c)
	s, err := ode.NewStepper(f, ode.RK2, c.New(), f.Initial(c, 1e-6))
	require.NoError(t, err)
	h := 0.05
	s.Run(c.NewFloat64(h), 100, nil)

	// float64 中点法参考解
	d := func(v, w float64) (float64, float64) {
		return v - v*v*v/3 - w + 0.5, (v + 0.7 - 0.8*w) / 12.5
	}
	v, w := -1.0, 1.0
	for i := 0; i < 100; i++ {
		dv, dw := d(v, w)
		dv, dw = d(v+h/2*dv, w+h/2*dw)
		v, w = v+h*dv, w+h*dw
	}
	x := s.X()
	assert.InDelta(t, v, x[0].Float64(), 1e-9)
	assert.InDelta(t, w, x[1].Float64(), 1e-9)
	vlo, vhi := x[0].Float64Bounds()
	assert.LessOrEqual(t, vlo, v)
	assert.GreaterOrEqual(t, vhi, v)
	// 初值的不确定性 1e-6 不会在 5 个时间单位内放大到 1e-2
	assert.Less(t, vhi-vlo, 1e-2)
}
