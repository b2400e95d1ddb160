package models

import (
	"affine"
)

// FitzHughNagumo 模型，状态为 [v, w]
//
//	dv/dt = v - v³/3 - w + I
//	dw/dt = (v + a - b·w) / tau
type FitzHughNagumo struct {
	A, B, Tau, I *affine.Form

	third *affine.Form
}

// NewFitzHughNagumo a = 0.7，b = 0.8，tau = 12.5，I = 0.5
func NewFitzHughNagumo(c *affine.Context) *FitzHughNagumo {
	return &FitzHughNagumo{
		A:     must(c, "0.7"),
		B:     must(c, "0.8"),
		Tau:   c.NewFloat64(12.5),
		I:     c.NewFloat64(0.5),
		third: must(c, "1/3"),
	}
}

// Initial 初值 v = -1 ± r，w = 1 ± r
func (f *FitzHughNagumo) Initial(c *affine.Context, r float64) []*affine.Form {
	return []*affine.Form{c.NewFloat64Rad(-1, r), c.NewFloat64Rad(1, r)}
}

func (f *FitzHughNagumo) Dim() int { return 2 }

func (f *FitzHughNagumo) Derivative(dx []*affine.Form, t *affine.Form, x []*affine.Form) {
	v, w := x[0], x[1]
	c := v.Context()

	cube := c.New().Mul(v, v)
	cube.Mul(cube, v)
	cube.Mul(cube, f.third)
	dv := c.New().Sub(v, cube)
	dv.Sub(dv, w)
	dx[0].Add(dv, f.I)

	bw := c.New().Mul(f.B, w)
	dw := c.New().Add(v, f.A)
	dw.Sub(dw, bw)
	dx[1].Div(dw, f.Tau)
}
