package models

import (
	"affine"
)

// Henon 映射 x' = 1 - a·x² + y，y' = b·x
type Henon struct {
	A, B *affine.Form
	one  *affine.Form
}

// NewHenon 由十进制参数创建
func NewHenon(c *affine.Context, a, b string) (*Henon, error) {
	fa, err := c.NewString(a)
	if err != nil {
		return nil, err
	}
	fb, err := c.NewString(b)
	if err != nil {
		return nil, err
	}
	return &Henon{A: fa, B: fb, one: c.NewFloat64(1)}, nil
}

// DefaultHenon a = 1.057，b = 0.3，接近混沌
func DefaultHenon(c *affine.Context) *Henon {
	return &Henon{A: must(c, "1.057"), B: must(c, "0.3"), one: c.NewFloat64(1)}
}

// Initial 初值 x = y = 0 ± 1e-5
func (h *Henon) Initial(c *affine.Context) (x, y *affine.Form) {
	x, _ = c.NewStringRad("0", "1e-5")
	y, _ = c.NewStringRad("0", "1e-5")
	return x, y
}

// Iterate 迭代一次，返回新的 x 与 y
func (h *Henon) Iterate(x, y *affine.Form) (xn, yn *affine.Form) {
	c := x.Context()
	xn = c.New().Mul(x, x)
	xn.Mul(xn, h.A)
	xn.Sub(h.one, xn)
	xn.Add(xn, y)
	yn = c.New().Mul(h.B, x)
	return xn, yn
}

// Run 迭代 n 次。每 every 次（从第 0 次起）对 x、y 合并小噪声项，every 为 0 时不合并。
// fn 在每次迭代后调用，可为 nil。
func (h *Henon) Run(x, y *affine.Form, n, every int, fraction float64, fn func(i int, x, y *affine.Form)) (*affine.Form, *affine.Form) {
	for i := 0; i < n; i++ {
		x, y = h.Iterate(x, y)
		if every > 0 && i%every == 0 {
			x.ReduceSmall(fraction)
			y.ReduceSmall(fraction)
		}
		if fn != nil {
			fn(i, x, y)
		}
	}
	return x, y
}
