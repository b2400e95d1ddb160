package models

import (
	"math/big"

	"affine"
)

// MorrisLecar 神经元模型，状态为 [V, N]
//
//	dV/dt = (I - gL(V - VL) - gCa·M_ss(V)·(V - VCa) - gK·N·(V - VK)) / C
//	dN/dt = (N_ss(V) - N)·phi·cosh((V - V3) / (2·V4))
type MorrisLecar struct {
	GL, GCa, GK *affine.Form // 最大电导 (mmho/cm²)
	VL, VCa, VK *affine.Form // 平衡电位 (mV)
	V1, V2      *affine.Form // M_ss 的中点与斜率 (mV)
	V3, V4      *affine.Form // N_ss 的中点与斜率 (mV)
	Phi         *affine.Form // (s⁻¹)
	C           *affine.Form // 膜电容 (uF/cm²)
	I           *affine.Form // 外加电流 (uA/cm²)

	one, half, negTwo *affine.Form
}

// NewMorrisLecar 第一类兴奋性参数
func NewMorrisLecar(c *affine.Context) *MorrisLecar {
	return &MorrisLecar{
		GL:     c.NewFloat64(2),
		GCa:    c.NewFloat64(4),
		GK:     c.NewFloat64(8),
		VL:     c.NewFloat64(-60),
		VCa:    c.NewFloat64(120),
		VK:     c.NewFloat64(-80),
		V1:     must(c, "-1.2"),
		V2:     c.NewFloat64(18),
		V3:     c.NewFloat64(12),
		V4:     must(c, "17.4"),
		Phi:    c.NewRat(big.NewRat(1, 15)),
		C:      c.NewFloat64(20),
		I:      c.NewFloat64(80),
		one:    c.NewFloat64(1),
		half:   c.NewFloat64(0.5),
		negTwo: c.NewFloat64(-2),
	}
}

// Initial 初值 V = -60，N = 0
func (m *MorrisLecar) Initial(c *affine.Context) []*affine.Form {
	return []*affine.Form{c.NewFloat64(-60), c.NewFloat64(0)}
}

func (m *MorrisLecar) Dim() int { return 2 }

// steady 1 / (1 + exp(-2(V - mid) / slope))
func (m *MorrisLecar) steady(v, mid, slope *affine.Form) *affine.Form {
	z := v.Context().New().Sub(v, mid)
	z.Mul(m.negTwo, z)
	z.Div(z, slope)
	z.Exp(z)
	z.Add(m.one, z)
	return z.Inv(z)
}

// current g·(V - E)
func current(g, v, e *affine.Form) *affine.Form {
	z := v.Context().New().Sub(v, e)
	return z.Mul(z, g)
}

func (m *MorrisLecar) Derivative(dx []*affine.Form, t *affine.Form, x []*affine.Form) {
	v, n := x[0], x[1]
	c := v.Context()

	ca := current(m.GCa, v, m.VCa)
	ca.Mul(ca, m.steady(v, m.V1, m.V2))
	k := current(m.GK, v, m.VK)
	k.Mul(k, n)
	dv := c.New().Sum(current(m.GL, v, m.VL), ca, k)
	dv.Sub(m.I, dv)
	dx[0].Div(dv, m.C)

	// cosh(u) = (e^u + e^-u) / 2，u = (V - V3) / (2·V4)
	u := c.New().Sub(v, m.V3)
	u.Div(u, c.New().Add(m.V4, m.V4))
	ep := c.New().Exp(u)
	en := c.New().Neg(u)
	en.Exp(en)
	cosh := ep.Add(ep, en)
	cosh.Mul(cosh, m.half)

	dn := c.New().Sub(m.steady(v, m.V3, m.V4), n)
	dn.Mul(dn, m.Phi)
	dx[1].Mul(dn, cosh)
}
