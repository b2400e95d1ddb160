package affine

import (
	"math/big"

	"affine/maths"
)

var (
	bigOne    = big.NewFloat(1)
	bigMinus1 = big.NewFloat(-1)
	bigZero   = new(big.Float)
)

// Affine1 z = alpha·x + gamma，delta 为额外计入的误差
func (z *Form) Affine1(x *Form, alpha, gamma, delta *big.Float) *Form {
	z.do("affine_1", func() { z.affine1(x, alpha, gamma, delta, nil) })
	return z
}

// affine1 r 为区间值域，nil 时按线性组合计算
func (z *Form) affine1(x *Form, alpha, gamma, delta *big.Float, r *interval) {
	c := z.adopt(x)
	switch x.state {
	case nan:
		z.SetNaN()
		return
	case inf:
		z.SetInf()
		return
	}
	b := c.builder(z.prec, len(x.terms)+1)
	b.round(maths.FMA(b.centre, alpha, x.centre, gamma, maths.Nearest), b.centre)
	for _, t := range x.terms {
		dev := b.dev()
		b.push(t.Symbol, dev, maths.Mul(dev, alpha, t.Deviation, maths.Nearest))
	}
	b.widen(delta)
	if r == nil && c.mixing() {
		r = linearRange(z.prec, []*interval{x.interval()}, []*big.Float{alpha}, gamma, delta)
	}
	b.finish(z, r)
}

// Affine2 z = alpha·x + beta·y + gamma，delta 为额外计入的误差
func (z *Form) Affine2(x, y *Form, alpha, beta, gamma, delta *big.Float) *Form {
	z.do("affine_2", func() { z.affine2(x, y, alpha, beta, gamma, delta) })
	return z
}

func (z *Form) affine2(x, y *Form, alpha, beta, gamma, delta *big.Float) {
	c := z.adopt(x)
	switch {
	case x.state == nan || y.state == nan:
		z.SetNaN()
		return
	case x.state == inf && y.state == inf:
		z.SetNaN()
		return
	case x.state == inf || y.state == inf:
		z.SetInf()
		return
	}
	b := c.builder(z.prec, len(x.terms)+len(y.terms)+1)
	b.round(maths.FMMAA(b.centre, alpha, x.centre, beta, y.centre, gamma, maths.Nearest), b.centre)
	merge2(x.terms, y.terms, func(sym uint64, xi, yi *big.Float) {
		dev := b.dev()
		var inexact bool
		switch {
		case yi == nil:
			inexact = maths.Mul(dev, alpha, xi, maths.Nearest)
		case xi == nil:
			inexact = maths.Mul(dev, beta, yi, maths.Nearest)
		default:
			inexact = maths.FMMA(dev, alpha, xi, beta, yi, maths.Nearest)
		}
		b.push(sym, dev, inexact)
	})
	b.widen(delta)
	var r *interval
	if c.mixing() {
		r = linearRange(z.prec, []*interval{x.interval(), y.interval()}, []*big.Float{alpha, beta}, gamma, delta)
	}
	b.finish(z, r)
}

// Add z = x + y
func (z *Form) Add(x, y *Form) *Form {
	z.do("add", func() { z.affine2(x, y, bigOne, bigOne, bigZero, nil) })
	return z
}

// Sub z = x - y
func (z *Form) Sub(x, y *Form) *Form {
	z.do("sub", func() { z.affine2(x, y, bigOne, bigMinus1, bigZero, nil) })
	return z
}

// Neg z = -x
func (z *Form) Neg(x *Form) *Form {
	z.do("neg", func() { z.affine1(x, bigMinus1, bigZero, nil, nil) })
	return z
}

// Increase z = x ± |delta|，即把 x 的值域放宽 delta
func (z *Form) Increase(x *Form, delta *big.Float) *Form {
	z.do("increase", func() { z.affine1(x, bigOne, bigZero, delta, nil) })
	return z
}

// Set z = x，按 z 的工作精度重新舍入中心
func (z *Form) Set(x *Form) *Form {
	z.adopt(x)
	switch x.state {
	case nan:
		return z.SetNaN()
	case inf:
		return z.SetInf()
	}
	z.do("set", func() { z.round(x, z.prec) })
	return z
}
