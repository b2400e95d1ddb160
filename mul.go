package affine

import (
	"math/big"

	"affine/maths"
)

// Mul z = x·y。
// 一次项为 y0·x_i + x0·y_i，二次项 (Σx_iε_i)(Σy_jε_j) 的界计入新误差项。
func (z *Form) Mul(x, y *Form) *Form {
	z.do("mul", func() { z.mul(x, y) })
	return z
}

func (z *Form) mul(x, y *Form) {
	c := z.adopt(x)
	switch {
	case x.state == nan || y.state == nan:
		z.SetNaN()
		return
	case x.state == inf:
		if y.HasZero() {
			z.SetNaN()
		} else {
			z.SetInf()
		}
		return
	case y.state == inf:
		if x.HasZero() {
			z.SetNaN()
		} else {
			z.SetInf()
		}
		return
	}
	b := c.builder(z.prec, len(x.terms)+len(y.terms)+1)
	b.round(maths.Mul(b.centre, x.centre, y.centre, maths.Nearest), b.centre)
	merge2(x.terms, y.terms, func(sym uint64, xi, yi *big.Float) {
		dev := b.dev()
		var inexact bool
		switch {
		case yi == nil:
			inexact = maths.Mul(dev, y.centre, xi, maths.Nearest)
		case xi == nil:
			inexact = maths.Mul(dev, x.centre, yi, maths.Nearest)
		default:
			inexact = maths.FMMA(dev, y.centre, xi, x.centre, yi, maths.Nearest)
		}
		b.push(sym, dev, inexact)
	})
	if c.mulMethod == Loose {
		q := maths.New(c.iprec)
		maths.Mul(q, x.radius, y.radius, maths.Up)
		b.widen(q)
	} else {
		b.widen(quadraticBound(c.iprec, x.terms, y.terms))
	}
	var r *interval
	if c.mixing() {
		r = mulRange(z.prec, x.interval(), y.interval())
	}
	b.finish(z, r)
}

// quadraticBound 计算 |(Σx_iε_i)(Σy_jε_j)| 的紧致上界（Rump-Kashiwagi）：
//
//	Σ_{i<j} |x_i·y_j + x_j·y_i| + max(Σ⁺ x_i·y_i, Σ⁻ |x_i·y_i|)
//
// 只在一侧出现的符号，其交叉项退化为 |x_i|·|y_j|，可按分组求和线性计算；
// 只有同时出现的符号之间需要两两计算。
func quadraticBound(prec uint, x, y []Term) *big.Float {
	var xOnly, yOnly, yAll, sx, sy []*big.Float
	merge2(x, y, func(_ uint64, xi, yi *big.Float) {
		switch {
		case yi == nil:
			xOnly = append(xOnly, xi)
		case xi == nil:
			yOnly = append(yOnly, yi)
			yAll = append(yAll, yi)
		default:
			sx = append(sx, xi)
			sy = append(sy, yi)
			yAll = append(yAll, yi)
		}
	})
	sumAbs := func(xs []*big.Float) *big.Float {
		s := maths.New(prec)
		maths.SumAbs(s, xs, maths.Up)
		return s
	}
	parts := make([]*big.Float, 0, 4)

	// 仅 x 的符号与 y 的全部符号
	q := maths.New(prec)
	maths.Mul(q, sumAbs(xOnly), sumAbs(yAll), maths.Up)
	parts = append(parts, q)

	// 仅 y 的符号与共享符号的 x 偏差
	q = maths.New(prec)
	maths.Mul(q, sumAbs(yOnly), sumAbs(sx), maths.Up)
	parts = append(parts, q)

	// 共享符号两两交叉项
	cross := maths.New(prec).SetMode(big.ToPositiveInf)
	t := maths.New(prec)
	for i := range sx {
		for j := i + 1; j < len(sx); j++ {
			maths.FMMA(t, sx[i], sy[j], sx[j], sy[i], maths.Up)
			if t.Sign() < 0 {
				maths.FMMA(t, sx[i], sy[j], sx[j], sy[i], maths.Down)
				t.Neg(t)
			}
			cross.Add(cross, t)
		}
	}
	parts = append(parts, cross)

	// 共享符号平方项 ε_i² ∈ [0, 1]
	pos := maths.New(prec).SetMode(big.ToPositiveInf)
	neg := maths.New(prec).SetMode(big.ToPositiveInf)
	for i := range sx {
		if sx[i].Sign()*sy[i].Sign() > 0 {
			maths.Mul(t, sx[i], sy[i], maths.Up)
			pos.Add(pos, t)
		} else {
			maths.Mul(t, sx[i], sy[i], maths.Down)
			neg.Sub(neg, t)
		}
	}
	diag := maths.New(prec)
	maths.Max(diag, pos, neg, maths.Up)
	parts = append(parts, diag)

	bound := maths.New(prec)
	maths.Sum(bound, parts, maths.Up)
	return bound
}

// Div z = x / y = x·(1/y)
func (z *Form) Div(x, y *Form) *Form {
	z.do("div", func() {
		c := z.adopt(x)
		inv := c.NewPrec(z.prec)
		inv.inv(y)
		z.mul(x, inv)
	})
	return z
}
