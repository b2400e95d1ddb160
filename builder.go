package affine

import (
	"math/big"

	"affine/maths"
)

// builder 在独立存储中构造运算结果，完成后整体替换输出
type builder struct {
	ctx    *Context
	prec   uint
	centre *big.Float // 工作精度
	terms  []Term
	err    *big.Float // 累计误差，内部精度，向上舍入
}

func (c *Context) builder(prec uint, capacity int) *builder {
	return &builder{
		ctx:    c,
		prec:   prec,
		centre: maths.New(prec),
		terms:  makeTerms(capacity),
		err:    maths.New(c.iprec),
	}
}

// dev 创建内部精度的偏差存储
func (b *builder) dev() *big.Float { return maths.New(b.ctx.iprec) }

// round 累加就近舍入结果 y 的误差
func (b *builder) round(inexact bool, y *big.Float) {
	if inexact {
		maths.RoundingError(b.err, maths.Nearest, y)
	}
}

// faithful 累加忠实舍入结果 y 的误差
func (b *builder) faithful(inexact bool, y *big.Float) {
	if inexact {
		maths.FaithfulError(b.err, y)
	}
}

// push 追加噪声项，零偏差直接省略
func (b *builder) push(sym uint64, dev *big.Float, inexact bool) {
	b.round(inexact, dev)
	if dev.Sign() != 0 {
		b.terms = append(b.terms, Term{Symbol: sym, Deviation: dev})
	}
}

// widen 把外部给定的误差 |delta| 计入累计误差
func (b *builder) widen(delta *big.Float) {
	if delta == nil || delta.Sign() == 0 {
		return
	}
	if delta.Sign() > 0 {
		b.err.SetMode(big.ToPositiveInf).Add(b.err, delta)
	} else {
		b.err.SetMode(big.ToPositiveInf).Sub(b.err, delta)
	}
}

// finish 追加新误差项，重新计算半径与值域，然后替换 z。
// r 为区间运算得到的值域，仅在混合值域方法下使用。
func (b *builder) finish(z *Form, r *interval) {
	fresh := false
	if b.err.Sign() != 0 {
		if b.err.IsInf() {
			z.SetInf()
			return
		}
		b.terms = append(b.terms, Term{Symbol: b.ctx.NextSymbol(), Deviation: b.err})
		fresh = true
	}
	if b.centre.IsInf() {
		z.SetInf()
		return
	}
	n := &Form{ctx: b.ctx, prec: b.prec, centre: b.centre, terms: b.terms}
	n.refresh()
	if n.radius.IsInf() {
		z.SetInf()
		return
	}
	if r != nil && b.ctx.mixing() {
		n.mix(r, fresh)
	}
	z.swap(n)
}

// refresh 由噪声项重新计算半径与仿射值域
func (z *Form) refresh() {
	devs := make([]*big.Float, len(z.terms))
	for i, t := range z.terms {
		devs[i] = t.Deviation
	}
	z.radius = maths.New(z.ctx.iprec)
	maths.SumAbs(z.radius, devs, maths.Up)
	z.lo, z.hi = maths.New(z.prec), maths.New(z.prec)
	maths.Sub(z.lo, z.centre, z.radius, maths.Down)
	maths.Add(z.hi, z.centre, z.radius, maths.Up)
}

// mix 把仿射值域与区间值域求交；修剪模式下同时缩小新误差项
func (z *Form) mix(r *interval, fresh bool) {
	lo, hi := maths.New(z.prec), maths.New(z.prec)
	maths.Max(lo, z.lo, r.lo, maths.Down)
	maths.Min(hi, z.hi, r.hi, maths.Up)
	if lo.Cmp(hi) > 0 {
		return
	}
	if z.ctx.rangeMethod == MixedTrimmedIAAA && fresh && z.lo.Cmp(lo) < 0 && z.hi.Cmp(hi) > 0 {
		iprec := z.ctx.iprec
		t1, t2 := maths.New(iprec), maths.New(iprec)
		maths.Sub(t1, lo, z.lo, maths.Down)
		maths.Sub(t2, z.hi, hi, maths.Down)
		maths.Min(t1, t1, t2, maths.Down)
		last := len(z.terms) - 1
		dev := z.terms[last].Deviation
		maths.Sub(dev, dev, t1, maths.Up)
		if dev.Sign() <= 0 {
			z.terms = z.terms[:last]
		}
		z.refresh()
		maths.Max(lo, z.lo, lo, maths.Down)
		maths.Min(hi, z.hi, hi, maths.Up)
	}
	z.lo, z.hi = lo, hi
}
