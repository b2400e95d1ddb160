package affine

import (
	"math/big"

	"affine/maths"
)

// Sum z = Σxs。中心与每个符号的偏差都只舍入一次。
// xs 为空时结果为零，此时 z 必须已关联 Context（例如由 ctx.New() 创建）。
func (z *Form) Sum(xs ...*Form) *Form {
	if len(xs) == 0 {
		z.init()
		return z.SetZero()
	}
	z.do("sum", func() { z.sum(xs) })
	return z
}

func (z *Form) sum(xs []*Form) {
	c := z.adopt(xs[0])
	infs := 0
	capacity := 1
	for _, x := range xs {
		switch x.state {
		case nan:
			z.SetNaN()
			return
		case inf:
			infs++
		}
		capacity += len(x.terms)
	}
	switch {
	case infs > 1:
		z.SetNaN()
		return
	case infs == 1:
		z.SetInf()
		return
	}
	b := c.builder(z.prec, capacity)
	centres := make([]*big.Float, len(xs))
	seqs := make([][]Term, len(xs))
	for i, x := range xs {
		centres[i] = x.centre
		seqs[i] = x.terms
	}
	maths.SumRound(b.centre, centres, b.err)
	mergeN(seqs, func(sym uint64, devs []*big.Float) {
		dev := b.dev()
		maths.SumRound(dev, devs, b.err)
		b.push(sym, dev, false)
	})
	var r *interval
	if c.mixing() {
		ranges := make([]*interval, len(xs))
		for i, x := range xs {
			ranges[i] = x.interval()
		}
		r = linearRange(z.prec, ranges, nil, nil, nil)
	}
	b.finish(z, r)
}
