package affine

import (
	"math/big"

	"go.uber.org/zap"

	"affine/maths"
)

// ReduceLastN 把最后 n 个噪声项（按位置）合并为一个新符号的噪声项
func (z *Form) ReduceLastN(n int) *Form {
	if z.state != finite {
		return z
	}
	if n > len(z.terms) {
		n = len(z.terms)
	}
	if n < 2 {
		return z
	}
	keep := len(z.terms) - n
	z.condense(z.terms[:keep], z.terms[keep:], "reduce_last_n")
	return z
}

// ReduceSmall 把 |deviation| <= fraction·radius 的噪声项合并为一个新噪声项，
// 其余噪声项保持原顺序
func (z *Form) ReduceSmall(fraction float64) *Form {
	if z.state != finite || len(z.terms) < 2 || !(fraction > 0) {
		return z
	}
	c := z.context()
	threshold := maths.New(c.iprec)
	maths.Mul(threshold, z.radius, big.NewFloat(fraction), maths.Nearest)
	return z.reduceBelow(threshold, "reduce_small")
}

// ReduceSmallAbs 把 |deviation| <= threshold 的噪声项合并为一个新噪声项
func (z *Form) ReduceSmallAbs(threshold *big.Float) *Form {
	if z.state != finite || len(z.terms) < 2 || threshold.Sign() <= 0 {
		return z
	}
	return z.reduceBelow(threshold, "reduce_small_abs")
}

func (z *Form) reduceBelow(threshold *big.Float, op string) *Form {
	large := makeTerms(len(z.terms))
	var small []Term
	for _, t := range z.terms {
		if new(big.Float).Abs(t.Deviation).Cmp(threshold) > 0 {
			large = append(large, t)
		} else {
			small = append(small, t)
		}
	}
	// 少于两个小项时合并不会减少项数，且会破坏符号顺序
	if len(small) < 2 {
		return z
	}
	z.condense(large, small, op)
	return z
}

// condense 保留 keep，把 merge 的绝对值之和（向上舍入）作为新符号的噪声项追加在末尾，
// 然后重新计算半径
func (z *Form) condense(keep, merge []Term, op string) {
	c := z.context()
	devs := make([]*big.Float, len(merge))
	for i, t := range merge {
		devs[i] = t.Deviation
	}
	merged := maths.New(c.iprec)
	maths.SumAbs(merged, devs, maths.Up)

	terms := makeTerms(len(keep) + 1)
	terms = append(terms, keep...)
	terms = append(terms, Term{Symbol: c.NextSymbol(), Deviation: merged})

	n := &Form{ctx: c, prec: z.prec, centre: z.centre, terms: terms}
	n.refresh()
	if c.mixing() {
		// 原值域仍然包含真值
		n.mix(z.interval(), false)
	}
	if ce := c.log.Check(zap.DebugLevel, "reduce"); ce != nil {
		ce.Write(zap.String("op", op), zap.Int("merged", len(merge)), zap.Int("terms", len(terms)))
	}
	z.swap(n)
}
