package affine

import (
	"math/big"

	"affine/maths"
)

// interval 向外舍入的区间，仅用于混合值域方法与测试中的交叉验证
type interval struct {
	lo, hi *big.Float
}

func (z *Form) interval() *interval { return &interval{lo: z.lo, hi: z.hi} }

// scale alpha·[x]
func (x *interval) scale(prec uint, alpha *big.Float) *interval {
	r := &interval{lo: maths.New(prec), hi: maths.New(prec)}
	a, b := x.lo, x.hi
	if alpha.Sign() < 0 {
		a, b = b, a
	}
	maths.Mul(r.lo, alpha, a, maths.Down)
	maths.Mul(r.hi, alpha, b, maths.Up)
	return r
}

// linearRange Σ alpha_i·[x_i] + gamma ± delta
func linearRange(prec uint, xs []*interval, alphas []*big.Float, gamma, delta *big.Float) *interval {
	los := make([]*big.Float, 0, len(xs)+2)
	his := make([]*big.Float, 0, len(xs)+2)
	for i, x := range xs {
		s := x
		if alphas != nil {
			s = x.scale(prec, alphas[i])
		}
		los = append(los, s.lo)
		his = append(his, s.hi)
	}
	if gamma != nil {
		los = append(los, gamma)
		his = append(his, gamma)
	}
	if delta != nil {
		d := new(big.Float).Abs(delta)
		los = append(los, new(big.Float).Neg(d))
		his = append(his, d)
	}
	r := &interval{lo: maths.New(prec), hi: maths.New(prec)}
	maths.Sum(r.lo, los, maths.Down)
	maths.Sum(r.hi, his, maths.Up)
	return r
}

// mulRange [x]·[y]
func mulRange(prec uint, x, y *interval) *interval {
	r := &interval{lo: maths.New(prec), hi: maths.New(prec)}
	t := maths.New(prec)
	first := true
	for _, a := range []*big.Float{x.lo, x.hi} {
		for _, b := range []*big.Float{y.lo, y.hi} {
			maths.Mul(t, a, b, maths.Down)
			if first || t.Cmp(r.lo) < 0 {
				r.lo.Set(t)
			}
			maths.Mul(t, a, b, maths.Up)
			if first || t.Cmp(r.hi) > 0 {
				r.hi.Set(t)
			}
			first = false
		}
	}
	return r
}

// monotoneRange 单调函数的区间像，decreasing 表示单调递减
func monotoneRange(prec uint, x *interval, f func(z, x *big.Float, rnd maths.Rounding) bool, decreasing bool) *interval {
	r := &interval{lo: maths.New(prec), hi: maths.New(prec)}
	a, b := x.lo, x.hi
	if decreasing {
		a, b = b, a
	}
	f(r.lo, a, maths.Down)
	f(r.hi, b, maths.Up)
	return r
}

// contains 判断 v 是否在区间内
func (x *interval) contains(v *big.Float) bool {
	return x.lo.Cmp(v) <= 0 && v.Cmp(x.hi) <= 0
}
