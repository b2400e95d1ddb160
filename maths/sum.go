package maths

import (
	"math/big"
	"math/bits"
)

// maxSumPrec 精确求和允许的最大累加精度
const maxSumPrec = 1 << 20

// Sum z = Σxs，先以足够精度精确累加，最后只舍入一次。
// 同时出现 +Inf 与 -Inf 时抛出 big.ErrNaN。
// 指数跨度过大时就近舍入的误差可能超过半个 ulp，需要误差界时用 SumRound。
func Sum(z *big.Float, xs []*big.Float, rnd Rounding) bool {
	inexact, _ := sum(z, xs, rnd)
	return inexact
}

// SumRound z = Σxs 就近舍入，并把全部舍入误差向上累加到 err
func SumRound(z *big.Float, xs []*big.Float, err *big.Float) {
	inexact, spread := sum(z, xs, Nearest)
	if inexact {
		RoundingError(err, Nearest, z)
	}
	if spread != nil {
		err.SetMode(big.ToPositiveInf).Add(err, spread)
	}
}

// sum spread 非 nil 时表示结果另有至多 spread 的误差
func sum(z *big.Float, xs []*big.Float, rnd Rounding) (bool, *big.Float) {
	z.SetMode(rnd.Mode())
	var (
		posInf, negInf bool
		hi, lo, n      int
	)
	for _, x := range xs {
		if x.IsInf() {
			if x.Sign() > 0 {
				posInf = true
			} else {
				negInf = true
			}
			continue
		}
		if x.Sign() == 0 {
			continue
		}
		e := x.MantExp(nil)
		l := e - int(x.MinPrec())
		if n == 0 || e > hi {
			hi = e
		}
		if n == 0 || l < lo {
			lo = l
		}
		n++
	}
	switch {
	case posInf && negInf:
		panic(big.ErrNaN{})
	case posInf || negInf:
		z.SetInf(negInf)
		return false, nil
	case n == 0:
		z.SetInt64(0)
		return false, nil
	}
	prec := hi - lo + bits.Len(uint(n)) + 1
	if prec > maxSumPrec {
		return sumWide(z, xs, rnd)
	}
	acc := new(big.Float).SetPrec(uint(prec))
	for _, x := range xs {
		if x.Sign() != 0 {
			acc.Add(acc, x)
		}
	}
	z.Set(acc)
	return z.Acc() != big.Exact, nil
}

// sumWide 指数跨度过大时分别向下、向上逐项累加得到包含真值的 [down, up]。
// 定向舍入取对应端点；就近舍入取 up，并以 up-down 作为额外误差。
func sumWide(z *big.Float, xs []*big.Float, rnd Rounding) (bool, *big.Float) {
	down := new(big.Float).SetPrec(maxSumPrec).SetMode(big.ToNegativeInf)
	up := new(big.Float).SetPrec(maxSumPrec).SetMode(big.ToPositiveInf)
	for _, x := range xs {
		down.Add(down, x)
		up.Add(up, x)
	}
	if rnd.Directed() {
		if rnd.upward(up.Sign()) {
			z.Set(up)
		} else {
			z.Set(down)
		}
		return true, nil
	}
	z.Set(up)
	spread := new(big.Float).SetPrec(MinPrecision).SetMode(big.ToPositiveInf)
	spread.Sub(up, down)
	return true, spread
}

// SumAbs z = Σ|xs|
func SumAbs(z *big.Float, xs []*big.Float, rnd Rounding) bool {
	abs := make([]*big.Float, len(xs))
	for i, x := range xs {
		abs[i] = new(big.Float).Abs(x)
	}
	return Sum(z, abs, rnd)
}
