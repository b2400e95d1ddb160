package maths

import "math/big"

// Tiny 返回最小正数 0.5·2^MinExp
func Tiny() *big.Float {
	return new(big.Float).SetPrec(MinPrecision).SetMantExp(half, big.MinExp)
}

var half = big.NewFloat(0.5)

// ErrorBound 返回舍入结果 y 的绝对误差上界。
// 尾数取 [0.5, 1) 约定：就近舍入为 2^(e-p-1)，定向舍入为 2^(e-p)。
// y 为零时返回最小正数。
func ErrorBound(y *big.Float, directed bool) *big.Float {
	if y.IsInf() {
		return new(big.Float).SetInf(false)
	}
	if y.Sign() == 0 {
		return Tiny()
	}
	k := y.MantExp(nil) - int(y.Prec())
	if !directed {
		k--
	}
	if k <= big.MinExp {
		return Tiny()
	}
	return new(big.Float).SetPrec(MinPrecision).SetMantExp(one, k)
}

// RoundingError 把 y 的舍入误差向上累加到 err
func RoundingError(err *big.Float, rnd Rounding, y *big.Float) {
	err.SetMode(big.ToPositiveInf).Add(err, ErrorBound(y, rnd.Directed()))
}

// FaithfulError 把忠实舍入结果 y 的误差（一个 ulp）向上累加到 err，
// 用于 Exp、Log、Sqrt 等不保证正确舍入的结果
func FaithfulError(err *big.Float, y *big.Float) {
	err.SetMode(big.ToPositiveInf).Add(err, ErrorBound(y, true))
}
