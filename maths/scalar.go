package maths

import "math/big"

// MinPrecision 最小精度
const MinPrecision = 2

// MaxPrecision 最大精度
const MaxPrecision = big.MaxPrec

// ClampPrecision 把精度限制在 [MinPrecision, MaxPrecision] 内
func ClampPrecision(prec uint) uint {
	switch {
	case prec < MinPrecision:
		return MinPrecision
	case prec > MaxPrecision:
		return MaxPrecision
	}
	return prec
}

// New 创建指定精度的零值
func New(prec uint) *big.Float {
	return new(big.Float).SetPrec(ClampPrecision(prec))
}

// NewFloat64 创建指定精度的值，x 必须不是 NaN
func NewFloat64(prec uint, x float64) *big.Float {
	return New(prec).SetFloat64(x)
}

// Copy 复制 x，精度不变
func Copy(x *big.Float) *big.Float {
	return new(big.Float).Copy(x)
}

// 下面的运算都按 z 的精度和 rnd 舍入结果，返回值表示结果是否不精确

// Set z = x
func Set(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Set(x)
	return z.Acc() != big.Exact
}

// Neg z = -x
func Neg(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Neg(x)
	return z.Acc() != big.Exact
}

// Abs z = |x|
func Abs(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Abs(x)
	return z.Acc() != big.Exact
}

// Add z = x + y
func Add(z, x, y *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Add(x, y)
	return z.Acc() != big.Exact
}

// Sub z = x - y
func Sub(z, x, y *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Sub(x, y)
	return z.Acc() != big.Exact
}

// Mul z = x * y
func Mul(z, x, y *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Mul(x, y)
	return z.Acc() != big.Exact
}

// Quo z = x / y
func Quo(z, x, y *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).Quo(x, y)
	return z.Acc() != big.Exact
}

// Mul2Exp z = x * 2^k
func Mul2Exp(z, x *big.Float, k int, rnd Rounding) bool {
	z.SetMode(rnd.Mode()).SetMantExp(x, k)
	return z.Acc() != big.Exact
}

// Max z = max(x, y)
func Max(z, x, y *big.Float, rnd Rounding) bool {
	if x.Cmp(y) >= 0 {
		return Set(z, x, rnd)
	}
	return Set(z, y, rnd)
}

// Min z = min(x, y)
func Min(z, x, y *big.Float, rnd Rounding) bool {
	if x.Cmp(y) <= 0 {
		return Set(z, x, rnd)
	}
	return Set(z, y, rnd)
}

// exactMul 返回 x*y 的精确值
func exactMul(x, y *big.Float) *big.Float {
	prec := x.Prec() + y.Prec()
	if prec > MaxPrecision {
		prec = MaxPrecision
	}
	return new(big.Float).SetPrec(prec).Mul(x, y)
}

// FMA z = a*b + c，只舍入一次
func FMA(z, a, b, c *big.Float, rnd Rounding) bool {
	return Add(z, exactMul(a, b), c, rnd)
}

// FMS z = a*b - c，只舍入一次
func FMS(z, a, b, c *big.Float, rnd Rounding) bool {
	return Sub(z, exactMul(a, b), c, rnd)
}

// FMMA z = a*b + c*d，只舍入一次
func FMMA(z, a, b, c, d *big.Float, rnd Rounding) bool {
	return Add(z, exactMul(a, b), exactMul(c, d), rnd)
}

// FMMS z = a*b - c*d，只舍入一次
func FMMS(z, a, b, c, d *big.Float, rnd Rounding) bool {
	return Sub(z, exactMul(a, b), exactMul(c, d), rnd)
}

// FMMAA z = a*b + c*d + e，只舍入一次
func FMMAA(z, a, b, c, d, e *big.Float, rnd Rounding) bool {
	return Sum(z, []*big.Float{exactMul(a, b), exactMul(c, d), e}, rnd)
}
