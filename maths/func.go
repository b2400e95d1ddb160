package maths

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

const (
	guardBits = 64 // 超越函数内部保护位
	slackBits = 16 // 认为保护位结果中不可信的低位数
)

// Exp z = exp(x)
func Exp(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode())
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
		return false
	case x.Sign() == 0:
		z.SetInt64(1)
		return false
	}
	// 指数较大时 x 的相对误差会放大到结果中
	p := z.Prec() + guardBits
	if e := x.MantExp(nil); e > 0 {
		p += uint(e)
	}
	t := new(big.Float).SetPrec(max(p, x.Prec())).Set(x)
	return faithful(z, bigfloat.Exp(t), rnd)
}

// Log z = log(x)，x < 0 时抛出 big.ErrNaN
func Log(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode())
	switch {
	case x.Sign() < 0:
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		z.SetInf(true)
		return false
	case x.IsInf():
		z.SetInf(false)
		return false
	case x.Cmp(one) == 0:
		z.SetInt64(0)
		return false
	}
	// x 接近 1 时结果接近 0，bigfloat 的绝对误差按 |x-1| 的量级折算为相对误差
	p := z.Prec() + guardBits + nearOne(x)
	t := new(big.Float).SetPrec(max(p, x.Prec())).Set(x)
	return faithful(z, bigfloat.Log(t), rnd)
}

// Sqrt z = √x，x < 0 时抛出 big.ErrNaN
func Sqrt(z, x *big.Float, rnd Rounding) bool {
	z.SetMode(rnd.Mode())
	switch {
	case x.Sign() < 0:
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		z.SetInt64(0)
		return false
	case x.IsInf():
		z.SetInf(false)
		return false
	}
	t := new(big.Float).SetPrec(z.Prec() + guardBits).Sqrt(x)
	// 完全平方数
	if exactMul(t, t).Cmp(x) == 0 {
		z.Set(t)
		return z.Acc() != big.Exact
	}
	return faithful(z, t, rnd)
}

var one = big.NewFloat(1)

// nearOne 返回 -log2|x-1|，x 不在 [0.5, 2) 内时为 0
func nearOne(x *big.Float) uint {
	if e := x.MantExp(nil); e != 0 && e != 1 {
		return 0
	}
	// x ∈ [0.5, 2) 时 x-1 在 x.Prec()+1 位下精确
	d := new(big.Float).SetPrec(x.Prec()+1).Sub(x, one)
	if d.Sign() == 0 {
		return 0
	}
	if e := d.MantExp(nil); e < 0 {
		return uint(-e) + 2
	}
	return 0
}

// faithful 把保护位精度下的近似值 t 舍入到 z 的精度。
// t 的相对误差须小于 2^-(z.Prec()+guardBits-slackBits)，
// 定向舍入时先把 t 沿舍入方向推出该误差范围，保证结果方向正确。
func faithful(z, t *big.Float, rnd Rounding) bool {
	if t.IsInf() || t.Sign() == 0 {
		z.Set(t)
		return true
	}
	if rnd.Directed() {
		e := t.MantExp(nil)
		eps := new(big.Float).SetMantExp(one, e-int(z.Prec()+guardBits)+slackBits)
		if rnd.upward(t.Sign()) {
			t.SetMode(big.ToPositiveInf).Add(t, eps)
		} else {
			t.SetMode(big.ToNegativeInf).Sub(t, eps)
		}
	}
	z.Set(t)
	return true
}
