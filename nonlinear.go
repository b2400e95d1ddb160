package affine

import (
	"math/big"

	"affine/maths"
)

// 非线性函数按 Chebyshev 最小最大线性逼近处理：
// 在 [a, b] 上取割线斜率 alpha，由端点残差与内部极值点残差 du 得到
// 残差带 [lo, hi]，gamma 取带中点，delta 取带半宽，最后交给 Affine1。

// chebyshev 把残差带 [lo, hi] 转为 (gamma, delta)
func chebyshev(prec uint, lo, hi *big.Float) (gamma, delta *big.Float) {
	gamma = maths.New(prec)
	maths.Add(gamma, lo, hi, maths.Nearest)
	maths.Mul2Exp(gamma, gamma, -1, maths.Nearest)
	t1, t2 := maths.New(prec), maths.New(prec)
	maths.Sub(t1, gamma, lo, maths.Up)
	maths.Sub(t2, hi, gamma, maths.Up)
	delta = maths.New(prec)
	maths.Max(delta, t1, t2, maths.Up)
	return gamma, delta
}

// secant (f(b) - f(a)) / (b - a)
func secant(prec uint, a, b, fa, fb *big.Float) *big.Float {
	num, den := maths.New(prec), maths.New(prec)
	maths.Sub(num, fb, fa, maths.Nearest)
	maths.Sub(den, b, a, maths.Nearest)
	alpha := maths.New(prec)
	maths.Quo(alpha, num, den, maths.Nearest)
	return alpha
}

// residual f(v) - alpha·v，f 与乘积都按 rnd 及其反方向取保守值
func residual(prec uint, f func(z, x *big.Float, rnd maths.Rounding) bool, alpha, v *big.Float, rnd maths.Rounding) *big.Float {
	fv, av := maths.New(prec), maths.New(prec)
	f(fv, v, rnd)
	maths.Mul(av, alpha, v, rnd.Reverse())
	maths.Sub(fv, fv, av, rnd)
	return fv
}

// point 点值输入：直接计算 f(centre)，误差计入新噪声项
func (z *Form) point(x *Form, f func(z, x *big.Float, rnd maths.Rounding) bool, r *interval) {
	c := z.adopt(x)
	b := c.builder(z.prec, 1)
	b.faithful(f(b.centre, x.centre, maths.Nearest), b.centre)
	b.finish(z, r)
}

// Exp z = exp(x)
func (z *Form) Exp(x *Form) *Form {
	z.do("exp", func() { z.exp(x) })
	return z
}

func (z *Form) exp(x *Form) {
	c := z.adopt(x)
	switch x.state {
	case nan:
		z.SetNaN()
		return
	case inf:
		z.SetInf()
		return
	}
	var r *interval
	if c.mixing() {
		r = monotoneRange(z.prec, x.interval(), maths.Exp, false)
	}
	if x.radius.Sign() == 0 {
		z.point(x, maths.Exp, r)
		return
	}
	p := c.iprec
	a, b := x.lo, x.hi
	fa, fb := maths.New(p), maths.New(p)
	maths.Exp(fa, a, maths.Nearest)
	maths.Exp(fb, b, maths.Nearest)
	alpha := secant(p, a, b, fa, fb)

	// 凸函数：端点残差取最大值
	dmax := maths.New(p)
	maths.Max(dmax, residual(p, maths.Exp, alpha, a, maths.Up), residual(p, maths.Exp, alpha, b, maths.Up), maths.Up)

	// 极值点 u = log(alpha)，残差 alpha·(1 - log(alpha)) 取下界
	du := maths.New(p)
	maths.Log(du, alpha, maths.Up)
	maths.Sub(du, du, bigOne, maths.Up)
	maths.Mul(du, alpha, du, maths.Up)
	du.Neg(du)

	gamma, delta := chebyshev(p, du, dmax)
	z.affine1(x, alpha, gamma, delta, r)
}

// Log z = log(x)，值域含非正数时为 NaN
func (z *Form) Log(x *Form) *Form {
	z.do("log", func() { z.log(x) })
	return z
}

func (z *Form) log(x *Form) {
	c := z.adopt(x)
	if x.state != finite || x.lo.Sign() <= 0 {
		z.SetNaN()
		return
	}
	var r *interval
	if c.mixing() {
		r = monotoneRange(z.prec, x.interval(), maths.Log, false)
	}
	if x.radius.Sign() == 0 {
		z.point(x, maths.Log, r)
		return
	}
	p := c.iprec
	a, b := x.lo, x.hi
	fa, fb := maths.New(p), maths.New(p)
	maths.Log(fa, a, maths.Nearest)
	maths.Log(fb, b, maths.Nearest)
	alpha := secant(p, a, b, fa, fb)

	// 凹函数：端点残差取最小值
	dmin := maths.New(p)
	maths.Min(dmin, residual(p, maths.Log, alpha, a, maths.Down), residual(p, maths.Log, alpha, b, maths.Down), maths.Down)

	// 极值点 u = 1/alpha，残差 log(1/alpha) - 1 取上界
	du := maths.New(p)
	maths.Quo(du, bigOne, alpha, maths.Up)
	maths.Log(du, du, maths.Up)
	maths.Sub(du, du, bigOne, maths.Up)

	gamma, delta := chebyshev(p, dmin, du)
	z.affine1(x, alpha, gamma, delta, r)
}

// Sqrt z = √x，值域含负数时为 NaN
func (z *Form) Sqrt(x *Form) *Form {
	z.do("sqrt", func() { z.sqrt(x) })
	return z
}

func (z *Form) sqrt(x *Form) {
	c := z.adopt(x)
	if x.state != finite || x.lo.Sign() < 0 {
		z.SetNaN()
		return
	}
	var r *interval
	if c.mixing() {
		r = monotoneRange(z.prec, x.interval(), maths.Sqrt, false)
	}
	if x.radius.Sign() == 0 {
		z.point(x, maths.Sqrt, r)
		return
	}
	p := c.iprec
	a, b := x.lo, x.hi
	alpha := maths.New(p)
	sa, sb := maths.New(p), maths.New(p)
	maths.Sqrt(sa, a, maths.Nearest)
	maths.Sqrt(sb, b, maths.Nearest)
	maths.Add(alpha, sa, sb, maths.Nearest)
	maths.Quo(alpha, bigOne, alpha, maths.Nearest)

	// 凹函数：端点残差取最小值
	dmin := maths.New(p)
	maths.Min(dmin, residual(p, maths.Sqrt, alpha, a, maths.Down), residual(p, maths.Sqrt, alpha, b, maths.Down), maths.Down)

	// 极值点 u = 1/(4·alpha²)，残差 1/(4·alpha) 取上界
	du := maths.New(p)
	maths.Quo(du, bigOne, alpha, maths.Up)
	maths.Mul2Exp(du, du, -2, maths.Up)

	gamma, delta := chebyshev(p, dmin, du)
	z.affine1(x, alpha, gamma, delta, r)
}

// Inv z = 1/x，值域跨越零时为 NaN，精确的 0 得到 Inf
func (z *Form) Inv(x *Form) *Form {
	z.do("inv", func() { z.inv(x) })
	return z
}

func (z *Form) inv(x *Form) {
	c := z.adopt(x)
	if x.state != finite {
		z.SetNaN()
		return
	}
	if x.radius.Sign() == 0 && x.centre.Sign() == 0 {
		z.SetInf()
		return
	}
	if x.HasZero() {
		z.SetNaN()
		return
	}
	var r *interval
	if c.mixing() {
		r = monotoneRange(z.prec, x.interval(), quo1, true)
	}
	if x.radius.Sign() == 0 {
		b := c.builder(z.prec, 1)
		b.round(quo1(b.centre, x.centre, maths.Nearest), b.centre)
		b.finish(z, r)
		return
	}
	p := c.iprec
	// 负区间镜像到正区间，最后 gamma 取反
	negative := x.hi.Sign() < 0
	a, b := x.lo, x.hi
	if negative {
		a, b = new(big.Float).Neg(x.hi), new(big.Float).Neg(x.lo)
	}
	alpha := maths.New(p)
	maths.Quo(alpha, bigOne, b, maths.Nearest)
	maths.Quo(alpha, alpha, a, maths.Nearest)
	alpha.Neg(alpha)

	// 凸函数：端点残差取最大值
	dmax := maths.New(p)
	maths.Max(dmax, residual(p, quo1, alpha, a, maths.Up), residual(p, quo1, alpha, b, maths.Up), maths.Up)

	// 极值点 u = 1/√(-alpha)，残差 2·√(-alpha) 取下界
	du := maths.New(p)
	maths.Sqrt(du, new(big.Float).Neg(alpha), maths.Down)
	maths.Mul2Exp(du, du, 1, maths.Down)

	gamma, delta := chebyshev(p, du, dmax)
	if negative {
		gamma.Neg(gamma)
	}
	z.affine1(x, alpha, gamma, delta, r)
}

// quo1 z = 1/x
func quo1(z, x *big.Float, rnd maths.Rounding) bool {
	return maths.Quo(z, bigOne, x, rnd)
}
