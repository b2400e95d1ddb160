package affine

import (
	"math/big"
	"math/rand"
	"testing"

	"affine/maths"
)

// evalPrec 求真值时使用的精度
const evalPrec = 512

// testForm 直接由符号与偏差构造仿射形式，syms 必须递增
func testForm(ctx *Context, centre float64, syms []uint64, devs []float64) *Form {
	z := &Form{ctx: ctx, prec: ctx.prec, centre: maths.NewFloat64(ctx.prec, centre)}
	for i, s := range syms {
		if devs[i] != 0 {
			z.terms = append(z.terms, Term{Symbol: s, Deviation: maths.NewFloat64(ctx.iprec, devs[i])})
		}
	}
	z.refresh()
	return z
}

// symbolPool 预先分配一组输入符号，随机形式从中取符号以制造共享
func symbolPool(ctx *Context, n int) []uint64 {
	pool := make([]uint64, n)
	for i := range pool {
		pool[i] = ctx.NextSymbol()
	}
	return pool
}

// randomForm 中心在 [lo, hi]，半径不超过 maxRad
func randomForm(rng *rand.Rand, ctx *Context, pool []uint64, lo, hi, maxRad float64) *Form {
	centre := lo + rng.Float64()*(hi-lo)
	var syms []uint64
	var devs []float64
	total := 0.0
	for _, s := range pool {
		if rng.Intn(2) == 0 {
			continue
		}
		d := rng.Float64()*2 - 1
		syms = append(syms, s)
		devs = append(devs, d)
		if d < 0 {
			total -= d
		} else {
			total += d
		}
	}
	if total > 0 {
		scale := rng.Float64() * maxRad / total
		for i := range devs {
			devs[i] *= scale
		}
	}
	return testForm(ctx, centre, syms, devs)
}

// randomEps 为每个符号取 ε ∈ [-1, 1]
func randomEps(rng *rand.Rand, pool []uint64) map[uint64]*big.Float {
	eps := make(map[uint64]*big.Float, len(pool))
	for _, s := range pool {
		eps[s] = big.NewFloat(rng.Float64()*2 - 1)
	}
	return eps
}

// evalForm 在给定 ε 下求值；未给出 ε 的符号，其 |偏差| 之和作为剩余半径
func evalForm(x *Form, eps map[uint64]*big.Float) (value, rest *big.Float) {
	value = new(big.Float).SetPrec(evalPrec).Set(x.centre)
	rest = new(big.Float).SetPrec(evalPrec)
	t := new(big.Float).SetPrec(evalPrec)
	for _, term := range x.terms {
		if e, ok := eps[term.Symbol]; ok {
			t.Mul(term.Deviation, e)
			value.Add(value, t)
		} else {
			rest.Add(rest, t.Abs(term.Deviation))
		}
	}
	return value, rest
}

// tolerance 真值计算本身的误差容限
func tolerance(v *big.Float) *big.Float {
	tol := new(big.Float).SetPrec(evalPrec).Abs(v)
	tol.Add(tol, big.NewFloat(1))
	return tol.SetMantExp(tol, -400)
}

// checkEnclosure 检查 z 在已知符号上的取值与真值之差被新噪声项覆盖，且值域包含真值
func checkEnclosure(t *testing.T, name string, z *Form, eps map[uint64]*big.Float, truth *big.Float) {
	t.Helper()
	if z.IsNaN() || z.IsInf() {
		t.Errorf("%s: 结果为 %v", name, z)
		return
	}
	value, rest := evalForm(z, eps)
	tol := tolerance(truth)
	diff := new(big.Float).SetPrec(evalPrec).Sub(truth, value)
	diff.Abs(diff)
	rest.Add(rest, tol)
	if diff.Cmp(rest) > 0 {
		t.Errorf("%s: 真值 %v 与仿射取值 %v 之差 %v 超出剩余半径 %v", name, truth, value, diff, rest)
	}
	checkBounds(t, name, z, truth)
}

// checkBounds 检查值域包含真值
func checkBounds(t *testing.T, name string, z *Form, truth *big.Float) {
	t.Helper()
	tol := tolerance(truth)
	lo := new(big.Float).SetPrec(evalPrec).Sub(z.lo, tol)
	hi := new(big.Float).SetPrec(evalPrec).Add(z.hi, tol)
	if truth.Cmp(lo) < 0 || truth.Cmp(hi) > 0 {
		t.Errorf("%s: 真值 %v 不在 [%v, %v] 内", name, truth, z.lo, z.hi)
	}
}

// checkInvariants 检查符号递增、无零偏差以及半径一致
func checkInvariants(t *testing.T, name string, z *Form) {
	t.Helper()
	if z.state != finite {
		if len(z.terms) != 0 {
			t.Errorf("%s: NaN/Inf 形式不应有噪声项", name)
		}
		return
	}
	exact := new(big.Float).SetPrec(4096)
	for i, term := range z.terms {
		if i > 0 && term.Symbol <= z.terms[i-1].Symbol {
			t.Errorf("%s: 符号未严格递增 %d <= %d", name, term.Symbol, z.terms[i-1].Symbol)
		}
		if term.Deviation.Sign() == 0 {
			t.Errorf("%s: 第 %d 项偏差为零", name, i)
		}
		exact.Add(exact, new(big.Float).Abs(term.Deviation))
	}
	if z.radius.Cmp(exact) < 0 {
		t.Errorf("%s: 半径 %v 小于偏差绝对值之和 %v", name, z.radius, exact)
	}
	slack := new(big.Float).SetPrec(4096).SetMantExp(exact, -int(z.ctx.iprec)+8)
	slack.Add(slack, exact)
	if z.radius.Cmp(slack) > 0 {
		t.Errorf("%s: 半径 %v 明显大于偏差绝对值之和 %v", name, z.radius, exact)
	}
}

func bigf(x float64) *big.Float { return new(big.Float).SetPrec(evalPrec).SetFloat64(x) }

// logOnePlus 以级数求 log(1+d) 的真值，要求 |d| 很小
func logOnePlus(d *big.Float) *big.Float {
	sum := new(big.Float).SetPrec(evalPrec)
	pow := new(big.Float).SetPrec(evalPrec).SetInt64(1)
	term := new(big.Float).SetPrec(evalPrec)
	for n := int64(1); n <= 40; n++ {
		pow.Mul(pow, d)
		term.Quo(pow, big.NewFloat(float64(n)))
		if n%2 == 0 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}
	return sum
}
