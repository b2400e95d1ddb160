package affine

import (
	"math/big"
	"math/rand"
	"testing"

	"affine/maths"
)

// TestMixedNarrower 混合方法的值域包含于纯仿射值域，且仍包含真值
func TestMixedNarrower(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	aa := NewContext()
	pool := symbolPool(aa, 6)
	for _, method := range []RangeMethod{MixedIAAA, MixedTrimmedIAAA} {
		mixed := aa.Derive(WithRangeMethod(method))
		for _, u := range unaries {
			for n := 0; n < 20; n++ {
				x := randomForm(rng, aa, pool, u.lo, u.hi, u.maxRad)
				za := u.op(aa.New(), x)
				zm := u.op(mixed.New(), x)
				name := u.name + "/" + method.String()
				checkInvariants(t, name, zm)
				if zm.lo.Cmp(za.lo) < 0 || zm.hi.Cmp(za.hi) > 0 {
					t.Errorf("%s: 混合值域 [%v, %v] 超出仿射值域 [%v, %v]", name, zm.lo, zm.hi, za.lo, za.hi)
				}
				for k := 0; k < 10; k++ {
					eps := randomEps(rng, pool)
					xv, _ := evalForm(x, eps)
					truth := new(big.Float).SetPrec(evalPrec)
					u.truth(truth, xv, maths.Nearest)
					checkBounds(t, name, zm, truth)
				}
			}
		}
		for _, bin := range binaries {
			for n := 0; n < 20; n++ {
				x := randomForm(rng, aa, pool, -5, 5, 2)
				y := randomForm(rng, aa, pool, bin.ylo, 5, 2)
				za := bin.op(aa.New(), x, y)
				zm := bin.op(mixed.New(), x, y)
				name := bin.name + "/" + method.String()
				checkInvariants(t, name, zm)
				if zm.lo.Cmp(za.lo) < 0 || zm.hi.Cmp(za.hi) > 0 {
					t.Errorf("%s: 混合值域 [%v, %v] 超出仿射值域 [%v, %v]", name, zm.lo, zm.hi, za.lo, za.hi)
				}
				for k := 0; k < 10; k++ {
					eps := randomEps(rng, pool)
					xv, _ := evalForm(x, eps)
					yv, _ := evalForm(y, eps)
					truth := new(big.Float).SetPrec(evalPrec)
					bin.truth(truth, xv, yv, maths.Nearest)
					checkBounds(t, name, zm, truth)
				}
			}
		}
	}
}

// TestMixedEnclosure 不修剪的混合方法保持仿射包含性
func TestMixedEnclosure(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	ctx := NewContext(WithRangeMethod(MixedIAAA))
	pool := symbolPool(ctx, 6)
	for n := 0; n < 30; n++ {
		x := randomForm(rng, ctx, pool, 1, 3, 0.5)
		y := randomForm(rng, ctx, pool, 1, 3, 0.5)
		// exp(x)·y - x
		z := ctx.New().Exp(x)
		z.Mul(z, y)
		z.Sub(z, x)
		for k := 0; k < 20; k++ {
			eps := randomEps(rng, pool)
			xv, _ := evalForm(x, eps)
			yv, _ := evalForm(y, eps)
			truth := new(big.Float).SetPrec(evalPrec)
			maths.Exp(truth, xv, maths.Nearest)
			truth.Mul(truth, yv)
			truth.Sub(truth, xv)
			checkEnclosure(t, "exp(x)·y-x", z, eps, truth)
		}
	}
}

// TestMixedExp 单调函数的区间值域比切比雪夫近似的仿射值域更窄
func TestMixedExp(t *testing.T) {
	aa := NewContext()
	mixed := aa.Derive(WithRangeMethod(MixedIAAA))
	x := aa.NewFloat64Rad(1, 0.5)
	za := aa.New().Exp(x)
	zm := mixed.New().Exp(x)
	wa := new(big.Float).Sub(za.hi, za.lo)
	wm := new(big.Float).Sub(zm.hi, zm.lo)
	if wm.Cmp(wa) >= 0 {
		t.Errorf("混合值域宽度 %v 应小于仿射值域宽度 %v", wm, wa)
	}
	lo, hi := new(big.Float).SetPrec(evalPrec), new(big.Float).SetPrec(evalPrec)
	maths.Exp(lo, big.NewFloat(0.5), maths.Down)
	maths.Exp(hi, big.NewFloat(1.5), maths.Up)
	if zm.lo.Cmp(lo) > 0 || zm.hi.Cmp(hi) < 0 {
		t.Errorf("值域 [%v, %v] 未包含 [e^0.5, e^1.5]", zm.lo, zm.hi)
	}
	// 值域的宽度与真实值域相差不超过若干 ulp
	slack := new(big.Float).Sub(hi, lo)
	slack.SetMantExp(slack, -40)
	slack.Add(slack, new(big.Float).Sub(hi, lo))
	if wm.Cmp(slack) > 0 {
		t.Errorf("混合值域 [%v, %v] 过宽", zm.lo, zm.hi)
	}
}

// TestTrimmedDropsTerm 修剪模式下区间值域足够窄时可去掉新误差项
func TestTrimmedDropsTerm(t *testing.T) {
	aa := NewContext()
	trimmed := aa.Derive(WithRangeMethod(MixedTrimmedIAAA))
	x := aa.NewFloat64Rad(1, 0.5)
	za := aa.New().Exp(x)
	zt := trimmed.New().Exp(x)
	if zt.NumTerms() > za.NumTerms() {
		t.Errorf("修剪后项数 %d 不应多于 %d", zt.NumTerms(), za.NumTerms())
	}
	if zt.radius.Cmp(za.radius) > 0 {
		t.Errorf("修剪后半径 %v 不应大于 %v", zt.radius, za.radius)
	}
	checkInvariants(t, "trimmed exp", zt)
}
