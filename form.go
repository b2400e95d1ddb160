package affine

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"affine/maths"
)

// state 仿射形式的数值状态
type state uint8

const (
	finite state = iota
	nan
	inf
)

func (s state) String() string {
	switch s {
	case nan:
		return "NaN"
	case inf:
		return "Inf"
	}
	return "finite"
}

// Term 一个噪声项：符号与偏差系数
type Term struct {
	Symbol    uint64
	Deviation *big.Float
}

// Form 仿射形式 centre + Σ deviation_i·ε_i，ε_i ∈ [-1, 1]。
//
// 中心按工作精度保存，偏差与半径按内部精度保存；噪声项按符号严格递增，
// 且不保存零偏差。NaN 与 Inf 形式没有噪声项，半径为 +Inf。
// 零值 Form 在第一次作为运算结果时继承操作数的上下文与精度。
type Form struct {
	ctx    *Context
	prec   uint
	state  state
	centre *big.Float
	radius *big.Float
	terms  []Term
	lo, hi *big.Float // 值域，工作精度，向外舍入
}

// context 返回所属上下文
func (z *Form) context() *Context {
	if z.ctx == nil {
		panic("affine: Form 未关联 Context")
	}
	return z.ctx
}

// adopt 让尚未初始化的 z 继承 x 的上下文与精度
func (z *Form) adopt(x *Form) *Context {
	if z.ctx == nil {
		z.ctx = x.context()
	}
	if z.prec == 0 {
		z.prec = x.prec
	}
	return z.ctx
}

// Context 所属上下文
func (z *Form) Context() *Context { return z.ctx }

// Precision 工作精度
func (z *Form) Precision() uint { return z.prec }

// Centre 中心值副本，NaN 与 Inf 形式返回 0
func (z *Form) Centre() *big.Float { return maths.Copy(z.centre) }

// Radius 半径副本
func (z *Form) Radius() *big.Float { return maths.Copy(z.radius) }

// NumTerms 噪声项数量
func (z *Form) NumTerms() int { return len(z.terms) }

// Terms 噪声项副本
func (z *Form) Terms() []Term {
	terms := make([]Term, len(z.terms))
	for i, t := range z.terms {
		terms[i] = Term{Symbol: t.Symbol, Deviation: maths.Copy(t.Deviation)}
	}
	return terms
}

// Bounds 值域 [lo, hi]，按工作精度向外舍入
func (z *Form) Bounds() (lo, hi *big.Float) {
	return maths.Copy(z.lo), maths.Copy(z.hi)
}

// Float64Bounds 值域的 float64 外包，NaN 形式返回 NaN
func (z *Form) Float64Bounds() (lo, hi float64) {
	if z.state == nan {
		return math.NaN(), math.NaN()
	}
	lo, acc := z.lo.Float64()
	if acc == big.Above {
		lo = math.Nextafter(lo, math.Inf(-1))
	}
	hi, acc = z.hi.Float64()
	if acc == big.Below {
		hi = math.Nextafter(hi, math.Inf(1))
	}
	return lo, hi
}

// Float64 中心的 float64 近似，NaN 形式返回 NaN
func (z *Form) Float64() float64 {
	if z.state == nan {
		return math.NaN()
	}
	f, _ := z.centre.Float64()
	return f
}

// String 以 "centre ± radius" 形式输出
func (z *Form) String() string {
	switch z.state {
	case nan:
		return "NaN"
	case inf:
		return "Inf"
	}
	var sb strings.Builder
	sb.WriteString(z.centre.Text('g', -1))
	sb.WriteString(" ± ")
	sb.WriteString(z.radius.Text('g', 10))
	fmt.Fprintf(&sb, " [%d]", len(z.terms))
	return sb.String()
}

// swap 用新构造的形式整体替换 z
func (z *Form) swap(n *Form) {
	*z = *n
}

// special 设置为规范的 NaN 或 Inf 形式
func (z *Form) special(s state) *Form {
	c := z.context()
	if z.prec == 0 {
		z.prec = c.prec
	}
	z.state = s
	z.centre = maths.New(z.prec)
	z.radius = maths.New(c.iprec).SetInf(false)
	z.terms = nil
	z.lo = maths.New(z.prec).SetInf(true)
	z.hi = maths.New(z.prec).SetInf(false)
	return z
}

// SetNaN 设置为 NaN
func (z *Form) SetNaN() *Form { return z.special(nan) }

// SetInf 设置为 Inf（整个实数轴）
func (z *Form) SetInf() *Form { return z.special(inf) }

// SetZero 设置为精确的 0
func (z *Form) SetZero() *Form {
	c := z.context()
	if z.prec == 0 {
		z.prec = c.prec
	}
	z.state = finite
	z.centre = maths.New(z.prec)
	z.radius = maths.New(c.iprec)
	z.terms = nil
	z.lo = maths.New(z.prec)
	z.hi = maths.New(z.prec)
	return z
}

// SetPrecision 修改工作精度，中心重新舍入，舍入误差计入新噪声项
func (z *Form) SetPrecision(prec uint) *Form {
	prec = maths.ClampPrecision(prec)
	if z.state != finite {
		z.prec = prec
		return z.special(z.state)
	}
	z.do("set_precision", func() { z.round(z, prec) })
	return z
}

// do 执行运算，把 math/big 抛出的 ErrNaN 转为 NaN 形式
func (z *Form) do(op string, fn func()) {
	defer z.guard(op)
	fn()
	if z.ctx != nil {
		z.ctx.trace(op, z)
	}
}

// round 把 x 复制为工作精度 prec 的形式
func (z *Form) round(x *Form, prec uint) {
	c := z.adopt(x)
	b := c.builder(prec, len(x.terms)+1)
	b.round(maths.Set(b.centre, x.centre, maths.Nearest), b.centre)
	for _, t := range x.terms {
		b.terms = append(b.terms, Term{Symbol: t.Symbol, Deviation: maths.Copy(t.Deviation)})
	}
	b.finish(z, x.interval())
}
