package ode

import (
	"go.uber.org/zap"

	"affine"
)

// Stepper 按固定方法推进方程组的状态
type Stepper struct {
	sys    System
	method Method
	ctx    *affine.Context
	log    *zap.Logger

	t0 *affine.Form
	x0 []*affine.Form
	t  *affine.Form
	x  []*affine.Form

	steps int

	// ReduceEvery 每隔多少步合并一次小噪声项，0 表示不合并
	ReduceEvery int
	// ReduceFraction 合并 |deviation| <= ReduceFraction·radius 的噪声项
	ReduceFraction float64
}

// NewStepper 创建积分器，初值会被复制
func NewStepper(sys System, method Method, t0 *affine.Form, x0 []*affine.Form) (*Stepper, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	if method == nil {
		return nil, ErrMethod
	}
	if len(x0) != sys.Dim() {
		return nil, ErrDimension
	}
	c := t0.Context()
	s := &Stepper{
		sys:    sys,
		method: method,
		ctx:    c,
		log:    c.Logger(),
		t0:     c.New().Set(t0),
		x0:     copyForms(c, x0),
	}
	s.Reset()
	return s, nil
}

func copyForms(c *affine.Context, xs []*affine.Form) []*affine.Form {
	out := make([]*affine.Form, len(xs))
	for i, x := range xs {
		out[i] = c.New().Set(x)
	}
	return out
}

// Reset 回到初值
func (s *Stepper) Reset() {
	s.t = s.ctx.New().Set(s.t0)
	s.x = copyForms(s.ctx, s.x0)
	s.steps = 0
}

// Step 以步长 h 前进一步
func (s *Stepper) Step(h *affine.Form) {
	next := forms(s.ctx, len(s.x))
	s.method.Step(s.sys, s.t, h, s.x, next)
	s.t.Add(s.t, h)
	s.x = next
	s.steps++
	if s.ReduceEvery > 0 && s.steps%s.ReduceEvery == 0 {
		for _, x := range s.x {
			x.ReduceSmall(s.ReduceFraction)
		}
		if ce := s.log.Check(zap.DebugLevel, "reduce"); ce != nil {
			ce.Write(zap.String("method", s.method.Name()), zap.Int("step", s.steps), zap.Int("terms", s.Terms()))
		}
	}
}

// StepFloat64 以 float64 步长 h 前进一步
func (s *Stepper) StepFloat64(h float64) {
	s.Step(s.ctx.NewFloat64(h))
}

// Run 前进 n 步，每步之后调用 fn（可为 nil）
func (s *Stepper) Run(h *affine.Form, n int, fn func(step int, t *affine.Form, x []*affine.Form)) {
	for i := 0; i < n; i++ {
		s.Step(h)
		if fn != nil {
			fn(s.steps, s.t, s.x)
		}
	}
}

// T 当前时间
func (s *Stepper) T() *affine.Form { return s.t }

// X 当前状态，调用方不应修改
func (s *Stepper) X() []*affine.Form { return s.x }

// Steps 已完成的步数
func (s *Stepper) Steps() int { return s.steps }

// Method 积分方法
func (s *Stepper) Method() Method { return s.method }

// Terms 所有状态分量的噪声项总数
func (s *Stepper) Terms() int {
	n := 0
	for _, x := range s.x {
		n += x.NumTerms()
	}
	return n
}
