package affine

import (
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"affine/maths"
)

const (
	DefaultPrecision         = 53  // 默认工作精度
	DefaultInternalPrecision = 256 // 默认内部精度
)

// RangeMethod 值域计算方法
type RangeMethod uint8

const (
	AffineOnly       RangeMethod = iota // 仅使用仿射值域 centre ± radius
	MixedIAAA                           // 仿射值域与区间运算值域求交
	MixedTrimmedIAAA                    // 求交后再修剪新误差项
)

func (m RangeMethod) String() string {
	switch m {
	case MixedIAAA:
		return "mixed"
	case MixedTrimmedIAAA:
		return "mixed-trimmed"
	}
	return "affine"
}

// ParseRangeMethod 解析值域方法名称
func ParseRangeMethod(s string) (RangeMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "affine", "aa":
		return AffineOnly, nil
	case "mixed", "iaaa":
		return MixedIAAA, nil
	case "mixed-trimmed", "trimmed":
		return MixedTrimmedIAAA, nil
	}
	return AffineOnly, fmt.Errorf("%w: 未知的值域方法 %q", ErrSyntax, s)
}

// MulMethod 乘法二次项的估计方式
type MulMethod uint8

const (
	Tight MulMethod = iota // Rump-Kashiwagi 紧致估计
	Loose                  // rad(x)·rad(y)
)

func (m MulMethod) String() string {
	if m == Loose {
		return "loose"
	}
	return "tight"
}

// ParseMulMethod 解析乘法估计方式
func ParseMulMethod(s string) (MulMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tight":
		return Tight, nil
	case "loose":
		return Loose, nil
	}
	return Tight, fmt.Errorf("%w: 未知的乘法方式 %q", ErrSyntax, s)
}

// Context 保存符号分配器与精度等全局策略。
// 同一 Context 派生出的上下文共享符号分配器，符号分配可并发调用，
// 其余设置不加锁，修改时需由调用方同步。
type Context struct {
	symbols     *atomic.Uint64
	prec        uint
	iprec       uint
	rangeMethod RangeMethod
	mulMethod   MulMethod
	log         *zap.Logger
}

// Option 上下文选项
type Option func(*Context)

// WithPrecision 设置默认工作精度
func WithPrecision(prec uint) Option {
	return func(c *Context) { c.prec = maths.ClampPrecision(prec) }
}

// WithInternalPrecision 设置内部精度
func WithInternalPrecision(prec uint) Option {
	return func(c *Context) { c.iprec = maths.ClampPrecision(prec) }
}

// WithRangeMethod 设置值域方法
func WithRangeMethod(m RangeMethod) Option {
	return func(c *Context) { c.rangeMethod = m }
}

// WithMulMethod 设置乘法估计方式
func WithMulMethod(m MulMethod) Option {
	return func(c *Context) { c.mulMethod = m }
}

// WithLogger 设置调试日志
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// NewContext 创建上下文
func NewContext(opts ...Option) *Context {
	c := &Context{
		symbols: new(atomic.Uint64),
		prec:    DefaultPrecision,
		iprec:   DefaultInternalPrecision,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fixPrecision()
	return c
}

// Derive 派生共享符号分配器的上下文
func (c *Context) Derive(opts ...Option) *Context {
	d := *c
	for _, opt := range opts {
		opt(&d)
	}
	d.fixPrecision()
	return &d
}

// 内部精度不得低于工作精度
func (c *Context) fixPrecision() {
	if c.iprec < c.prec {
		c.iprec = c.prec
	}
}

// NextSymbol 分配新的噪声符号，严格递增
func (c *Context) NextSymbol() uint64 { return c.symbols.Add(1) }

// Symbols 已分配的符号数量
func (c *Context) Symbols() uint64 { return c.symbols.Load() }

// Precision 默认工作精度
func (c *Context) Precision() uint { return c.prec }

// SetPrecision 设置默认工作精度，必要时同时提升内部精度
func (c *Context) SetPrecision(prec uint) {
	c.prec = maths.ClampPrecision(prec)
	c.fixPrecision()
}

// InternalPrecision 内部精度
func (c *Context) InternalPrecision() uint { return c.iprec }

// SetInternalPrecision 设置内部精度，低于工作精度时自动提升到工作精度
func (c *Context) SetInternalPrecision(prec uint) {
	c.iprec = maths.ClampPrecision(prec)
	c.fixPrecision()
}

// RangeMethod 值域方法
func (c *Context) RangeMethod() RangeMethod { return c.rangeMethod }

// SetRangeMethod 设置值域方法
func (c *Context) SetRangeMethod(m RangeMethod) { c.rangeMethod = m }

// MulMethod 乘法估计方式
func (c *Context) MulMethod() MulMethod { return c.mulMethod }

// SetMulMethod 设置乘法估计方式
func (c *Context) SetMulMethod(m MulMethod) { c.mulMethod = m }

// Logger 调试日志
func (c *Context) Logger() *zap.Logger { return c.log }

// mixing 是否需要计算区间运算值域
func (c *Context) mixing() bool { return c.rangeMethod != AffineOnly }

// trace 记录定义域异常
func (c *Context) trace(op string, z *Form) {
	if z.state == finite {
		return
	}
	if ce := c.log.Check(zap.DebugLevel, "domain"); ce != nil {
		ce.Write(zap.String("op", op), zap.Stringer("state", z.state))
	}
}

// New 创建默认工作精度的零
func (c *Context) New() *Form { return c.NewPrec(c.prec) }

// NewPrec 创建指定工作精度的零
func (c *Context) NewPrec(prec uint) *Form {
	z := &Form{ctx: c, prec: maths.ClampPrecision(prec)}
	return z.SetZero()
}

// NewFloat64 由 float64 创建
func (c *Context) NewFloat64(x float64) *Form { return c.New().SetFloat64(x) }

// NewFloat64Rad 由中心与半径创建
func (c *Context) NewFloat64Rad(x, r float64) *Form { return c.New().SetFloat64Rad(x, r) }

// NewBig 由 big.Float 创建
func (c *Context) NewBig(x *big.Float) *Form { return c.New().SetBig(x) }

// NewRat 由有理数创建
func (c *Context) NewRat(x *big.Rat) *Form { return c.New().SetRat(x) }

// NewString 由十进制字符串创建
func (c *Context) NewString(s string) (*Form, error) {
	z := c.New()
	if _, err := z.SetString(s); err != nil {
		return nil, err
	}
	return z, nil
}

// NewStringRad 由十进制中心与半径字符串创建
func (c *Context) NewStringRad(x, r string) (*Form, error) {
	z := c.New()
	if _, err := z.SetStringRad(x, r); err != nil {
		return nil, err
	}
	return z, nil
}
