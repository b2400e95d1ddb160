package affine

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"affine/maths"
)

// init 保证 z 已有上下文与精度
func (z *Form) init() *Context {
	c := z.context()
	if z.prec == 0 {
		z.prec = c.prec
	}
	return c
}

// setScalar 设置中心 x 与额外半径 rad（可为 nil），中心的舍入误差与半径合并为一个新噪声项
func (z *Form) setScalar(x, rad *big.Float) *Form {
	switch {
	case x.IsInf() || (rad != nil && rad.IsInf()):
		return z.SetInf()
	}
	c := z.init()
	b := c.builder(z.prec, 1)
	b.round(maths.Set(b.centre, x, maths.Nearest), b.centre)
	b.widen(rad)
	b.finish(z, nil)
	return z
}

// SetFloat64 z = x
func (z *Form) SetFloat64(x float64) *Form {
	return z.SetFloat64Rad(x, 0)
}

// SetFloat64Rad z = x ± |r|
func (z *Form) SetFloat64Rad(x, r float64) *Form {
	z.init()
	if math.IsNaN(x) || math.IsNaN(r) {
		return z.SetNaN()
	}
	if math.IsInf(x, 0) || math.IsInf(r, 0) {
		return z.SetInf()
	}
	return z.setScalar(big.NewFloat(x), big.NewFloat(r))
}

// SetBig z = x
func (z *Form) SetBig(x *big.Float) *Form {
	z.init()
	return z.setScalar(x, nil)
}

// SetBigRad z = x ± |r|
func (z *Form) SetBigRad(x, r *big.Float) *Form {
	z.init()
	return z.setScalar(x, r)
}

// SetRat z = x，中心舍入误差计入新噪声项
func (z *Form) SetRat(x *big.Rat) *Form {
	return z.setRat(x, nil)
}

func (z *Form) setRat(x, r *big.Rat) *Form {
	c := z.init()
	centre := maths.New(z.prec)
	centre.SetRat(x)
	var rad *big.Float
	if centre.Acc() != big.Exact {
		rad = maths.ErrorBound(centre, false)
	}
	if r != nil {
		ra := maths.New(c.iprec).SetMode(big.ToPositiveInf)
		ra.SetRat(new(big.Rat).Abs(r))
		if rad != nil {
			ra.Add(ra, rad)
		}
		rad = ra
	}
	return z.setScalar(centre, rad)
}

// SetString 由十进制字符串设置，支持 "nan"、"inf" 与分数 "p/q"
func (z *Form) SetString(s string) (*Form, error) {
	x, st, err := parseScalar(s)
	if err != nil {
		return z, err
	}
	z.init()
	if st != finite {
		return z.special(st), nil
	}
	return z.setRat(x, nil), nil
}

// SetStringRad 由十进制中心与半径字符串设置
func (z *Form) SetStringRad(x, r string) (*Form, error) {
	xv, xs, err := parseScalar(x)
	if err != nil {
		return z, err
	}
	rv, rs, err := parseScalar(r)
	if err != nil {
		return z, err
	}
	z.init()
	switch {
	case xs == nan || rs == nan:
		return z.SetNaN(), nil
	case xs == inf || rs == inf:
		return z.SetInf(), nil
	}
	return z.setRat(xv, rv), nil
}

// parseScalar 精确解析十进制或分数字符串
func parseScalar(s string) (*big.Rat, state, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch strings.TrimLeft(t, "+-") {
	case "nan":
		return nil, nan, nil
	case "inf", "infinity":
		return nil, inf, nil
	}
	x, ok := new(big.Rat).SetString(t)
	if !ok {
		return nil, finite, fmt.Errorf("%w: 无法解析数值 %q", ErrSyntax, s)
	}
	return x, finite, nil
}
