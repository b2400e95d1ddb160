package ode

import (
	"fmt"
	"math/big"
	"strings"

	"affine"
)

// Method 单步积分方法
type Method interface {
	// Name 方法名称
	Name() string
	// Stages 每步求导次数
	Stages() int
	// Step 由 t 时刻的状态 x 以步长 h 计算下一步状态，写入 next
	Step(sys System, t, h *affine.Form, x, next []*affine.Form)
}

// 内置方法
var (
	Euler           Method = euler{}
	RK2             Method = rk2{}
	Trapezoidal     Method = trapezoidal{}
	BogackiShampine Method = bogackiShampine{}
)

// Methods 全部内置方法
func Methods() []Method {
	return []Method{Euler, RK2, Trapezoidal, BogackiShampine}
}

// ByName 按名称查找方法，不区分大小写
func ByName(name string) (Method, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Methods() {
		if m.Name() == n {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMethod, name)
}

// ------------------------------
// 公共运算
// ------------------------------

// forms 分配 n 个零形式
func forms(c *affine.Context, n int) []*affine.Form {
	fs := make([]*affine.Form, n)
	for i := range fs {
		fs[i] = c.New()
	}
	return fs
}

// rat 有理常数
func rat(c *affine.Context, a, b int64) *affine.Form {
	return c.New().SetRat(big.NewRat(a, b))
}

// combine z = x + h·Σ w_j·k_j，w 为 nil 时视为 1
func combine(z, x, h *affine.Form, w []*affine.Form, ks ...*affine.Form) {
	c := x.Context()
	parts := make([]*affine.Form, len(ks))
	for j, k := range ks {
		if w == nil || w[j] == nil {
			parts[j] = k
		} else {
			parts[j] = c.New().Mul(w[j], k)
		}
	}
	acc := c.New().Sum(parts...)
	acc.Mul(h, acc)
	z.Add(x, acc)
}

// stage 计算一个中间状态 x + h·Σ a_j·k_j[i]
func stage(x []*affine.Form, h *affine.Form, a []*affine.Form, ks ...[]*affine.Form) []*affine.Form {
	c := h.Context()
	out := forms(c, len(x))
	row := make([]*affine.Form, len(ks))
	for i := range x {
		for j, k := range ks {
			row[j] = k[i]
		}
		combine(out[i], x[i], h, a, row...)
	}
	return out
}

// at t + c·h
func at(t, h, c *affine.Form) *affine.Form {
	ctx := t.Context()
	d := ctx.New().Mul(c, h)
	return d.Add(t, d)
}

func derive(sys System, t *affine.Form, x []*affine.Form) []*affine.Form {
	k := forms(t.Context(), len(x))
	sys.Derivative(k, t, x)
	return k
}

// ------------------------------
// 方法实现
// ------------------------------

// euler x1 = x0 + h·f(t, x0)
type euler struct{}

func (euler) Name() string { return "euler" }

func (euler) Stages() int { return 1 }

func (euler) Step(sys System, t, h *affine.Form, x, next []*affine.Form) {
	k1 := derive(sys, t, x)
	for i := range x {
		combine(next[i], x[i], h, nil, k1[i])
	}
}

// rk2 中点法：k2 = f(t + h/2, x0 + h/2·k1)，x1 = x0 + h·k2
type rk2 struct{}

func (rk2) Name() string { return "rk2" }

func (rk2) Stages() int { return 2 }

func (rk2) Step(sys System, t, h *affine.Form, x, next []*affine.Form) {
	c := t.Context()
	half := rat(c, 1, 2)
	k1 := derive(sys, t, x)
	k2 := derive(sys, at(t, h, half), stage(x, h, []*affine.Form{half}, k1))
	for i := range x {
		combine(next[i], x[i], h, nil, k2[i])
	}
}

// trapezoidal 显式梯形法（Heun）：k2 = f(t + h, x0 + h·k1)，x1 = x0 + h/2·(k1 + k2)
type trapezoidal struct{}

func (trapezoidal) Name() string { return "trapezoidal" }

func (trapezoidal) Stages() int { return 2 }

func (trapezoidal) Step(sys System, t, h *affine.Form, x, next []*affine.Form) {
	c := t.Context()
	half := rat(c, 1, 2)
	k1 := derive(sys, t, x)
	t1 := c.New().Add(t, h)
	k2 := derive(sys, t1, stage(x, h, nil, k1))
	w := []*affine.Form{half, half}
	for i := range x {
		combine(next[i], x[i], h, w, k1[i], k2[i])
	}
}

// bogackiShampine Bogacki–Shampine 3 阶方法，定步长下只用 3 阶解
type bogackiShampine struct{}

func (bogackiShampine) Name() string { return "bogacki-shampine" }

func (bogackiShampine) Stages() int { return 3 }

func (bogackiShampine) Step(sys System, t, h *affine.Form, x, next []*affine.Form) {
	c := t.Context()
	half, threeQuarters := rat(c, 1, 2), rat(c, 3, 4)
	k1 := derive(sys, t, x)
	k2 := derive(sys, at(t, h, half), stage(x, h, []*affine.Form{half}, k1))
	k3 := derive(sys, at(t, h, threeQuarters), stage(x, h, []*affine.Form{threeQuarters}, k2))
	b := []*affine.Form{rat(c, 2, 9), rat(c, 1, 3), rat(c, 4, 9)}
	for i := range x {
		combine(next[i], x[i], h, b, k1[i], k2[i], k3[i])
	}
}
