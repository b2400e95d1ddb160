package ode

import (
	"math/big"

	"gonum.org/v1/gonum/mat"

	"affine"
)

// System 常微分方程组 x' = f(t, x)
type System interface {
	// Dim 状态维数
	Dim() int
	// Derivative 计算 dx = f(t, x)，dx 已分配
	Derivative(dx []*affine.Form, t *affine.Form, x []*affine.Form)
}

// Func 由函数构造的方程组
type Func struct {
	N int
	F func(dx []*affine.Form, t *affine.Form, x []*affine.Form)
}

func (f Func) Dim() int { return f.N }

func (f Func) Derivative(dx []*affine.Form, t *affine.Form, x []*affine.Form) { f.F(dx, t, x) }

// Linear 常系数线性方程组 x' = A·x
type Linear struct {
	A *mat.Dense
}

// NewLinear 创建线性方程组，A 必须为方阵
func NewLinear(a *mat.Dense) (*Linear, error) {
	r, c := a.Dims()
	if r != c || r == 0 {
		return nil, errDim(r, c)
	}
	return &Linear{A: a}, nil
}

func (l *Linear) Dim() int {
	r, _ := l.A.Dims()
	return r
}

// Derivative dx_i = Σ_j A_ij·x_j，零系数跳过
func (l *Linear) Derivative(dx []*affine.Form, t *affine.Form, x []*affine.Form) {
	n := l.Dim()
	zero := new(big.Float)
	for i := 0; i < n; i++ {
		terms := make([]*affine.Form, 0, n)
		for j := 0; j < n; j++ {
			a := l.A.At(i, j)
			if a == 0 {
				continue
			}
			terms = append(terms, x[j].Context().New().Affine1(x[j], big.NewFloat(a), zero, nil))
		}
		dx[i].Sum(terms...)
	}
}

// Solution 精确解 exp(A·t)·x0（float64）
func (l *Linear) Solution(t float64, x0 []float64) []float64 {
	n := l.Dim()
	var at, e mat.Dense
	at.Scale(t, l.A)
	e.Exp(&at)
	var x mat.VecDense
	x.MulVec(&e, mat.NewVecDense(n, x0))
	return x.RawVector().Data
}
