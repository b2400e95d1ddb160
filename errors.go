package affine

import (
	"errors"
	"math/big"
)

var (
	// ErrSyntax 数值或名称格式错误
	ErrSyntax = errors.New("格式错误")
	// ErrTermOverflow 噪声项数量超出可分配范围
	ErrTermOverflow = errors.New("噪声项数量溢出")
)

// maxTerms 单个仿射形式的噪声项上限
const maxTerms = 1 << 30

// makeTerms 分配噪声项存储，超出上限时立即失败
func makeTerms(capacity int) []Term {
	if capacity < 0 || capacity > maxTerms {
		panic(ErrTermOverflow)
	}
	return make([]Term, 0, capacity)
}

// guard 把运算过程中 math/big 抛出的 ErrNaN 转为 NaN 形式
func (z *Form) guard(op string) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(big.ErrNaN); !ok {
		panic(r)
	}
	z.SetNaN()
	z.context().trace(op, z)
}
