package maths

import "math/big"

// Rounding 舍入方向
type Rounding uint8

const (
	Nearest Rounding = iota // 就近舍入，平局取偶
	Zero                    // 向零舍入
	Up                      // 向正无穷舍入
	Down                    // 向负无穷舍入
	Away                    // 远离零舍入
)

// Mode 转换为 big.RoundingMode
func (r Rounding) Mode() big.RoundingMode {
	switch r {
	case Zero:
		return big.ToZero
	case Up:
		return big.ToPositiveInf
	case Down:
		return big.ToNegativeInf
	case Away:
		return big.AwayFromZero
	}
	return big.ToNearestEven
}

// Directed 是否为定向舍入
func (r Rounding) Directed() bool { return r != Nearest }

// Reverse 返回相反的定向舍入，就近舍入保持不变
func (r Rounding) Reverse() Rounding {
	switch r {
	case Up:
		return Down
	case Down:
		return Up
	case Zero:
		return Away
	case Away:
		return Zero
	}
	return r
}

func (r Rounding) String() string {
	switch r {
	case Zero:
		return "RNDZ"
	case Up:
		return "RNDU"
	case Down:
		return "RNDD"
	case Away:
		return "RNDA"
	}
	return "RNDN"
}

// upward 判断符号为 sign 的值在该方向下是否朝正无穷舍入
func (r Rounding) upward(sign int) bool {
	switch r {
	case Up:
		return true
	case Zero:
		return sign < 0
	case Away:
		return sign > 0
	}
	return false
}
