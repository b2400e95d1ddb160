package ode

import (
	"errors"
	"fmt"
)

var (
	ErrNilSystem = errors.New("方程组不能为空")
	ErrDimension = errors.New("维数不一致")
	ErrMethod    = errors.New("未知的积分方法")
)

func errDim(rows, cols int) error {
	return fmt.Errorf("%w: 系数矩阵 %dx%d 不是非空方阵", ErrDimension, rows, cols)
}
