// Package affine 实现任意精度的仿射算术。
//
// 仿射形式 x = c + Σ x_i·ε_i 由中心 c、噪声项 (符号 i, 偏差 x_i) 与半径 Σ|x_i| 组成，
// 每个 ε_i 是取值于 [-1, 1] 的未知量。共享符号的形式之间保持一阶相关性，
// 因此 x - x 精确为 0，而区间算术会得到 [-2r, 2r]。
//
// 每个运算的舍入误差与线性化误差都计入一个新符号的噪声项，
// 结果在仿射意义下包含所有输入取值对应的真值。中心按工作精度存放，
// 偏差与半径按内部精度存放，符号由 Context 统一分配。
//
//	ctx := affine.NewContext(affine.WithPrecision(53))
//	x := ctx.NewFloat64Rad(1, 0.5)
//	y := ctx.New().Mul(x, x)
//	y.Sub(y, x)
//	lo, hi := y.Float64Bounds()
package affine
