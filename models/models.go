// Package models 提供若干以仿射形式求解的动力系统
package models

import (
	"affine"
)

// must 解析十进制常数，常数写错时直接 panic
func must(c *affine.Context, s string) *affine.Form {
	x, err := c.NewString(s)
	if err != nil {
		panic(err)
	}
	return x
}
