// Package debug 记录仿射形式的演化过程并输出图表与数据文件
package debug

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"affine"
)

// ErrDimension 记录的变量个数不一致
var ErrDimension = errors.New("变量个数不一致")

// Record 记录历史状态，按 [步][变量] 存放
type Record struct {
	ID     string      // 运行编号
	Model  string      // 模型名
	Names  []string    // 变量名
	Time   []float64   // 时间列
	Lower  [][]float64 // 值域下界
	Upper  [][]float64 // 值域上界
	Centre [][]float64 // 中心
	Radius [][]float64 // 半径
	Terms  [][]int     // 噪声项个数
}

// NewRecord 创建记录，分配新的运行编号
func NewRecord(model string, names ...string) *Record {
	return &Record{
		ID:    uuid.NewString(),
		Model: model,
		Names: append([]string(nil), names...),
	}
}

// Len 已记录的步数
func (r *Record) Len() int { return len(r.Time) }

// Append 记录 t 时刻各变量的状态
func (r *Record) Append(t float64, xs ...*affine.Form) error {
	if len(xs) != len(r.Names) {
		return fmt.Errorf("%w: 记录 %d 个变量，收到 %d 个", ErrDimension, len(r.Names), len(xs))
	}
	lower := make([]float64, len(xs))
	upper := make([]float64, len(xs))
	centre := make([]float64, len(xs))
	radius := make([]float64, len(xs))
	terms := make([]int, len(xs))
	for i, x := range xs {
		lower[i], upper[i] = x.Float64Bounds()
		centre[i] = x.Float64()
		radius[i], _ = x.Radius().Float64()
		terms[i] = x.NumTerms()
	}
	r.Time = append(r.Time, t)
	r.Lower = append(r.Lower, lower)
	r.Upper = append(r.Upper, upper)
	r.Centre = append(r.Centre, centre)
	r.Radius = append(r.Radius, radius)
	r.Terms = append(r.Terms, terms)
	return nil
}

// Column 取第 i 个变量在各步的值
func Column[T any](rows [][]T, i int) []T {
	col := make([]T, len(rows))
	for k, row := range rows {
		col[k] = row[i]
	}
	return col
}

// Render 以 JSON 输出
func (r *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(r) }

// WriteDat 每个变量写一个文本文件 <dir>/<model>_<name>.dat，
// 每行为 "t lower upper centre radius terms"
func (r *Record) WriteDat(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(r.Names))
	for i, name := range r.Names {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.dat", r.Model, name))
		if err := r.writeDat(path, i); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Record) writeDat(path string, i int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	fmt.Fprintf(f, "# run %s\n", r.ID)
	for k, t := range r.Time {
		if _, err = fmt.Fprintf(f, "%g %.17g %.17g %.17g %.17g %d\n",
			t, r.Lower[k][i], r.Upper[k][i], r.Centre[k][i], r.Radius[k][i], r.Terms[k][i]); err != nil {
			return err
		}
	}
	return nil
}
