package debug

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// xys 把时间列与一列数据组成点集，跳过非有限值
func xys(t, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(t))
	for i := range t {
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: t[i], Y: y[i]})
	}
	return pts
}

// SavePlot 为每个变量保存一张值域 PNG：<dir>/<model>_<name>.png
func (r *Record) SavePlot(dir string) ([]string, error) {
	paths := make([]string, 0, len(r.Names))
	for i, name := range r.Names {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s %s", r.Model, name)
		p.X.Label.Text = "t"
		p.Y.Label.Text = name
		err := plotutil.AddLines(p,
			"lower", xys(r.Time, Column(r.Lower, i)),
			"centre", xys(r.Time, Column(r.Centre, i)),
			"upper", xys(r.Time, Column(r.Upper, i)),
		)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", r.Model, name))
		if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
