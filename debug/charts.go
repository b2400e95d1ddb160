package debug

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"go.uber.org/zap"
)

// Charts 曲线绘制
type Charts struct {
	*Record
	Log *zap.Logger
}

// newLine 统一的折线图样式
func newLine(title, subtitle string, x []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	line.SetXAxis(x)
	return line
}

func lineData[T int | float64](ys []T) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i].Value = y
	}
	return items
}

// Render 每个变量一张值域图，另加半径与噪声项个数图
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s %s", c.Model, c.ID)
	for i, name := range c.Names {
		line := newLine(name, "值域与中心随时间变化曲线", c.Time)
		line.AddSeries("lower", lineData(Column(c.Lower, i))).
			AddSeries("centre", lineData(Column(c.Centre, i))).
			AddSeries("upper", lineData(Column(c.Upper, i)))
		page.AddCharts(line)
	}
	radius := newLine("半径", "各变量半径随时间变化曲线", c.Time)
	terms := newLine("噪声项", "各变量噪声项个数随时间变化曲线", c.Time)
	for i, name := range c.Names {
		radius.AddSeries(name, lineData(Column(c.Radius, i)))
		terms.AddSeries(name, lineData(Column(c.Terms, i)))
	}
	page.AddCharts(radius, terms)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) {
	if c.Log != nil {
		c.Log.Error("render charts", zap.String("run", c.ID), zap.Error(err))
	}
}
