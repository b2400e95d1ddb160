package debug

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary 单个变量的统计
type Summary struct {
	Name       string
	FinalWidth float64 // 最后一步的值域宽度
	MeanWidth  float64
	MaxWidth   float64
	MeanTerms  float64
	StdTerms   float64
	MaxTerms   int
	// Growth log(宽度) 对时间的回归斜率，宽度不为正时为 NaN
	Growth float64
}

// Summarize 统计每个变量的宽度与噪声项个数
func (r *Record) Summarize() []Summary {
	if r.Len() == 0 {
		return nil
	}
	out := make([]Summary, len(r.Names))
	for i, name := range r.Names {
		lo, hi := Column(r.Lower, i), Column(r.Upper, i)
		width := make([]float64, len(lo))
		floats.SubTo(width, hi, lo)
		terms := Column(r.Terms, i)
		tf := make([]float64, len(terms))
		maxTerms := 0
		for k, n := range terms {
			tf[k] = float64(n)
			maxTerms = max(maxTerms, n)
		}
		out[i] = Summary{
			Name:       name,
			FinalWidth: width[len(width)-1],
			MeanWidth:  stat.Mean(width, nil),
			MaxWidth:   floats.Max(width),
			MeanTerms:  stat.Mean(tf, nil),
			StdTerms:   stat.PopStdDev(tf, nil),
			MaxTerms:   maxTerms,
			Growth:     growth(r.Time, width),
		}
	}
	return out
}

func growth(t, width []float64) float64 {
	if len(width) < 2 {
		return math.NaN()
	}
	logw := make([]float64, len(width))
	for i, w := range width {
		if !(w > 0) || math.IsInf(w, 0) {
			return math.NaN()
		}
		logw[i] = math.Log(w)
	}
	_, beta := stat.LinearRegression(t, logw, nil, false)
	return beta
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: width final=%.3g mean=%.3g max=%.3g growth=%.3g terms mean=%.1f±%.1f max=%d",
		s.Name, s.FinalWidth, s.MeanWidth, s.MaxWidth, s.Growth, s.MeanTerms, s.StdTerms, s.MaxTerms)
}

// Report 多行文本报告
func Report(ss []Summary) string {
	var sb strings.Builder
	for _, s := range ss {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
