package debug

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affine"
)

// sample 记录 x = e^{0.1k}·(1 ± 0.01)，y = 1 ± 0.5
func sample(t *testing.T) *Record {
	ctx := affine.NewContext()
	r := NewRecord("sample", "x", "y")
	x := ctx.NewFloat64Rad(1, 0.01)
	y := ctx.NewFloat64Rad(1, 0.5)
	g := ctx.NewFloat64(math.Exp(0.1))
	for k := 0; k < 20; k++ {
		require.NoError(t, r.Append(float64(k)*0.1, x, y))
		x = ctx.New().Mul(x, g)
	}
	return r
}

func TestRecord(t *testing.T) {
	r := sample(t)
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Len())
	assert.Equal(t, []float64{1, 1}, r.Centre[0])
	assert.InDelta(t, 0.99, r.Lower[0][0], 1e-12)
	assert.InDelta(t, 1.01, r.Upper[0][0], 1e-12)
	assert.Equal(t, 1, r.Terms[0][0])

	ctx := affine.NewContext()
	assert.ErrorIs(t, r.Append(0, ctx.New()), ErrDimension)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	var back Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r.Names, back.Names)
	assert.Equal(t, r.Terms, back.Terms)
}

func TestWriteDat(t *testing.T) {
	r := sample(t)
	dir := t.TempDir()
	paths, err := r.WriteDat(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, "# run "+r.ID, lines[0])
	assert.Len(t, strings.Fields(lines[1]), 6)
}

func TestSummarize(t *testing.T) {
	r := sample(t)
	ss := r.Summarize()
	require.Len(t, ss, 2)
	x, y := ss[0], ss[1]
	// x 的宽度按 e^{t} 增长，回归斜率约为 1
	assert.InDelta(t, 1.0, x.Growth, 1e-3)
	assert.Greater(t, x.MaxWidth, x.MeanWidth)
	assert.Equal(t, x.MaxWidth, x.FinalWidth)
	assert.Equal(t, 1.0, y.MeanWidth)
	assert.InDelta(t, 0, y.Growth, 1e-12)
	assert.Equal(t, 1, y.MaxTerms)
	assert.Contains(t, Report(ss), "x: width")
	assert.Nil(t, NewRecord("empty", "x").Summarize())
}

func TestCharts(t *testing.T) {
	c := &Charts{Record: sample(t)}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "噪声项")

	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "upper")
}

func TestSavePlot(t *testing.T) {
	r := sample(t)
	paths, err := r.SavePlot(t.TempDir())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
