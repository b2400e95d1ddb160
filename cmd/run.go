package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"affine"
	"affine/config"
	"affine/debug"
	"affine/logging"
	"affine/models"
	"affine/ode"
)

// session 一次运行的公共状态
type session struct {
	cfg *config.Config
	log *logging.Logger
	ctx *affine.Context
	rec *debug.Record
}

// newSession 读取配置并用命令行参数覆盖
func newSession(model string, names ...string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if steps > 0 {
		cfg.Run.Steps = steps
	}
	if step > 0 {
		cfg.Run.Step = step
	}
	if method != "" {
		cfg.Run.Method = method
	}
	if outDir != "" {
		cfg.Run.Out = outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	rec := debug.NewRecord(model, names...)
	log := base.Run(rec.ID, model)
	opts := append(cfg.Options(), affine.WithLogger(log.Logger))
	log.Info("start",
		zap.Uint("precision", cfg.Arith.Precision),
		zap.Uint("internal_precision", cfg.Arith.InternalPrecision),
		zap.String("range_method", cfg.Arith.RangeMethod),
		zap.String("mul_method", cfg.Arith.MulMethod),
		zap.Int("steps", cfg.Run.Steps))
	return &session{cfg: cfg, log: log, ctx: affine.NewContext(opts...), rec: rec}, nil
}

// stepper 按配置创建积分器
func (s *session) stepper(sys ode.System, x0 []*affine.Form) (*ode.Stepper, error) {
	m, err := ode.ByName(s.cfg.Run.Method)
	if err != nil {
		return nil, err
	}
	st, err := ode.NewStepper(sys, m, s.ctx.New(), x0)
	if err != nil {
		return nil, err
	}
	st.ReduceEvery = s.cfg.Reduce.Every
	st.ReduceFraction = s.cfg.Reduce.Fraction
	return st, nil
}

// integrate 积分并记录每一步
func (s *session) integrate(st *ode.Stepper) error {
	if err := s.rec.Append(0, st.X()...); err != nil {
		return err
	}
	h := s.ctx.NewFloat64(s.cfg.Run.Step)
	var err error
	st.Run(h, s.cfg.Run.Steps, func(i int, t *affine.Form, x []*affine.Form) {
		if err == nil {
			err = s.rec.Append(t.Float64(), x...)
		}
		s.progress(i, x...)
	})
	return err
}

func (s *session) progress(i int, xs ...*affine.Form) {
	if i%100 != 0 {
		return
	}
	terms := 0
	for _, x := range xs {
		terms += x.NumTerms()
	}
	s.log.Info("step", zap.Int("i", i), zap.Int("terms", terms), zap.Stringer("x0", xs[0]))
}

// finish 输出数据文件与图表
func (s *session) finish() error {
	defer s.log.Sync()
	dir := filepath.Join(s.cfg.Run.Out, s.rec.Model+"-"+s.rec.ID)
	paths, err := s.rec.WriteDat(dir)
	if err != nil {
		return err
	}
	charts := &debug.Charts{Record: s.rec, Log: s.log.Logger}
	if writeHTML {
		path := filepath.Join(dir, s.rec.Model+".html")
		if err := writeFile(path, charts); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	if writePNG {
		pngs, err := s.rec.SavePlot(dir)
		if err != nil {
			return err
		}
		paths = append(paths, pngs...)
	}
	summary := s.rec.Summarize()
	for _, sm := range summary {
		s.log.Info("summary", zap.Stringer("var", sm))
	}
	fmt.Print(debug.Report(summary))
	s.log.Info("done", zap.Strings("files", paths))
	if serveAddr != "" {
		s.log.Info("serve", zap.String("addr", serveAddr))
		return http.ListenAndServe(serveAddr, http.HandlerFunc(charts.Handler))
	}
	return nil
}

func writeFile(path string, c *debug.Charts) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return c.Render(f)
}

// ------------------------------
// 子命令
// ------------------------------

func runHenon(_ *cobra.Command, _ []string) error {
	s, err := newSession("henon", "x", "y")
	if err != nil {
		return err
	}
	h, err := models.NewHenon(s.ctx, henonA, henonB)
	if err != nil {
		return err
	}
	x, y := h.Initial(s.ctx)
	if err := s.rec.Append(0, x, y); err != nil {
		return err
	}
	h.Run(x, y, s.cfg.Run.Steps, s.cfg.Reduce.Every, s.cfg.Reduce.Fraction, func(i int, x, y *affine.Form) {
		if err == nil {
			err = s.rec.Append(float64(i+1), x, y)
		}
		s.progress(i, x, y)
	})
	if err != nil {
		return err
	}
	return s.finish()
}

func runMorrisLecar(_ *cobra.Command, _ []string) error {
	s, err := newSession("morris-lecar", "V", "N")
	if err != nil {
		return err
	}
	m := models.NewMorrisLecar(s.ctx)
	st, err := s.stepper(m, m.Initial(s.ctx))
	if err != nil {
		return err
	}
	if err := s.integrate(st); err != nil {
		return err
	}
	return s.finish()
}

func runFitzHughNagumo(_ *cobra.Command, _ []string) error {
	s, err := newSession("fitzhugh-nagumo", "v", "w")
	if err != nil {
		return err
	}
	f := models.NewFitzHughNagumo(s.ctx)
	st, err := s.stepper(f, f.Initial(s.ctx, fhnRadius))
	if err != nil {
		return err
	}
	if err := s.integrate(st); err != nil {
		return err
	}
	return s.finish()
}

func runDecay(_ *cobra.Command, _ []string) error {
	s, err := newSession("decay", "x")
	if err != nil {
		return err
	}
	sys, err := ode.NewLinear(mat.NewDense(1, 1, []float64{-decayRate}))
	if err != nil {
		return err
	}
	st, err := s.stepper(sys, []*affine.Form{s.ctx.NewFloat64Rad(1, decayRadius)})
	if err != nil {
		return err
	}
	if err := s.integrate(st); err != nil {
		return err
	}
	tEnd := float64(s.cfg.Run.Steps) * s.cfg.Run.Step
	exact := sys.Solution(tEnd, []float64{1})[0]
	x := st.X()[0]
	s.log.Info("exact",
		zap.Float64("t", tEnd),
		zap.Float64("exact", exact),
		zap.Float64("centre", x.Float64()),
		zap.Float64("error", math.Abs(x.Float64()-exact)))
	return s.finish()
}
