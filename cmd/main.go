package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	steps      int
	step       float64
	method     string
	outDir     string
	writeHTML  bool
	writePNG   bool
	serveAddr  string

	rootCmd = &cobra.Command{
		Use:   "affine",
		Short: "用仿射算术求解动力系统并输出值域",
		Long: `affine 以任意精度仿射算术迭代映射或积分常微分方程，
记录每一步的值域、半径与噪声项个数，并输出数据文件、HTML 图表与 PNG 图。`,
		SilenceUsage: true,
	}

	henonCmd = &cobra.Command{
		Use:   "henon",
		Short: "迭代 Henon 映射",
		RunE:  runHenon,
	}

	morrisLecarCmd = &cobra.Command{
		Use:     "morris-lecar",
		Aliases: []string{"ml"},
		Short:   "积分 Morris–Lecar 神经元模型",
		RunE:    runMorrisLecar,
	}

	fitzHughNagumoCmd = &cobra.Command{
		Use:     "fitzhugh-nagumo",
		Aliases: []string{"fhn"},
		Short:   "积分 FitzHugh–Nagumo 模型",
		RunE:    runFitzHughNagumo,
	}

	decayCmd = &cobra.Command{
		Use:   "decay",
		Short: "积分线性衰减 x' = -k·x 并与精确解比较",
		RunE:  runDecay,
	}

	henonA, henonB string
	decayRate      float64
	fhnRadius      float64
	decayRadius    float64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML 配置文件")
	rootCmd.PersistentFlags().IntVarP(&steps, "steps", "n", 0, "迭代或积分步数，0 表示使用配置值")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "输出目录，空表示使用配置值")
	rootCmd.PersistentFlags().BoolVar(&writeHTML, "html", false, "输出 HTML 图表")
	rootCmd.PersistentFlags().BoolVar(&writePNG, "png", false, "输出 PNG 图")
	rootCmd.PersistentFlags().StringVar(&serveAddr, "serve", "", "运行结束后在该地址发布图表，例如 :8080")

	for _, c := range []*cobra.Command{morrisLecarCmd, fitzHughNagumoCmd, decayCmd} {
		c.Flags().Float64VarP(&step, "step", "s", 0, "积分步长，0 表示使用配置值")
		c.Flags().StringVarP(&method, "method", "m", "", "积分方法 euler|rk2|trapezoidal|bogacki-shampine")
	}
	henonCmd.Flags().StringVar(&henonA, "a", "1.057", "参数 a")
	henonCmd.Flags().StringVar(&henonB, "b", "0.3", "参数 b")
	fitzHughNagumoCmd.Flags().Float64Var(&fhnRadius, "radius", 1e-6, "初值半径")
	decayCmd.Flags().Float64VarP(&decayRate, "rate", "k", 1, "衰减率 k")
	decayCmd.Flags().Float64Var(&decayRadius, "radius", 0.01, "初值半径")

	rootCmd.AddCommand(henonCmd, morrisLecarCmd, fitzHughNagumoCmd, decayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
