package affine

import (
	"errors"
	"sync"
	"testing"
)

// TestSymbolsMonotonic 并发分配的符号唯一且递增
func TestSymbolsMonotonic(t *testing.T) {
	ctx := NewContext()
	const workers, each = 8, 1000
	var mu sync.Mutex
	seen := make(map[uint64]bool, workers*each)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint64(0)
			local := make([]uint64, 0, each)
			for i := 0; i < each; i++ {
				s := ctx.NextSymbol()
				if s <= last {
					t.Errorf("符号 %d 未大于 %d", s, last)
				}
				last = s
				local = append(local, s)
			}
			mu.Lock()
			for _, s := range local {
				seen[s] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != workers*each {
		t.Errorf("符号重复：唯一 %d 个，应为 %d", len(seen), workers*each)
	}
	if ctx.Symbols() != workers*each {
		t.Errorf("Symbols() = %d", ctx.Symbols())
	}
}

// TestContextPrecision 内部精度不低于工作精度
func TestContextPrecision(t *testing.T) {
	ctx := NewContext(WithPrecision(512), WithInternalPrecision(100))
	if ctx.Precision() != 512 || ctx.InternalPrecision() != 512 {
		t.Errorf("精度 = %d/%d", ctx.Precision(), ctx.InternalPrecision())
	}
	ctx.SetInternalPrecision(64)
	if ctx.InternalPrecision() != 512 {
		t.Errorf("内部精度不应低于工作精度，got %d", ctx.InternalPrecision())
	}
	ctx.SetPrecision(1)
	if ctx.Precision() < 2 {
		t.Errorf("工作精度应被限制在最小值，got %d", ctx.Precision())
	}
}

// TestDerive 派生上下文共享符号
func TestDerive(t *testing.T) {
	ctx := NewContext()
	d := ctx.Derive(WithMulMethod(Loose), WithRangeMethod(MixedIAAA))
	if d.MulMethod() != Loose || d.RangeMethod() != MixedIAAA {
		t.Errorf("派生选项未生效")
	}
	if ctx.MulMethod() != Tight || ctx.RangeMethod() != AffineOnly {
		t.Errorf("派生修改了原上下文")
	}
	a := ctx.NextSymbol()
	b := d.NextSymbol()
	if b != a+1 {
		t.Errorf("派生上下文应共享符号分配器：%d, %d", a, b)
	}
}

// TestParseMethods 方法名称解析
func TestParseMethods(t *testing.T) {
	for s, want := range map[string]RangeMethod{
		"affine": AffineOnly, "AA": AffineOnly, "": AffineOnly,
		"mixed": MixedIAAA, "iaaa": MixedIAAA,
		"mixed-trimmed": MixedTrimmedIAAA, "Trimmed": MixedTrimmedIAAA,
	} {
		got, err := ParseRangeMethod(s)
		if err != nil || got != want {
			t.Errorf("ParseRangeMethod(%q) = %v, %v", s, got, err)
		}
		if back, _ := ParseRangeMethod(got.String()); back != got {
			t.Errorf("%v 的名称不能还原", got)
		}
	}
	if _, err := ParseRangeMethod("interval"); !errors.Is(err, ErrSyntax) {
		t.Errorf("未知值域方法应返回 ErrSyntax")
	}
	for s, want := range map[string]MulMethod{"tight": Tight, "loose": Loose} {
		got, err := ParseMulMethod(s)
		if err != nil || got != want || got.String() != s {
			t.Errorf("ParseMulMethod(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseMulMethod("exact"); !errors.Is(err, ErrSyntax) {
		t.Errorf("未知乘法方法应返回 ErrSyntax")
	}
}
