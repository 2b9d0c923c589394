package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/texthost"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var cpuProfile = flag.String("cpuprofile", "", "write a CPU profile to this file")

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)

	benchmarkPropagate(true)
	benchmarkMemoSkip(true)
	benchmarkEffects(true)
}

var (
	ww    = []int{1, 10, 100}
	hh    = []int{1, 10, 100}
	iters = 100
)

type chainProps struct {
	Depth int
	Value int
}

var (
	chain       *hooks.Component[chainProps]
	memoChain   *hooks.Component[chainProps]
	effectChain *hooks.Component[chainProps]
)

func init() {
	chain = hooks.Define("Chain", func(c *hooks.Ctx, p chainProps) hooks.Node {
		if p.Depth == 0 {
			return hooks.Textf(p.Value)
		}
		return chain.El(chainProps{Depth: p.Depth - 1, Value: p.Value + 1})
	})
	memoChain = hooks.Memo(hooks.Define("MemoChain", func(c *hooks.Ctx, p chainProps) hooks.Node {
		if p.Depth == 0 {
			return hooks.Textf(p.Value)
		}
		return memoChain.El(chainProps{Depth: p.Depth - 1, Value: p.Value})
	}), nil)
	effectChain = hooks.Define("EffectChain", func(c *hooks.Ctx, p chainProps) hooks.Node {
		hooks.UseEffect(c, func() hooks.Cleanup {
			return func() {}
		}, hooks.Deps{p.Value})
		if p.Depth == 0 {
			return hooks.Textf(p.Value)
		}
		return effectChain.El(chainProps{Depth: p.Depth - 1, Value: p.Value + 1})
	})
}

// mount renders w chains of depth h below a component holding the source
// value, and returns its setter.
func mount(comp *hooks.Component[chainProps], w, h int, sourceProps func(v int) chainProps) (*hooks.Root, *hooks.Setter[int]) {
	var set *hooks.Setter[int]
	app := hooks.Define("App", func(c *hooks.Ctx, _ struct{}) hooks.Node {
		v, s := hooks.UseState(c, 1)
		set = s
		children := make([]hooks.Node, w)
		for i := range children {
			children[i] = comp.El(sourceProps(v))
		}
		return hooks.H("div", nil, children...)
	})
	root := hooks.NewRoot(texthost.New(texthost.WithHistory(1)), hooks.WithErrorHandler(func(f *hooks.Fault) {
		log.Panic(f)
	}))
	if err := root.Render(app.El(struct{}{})); err != nil {
		log.Panic(err)
	}
	if err := root.Flush(); err != nil {
		log.Panic(err)
	}
	return root, set
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func benchmarkPropagate(shouldRender bool) {
	tbl := newTable("Render pass: every chain renders")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			root, set := mount(chain, w, h, func(v int) chainProps {
				return chainProps{Depth: h, Value: v}
			})
			for i := 0; i < iters; i++ {
				start := time.Now()
				set.Update(func(v int) int { return v + 1 })
				tach.AddTime(time.Since(start))
			}
			_ = root.Unmount()
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}
	if shouldRender {
		tbl.Render()
	}
}

func benchmarkMemoSkip(shouldRender bool) {
	tbl := newTable("Render pass: memo chains skip")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			root, set := mount(memoChain, w, h, func(int) chainProps {
				return chainProps{Depth: h}
			})
			for i := 0; i < iters; i++ {
				start := time.Now()
				set.Update(func(v int) int { return v + 1 })
				tach.AddTime(time.Since(start))
			}
			_ = root.Unmount()
			appendCalc(tbl, fmt.Sprintf("skip: %d * %d", w, h), tach)
		}
	}
	if shouldRender {
		tbl.Render()
	}
}

func benchmarkEffects(shouldRender bool) {
	tbl := newTable("Render pass + passive flush")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			root, set := mount(effectChain, w, h, func(v int) chainProps {
				return chainProps{Depth: h, Value: v}
			})
			for i := 0; i < iters; i++ {
				start := time.Now()
				set.Update(func(v int) int { return v + 1 })
				if err := root.Flush(); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}
			_ = root.Unmount()
			appendCalc(tbl, fmt.Sprintf("effects: %d * %d", w, h), tach)
		}
	}
	if shouldRender {
		tbl.Render()
	}
}
