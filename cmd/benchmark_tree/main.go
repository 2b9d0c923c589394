package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/texthost"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting hook tree benchmark, please wait...")
	defer log.Print("Finished hook tree benchmark")

	perfTestCfgs := []benchmarkTestConfig{
		{
			name:            "simple component",
			width:           10,
			totalLayers:     5,
			memoFraction:    0,
			readFraction:    0.2,
			updatesPerBatch: 1,
			tickEvery:       10,
			iterations:      20000,
		},
		{
			name:            "memo component",
			width:           10,
			totalLayers:     10,
			memoFraction:    0.75,
			readFraction:    0.2,
			updatesPerBatch: 2,
			tickEvery:       10,
			iterations:      10000,
		},
		{
			name:            "large web app",
			width:           1000,
			totalLayers:     12,
			memoFraction:    0.95,
			readFraction:    0.05,
			updatesPerBatch: 4,
			tickEvery:       100,
			iterations:      2000,
		},
		{
			name:            "wide dense",
			width:           1000,
			totalLayers:     5,
			memoFraction:    0,
			readFraction:    1,
			updatesPerBatch: 25,
			tickEvery:       0,
			iterations:      500,
		},
		{
			name:            "deep",
			width:           5,
			totalLayers:     500,
			memoFraction:    0,
			readFraction:    0,
			updatesPerBatch: 3,
			tickEvery:       0,
			iterations:      500,
		},
		{
			name:            "context heavy",
			width:           100,
			totalLayers:     15,
			memoFraction:    1,
			readFraction:    0.5,
			updatesPerBatch: 1,
			tickEvery:       1,
			iterations:      1000,
		},
	}

	type results struct {
		renders  int64
		commits  int
		duration time.Duration
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"framework", "size", "batch", "read%", "memo%",
		"nTimes", "test", "time", "commits",
		"renderRate", "title",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)

		runOnce := func() (renders int64, commits int) {
			tree := benchmarkMakeTree(&cfg)
			defer func() {
				_ = tree.root.Unmount()
			}()
			tree.renders.Store(0)
			start := tree.host.CommitCount()
			benchmarkRunTree(&cfg, tree)
			return tree.renders.Load(), tree.host.CommitCount() - start
		}
		// run once to warm up
		runOnce()

		bestResult := &results{
			duration: time.Hour,
		}

		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			start := time.Now()
			renders, commits := runOnce()
			duration := time.Since(start)

			if duration < bestResult.duration {
				bestResult.duration = duration
				bestResult.renders = renders
				bestResult.commits = commits
			}
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d %d per batch", cfg.width, cfg.totalLayers, cfg.updatesPerBatch))
			if cfg.memoFraction > 0 {
				sb.WriteString(" memo")
			}
			if cfg.tickEvery > 0 {
				sb.WriteString(fmt.Sprintf(" tick/%d", cfg.tickEvery))
			}
			return sb.String()
		}

		renderRate := float64(bestResult.renders) / (float64(bestResult.duration) / float64(time.Millisecond))

		table.Append([]string{
			"hooks", // framework
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers), // size
			fmt.Sprint(cfg.updatesPerBatch),                  // batch
			fmt.Sprint(cfg.readFraction),                     // read%
			fmt.Sprint(cfg.memoFraction),                     // memo%
			humanize.Comma(cfg.iterations),                   // nTimes
			cfg.name,                                         // test
			fmt.Sprint(bestResult.duration),                  // time
			humanize.Comma(int64(bestResult.commits)),        // commits
			humanize.Comma(int64(renderRate)),                // renderRate
			makeTitle(),                                      // title
		})
	}
	table.Render() // Send output
}

type benchmarkTestConfig struct {
	name            string  // friendly name for the test, should be unique
	width           int     // number of component columns under the root
	totalLayers     int     // depth of each column
	memoFraction    float64 // fraction of cells wrapped in Memo
	readFraction    float64 // fraction of cells consuming the tick context
	updatesPerBatch int     // cell states set inside one batch
	tickEvery       int     // bump the tick context every n iterations, 0 for never
	iterations      int64   // number of test iterations
}

var tickContext = hooks.CreateContext("tick", 0)

type cellProps struct {
	Col, Layer int
	Tree       *benchmarkTree
}

type benchmarkTree struct {
	root    *hooks.Root
	host    *texthost.Host
	layers  int
	memo    [][]bool
	reads   [][]bool
	setters [][]*hooks.Setter[int]
	tick    *hooks.Setter[int]
	renders atomic.Int64
}

var (
	cell     *hooks.Component[cellProps]
	memoCell *hooks.Component[cellProps]
)

func init() {
	cell = hooks.Define("Cell", renderCell)
	memoCell = hooks.Memo(hooks.Define("MemoCell", renderCell), nil)
}

func (tree *benchmarkTree) child(col, layer int) hooks.Node {
	props := cellProps{Col: col, Layer: layer, Tree: tree}
	if tree.memo[col][layer] {
		return memoCell.El(props)
	}
	return cell.El(props)
}

func renderCell(c *hooks.Ctx, p cellProps) hooks.Node {
	tree := p.Tree
	tree.renders.Add(1)
	v, set := hooks.UseState(c, p.Col)
	tree.setters[p.Col][p.Layer] = set
	if tree.reads[p.Col][p.Layer] {
		v += hooks.UseContext(c, tickContext)
	}
	if p.Layer == tree.layers-1 {
		return hooks.H("span", nil, hooks.Textf(v))
	}
	return hooks.H("span", nil, hooks.Textf(v), tree.child(p.Col, p.Layer+1))
}

func benchmarkMakeTree(cfg *benchmarkTestConfig) *benchmarkTree {
	random := rand.New(rand.NewSource(0))
	tree := &benchmarkTree{
		host:    texthost.New(texthost.WithHistory(1)),
		layers:  cfg.totalLayers,
		memo:    make([][]bool, cfg.width),
		reads:   make([][]bool, cfg.width),
		setters: make([][]*hooks.Setter[int], cfg.width),
	}
	for col := 0; col < cfg.width; col++ {
		tree.memo[col] = make([]bool, cfg.totalLayers)
		tree.reads[col] = make([]bool, cfg.totalLayers)
		tree.setters[col] = make([]*hooks.Setter[int], cfg.totalLayers)
		for layer := 0; layer < cfg.totalLayers; layer++ {
			tree.memo[col][layer] = random.Float64() < cfg.memoFraction
			tree.reads[col][layer] = random.Float64() < cfg.readFraction
		}
	}

	app := hooks.Define("App", func(c *hooks.Ctx, _ struct{}) hooks.Node {
		tick, set := hooks.UseState(c, 0)
		tree.tick = set
		columns := make([]hooks.Node, cfg.width)
		for col := range columns {
			columns[col] = tree.child(col, 0)
		}
		return tickContext.Provider(tick, hooks.H("main", nil, columns...))
	})

	tree.root = hooks.NewRoot(tree.host, hooks.WithErrorHandler(func(f *hooks.Fault) {
		log.Panic(f)
	}))
	if err := tree.root.Render(app.El(struct{}{})); err != nil {
		log.Panic(err)
	}
	return tree
}

// Update a few random cells per batch, and the tick context every
// tickEvery iterations.
func benchmarkRunTree(cfg *benchmarkTestConfig, tree *benchmarkTree) {
	random := rand.New(rand.NewSource(0))
	for i := int64(0); i < cfg.iterations; i++ {
		err := tree.root.Batch(func() {
			for u := 0; u < cfg.updatesPerBatch; u++ {
				col := random.Intn(cfg.width)
				layer := random.Intn(cfg.totalLayers)
				tree.setters[col][layer].Update(func(v int) int { return v + 1 })
			}
			if cfg.tickEvery > 0 && i%int64(cfg.tickEvery) == 0 {
				tree.tick.Update(func(v int) int { return v + 1 })
			}
		})
		if err != nil {
			log.Panic(err)
		}
	}
}
