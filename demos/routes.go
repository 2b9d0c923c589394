package demos

import (
	"strings"

	"github.com/delaneyj/hookparty/hooks"
)

// Route maps a path to a panel. Child routes render inside their parent's
// Outlet.
type Route struct {
	Path   string
	Title  string
	Panel  *hooks.Component[PanelProps]
	Script []Step
	Routes []*Route
}

type link struct {
	Path  string
	Title string
}

func navLinks(links ...link) hooks.Node {
	items := make([]hooks.Node, 0, len(links))
	for _, l := range links {
		items = append(items, hooks.H("li", nil,
			hooks.H("a", hooks.Attrs{"href": l.Path}, hooks.Text(l.Title)),
		).WithKey(l.Path))
	}
	return hooks.Fragment(items...)
}

// Routes is the route table of the demo app.
var Routes = []*Route{
	{
		Path:   "/useState",
		Title:  "useState",
		Panel:  UseStatePanel,
		Script: useStateScript,
		Routes: []*Route{
			{Path: "/useState/optimize_1", Title: "optimize_1", Panel: Optimize1Panel, Script: optimize1Script},
			{Path: "/useState/optimize_2", Title: "optimize_2", Panel: Optimize2Panel, Script: optimize2Script},
		},
	},
	{Path: "/useReducer", Title: "useReducer", Panel: UseReducerPanel, Script: useReducerScript},
	{Path: "/useContext", Title: "useContext", Panel: UseContextPanel, Script: useContextScript},
	{Path: "/useEffect", Title: "useEffect", Panel: UseEffectPanel, Script: useEffectScript},
	{Path: "/useLayoutEffect", Title: "useLayoutEffect", Panel: UseLayoutEffectPanel, Script: useLayoutEffectScript},
	{
		Path:   "/useRef",
		Title:  "useRef",
		Panel:  UseRefPanel,
		Script: useRefScript,
		Routes: []*Route{
			{Path: "/useRef/forwardRef", Title: "ForwardRef", Panel: ForwardRefPanel, Script: forwardRefScript},
			{Path: "/useRef/useImperativeHandle", Title: "useImperativeHandle", Panel: ImperativeHandlePanel, Script: imperativeHandleScript},
		},
	},
	{Path: "/customHook", Title: "customHook", Panel: CustomHookPanel, Script: customHookScript},
}

// Match returns the branch of routes leading to path, outermost first, or
// nil. Paths match case-insensitively.
func Match(path string) []*Route {
	return match(Routes, path)
}

func match(routes []*Route, path string) []*Route {
	for _, r := range routes {
		if strings.EqualFold(r.Path, path) {
			return []*Route{r}
		}
		if strings.HasPrefix(strings.ToLower(path), strings.ToLower(r.Path)+"/") {
			if rest := match(r.Routes, path); rest != nil {
				return append([]*Route{r}, rest...)
			}
		}
	}
	return nil
}

// Walk calls fn for every route, parents before children.
func Walk(fn func(r *Route, depth int)) {
	walk(Routes, 0, fn)
}

func walk(routes []*Route, depth int, fn func(r *Route, depth int)) {
	for _, r := range routes {
		fn(r, depth)
		walk(r.Routes, depth+1, fn)
	}
}

// Element renders a matched branch, each panel wrapping the next.
func Element(branch []*Route) hooks.Node {
	var outlet hooks.Node
	for i := len(branch) - 1; i >= 0; i-- {
		outlet = branch[i].Panel.El(PanelProps{Outlet: outlet}, hooks.WithKey(branch[i].Path))
	}
	return outlet
}
