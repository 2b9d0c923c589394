package demos

import "github.com/delaneyj/hookparty/hooks"

func focus(console *Console, n *hooks.HostNode) {
	if n == nil {
		console.Printf("focus: not mounted")
		return
	}
	id, _ := n.Attrs["id"].(string)
	console.Printf("focus #%s", id)
}

var refChild = hooks.Define("Child", func(c *hooks.Ctx, _ struct{}) hooks.Node {
	console := useConsole(c)
	inputRef := hooks.UseRef[*hooks.HostNode](c, nil)
	last := hooks.UseRef[*hooks.Ref[*hooks.HostNode]](c, nil)
	console.Printf("input === inputRef ? %t", last.Current == inputRef)
	last.Current = inputRef

	return hooks.Fragment(
		hooks.H("input", hooks.Attrs{"id": "child-input"}).WithRef(inputRef),
		hooks.H("button", hooks.Attrs{
			"id":      "child-focus",
			"onClick": func() { focus(console, inputRef.Current) },
		}, hooks.Text("focus")),
	)
})

// UseRefPanel re-renders a child that keeps the same ref box across its
// renders.
var UseRefPanel = hooks.Define("UseRef", func(c *hooks.Ctx, props PanelProps) hooks.Node {
	num, setNum := hooks.UseState(c, 0)
	return hooks.Fragment(
		navLinks(
			link{Path: "/useRef/forwardRef", Title: "ForwardRef"},
			link{Path: "/useRef/useImperativeHandle", Title: "useImperativeHandle"},
		),
		refChild.El(struct{}{}),
		hooks.H("p", hooks.Attrs{"id": "num"}, hooks.Textf(num)),
		hooks.H("button", hooks.Attrs{
			"id":      "inc",
			"onClick": func() { setNum.Set(num + 1) },
		}, hooks.Text("+")),
		props.Outlet,
	)
})

var forwardChild = hooks.ForwardRef("ForwardChild", func(c *hooks.Ctx, _ struct{}, ref *hooks.Ref[*hooks.HostNode]) hooks.Node {
	return hooks.H("input", hooks.Attrs{"id": "fwd-input"}).WithRef(ref)
})

// ForwardRefPanel hands its ref to a child's host input.
var ForwardRefPanel = hooks.Define("ForwardRef", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	num, setNum := hooks.UseState(c, 0)
	inputRef := hooks.UseRef[*hooks.HostNode](c, nil)
	console := useConsole(c)
	return hooks.Fragment(
		forwardChild.El(struct{}{}, hooks.WithRef(inputRef)),
		hooks.Textf(num),
		hooks.H("button", hooks.Attrs{
			"id":      "fwd-inc",
			"onClick": func() { setNum.Set(num + 1) },
		}, hooks.Text("+")),
		hooks.H("button", hooks.Attrs{
			"id":      "fwd-focus",
			"onClick": func() { focus(console, inputRef.Current) },
		}, hooks.Text("focus")),
	)
})

// InputHandle is what the imperative handle child exposes instead of its
// host nodes.
type InputHandle struct {
	Name       string
	Focus      func()
	ChangeText func(text string)
}

var handleChild = hooks.ForwardRef("HandleChild", func(c *hooks.Ctx, _ struct{}, parentRef *hooks.Ref[InputHandle]) hooks.Node {
	console := useConsole(c)
	focusRef := hooks.UseRef[*hooks.HostNode](c, nil)
	text, setText := hooks.UseState(c, "")

	hooks.UseImperativeHandle(c, parentRef, func() InputHandle {
		return InputHandle{
			Name:       "counter",
			Focus:      func() { focus(console, focusRef.Current) },
			ChangeText: func(t string) { setText.Set(t) },
		}
	}, nil)

	return hooks.Fragment(
		hooks.H("input", hooks.Attrs{"id": "focus-input"}).WithRef(focusRef),
		hooks.H("input", hooks.Attrs{"id": "text-input", "value": text}),
	)
})

// ImperativeHandlePanel drives its child only through the published handle.
var ImperativeHandlePanel = hooks.Define("UseImperativeHandle", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	parentRef := hooks.UseRef(c, InputHandle{})
	console := useConsole(c)
	getFocus := func() {
		h := parentRef.Current
		if h.Focus == nil {
			console.Printf("handle not attached")
			return
		}
		h.Focus()
		h.ChangeText("<script>alert(1)</script>")
		console.Printf("%s", h.Name)
	}
	return hooks.Fragment(
		hooks.H("hr", nil),
		handleChild.El(struct{}{}, hooks.WithRef(parentRef)),
		hooks.H("button", hooks.Attrs{"id": "get-focus", "onClick": getFocus}, hooks.Text("focus")),
	)
})
