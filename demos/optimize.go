package demos

import "github.com/delaneyj/hookparty/hooks"

type subData struct {
	Num int
}

type subCounterProps struct {
	Data    *subData
	OnClick func()
}

var subCounter = hooks.Define("SubCounter", func(c *hooks.Ctx, props subCounterProps) hooks.Node {
	useConsole(c).Printf("SubCounter render")
	return hooks.H("button", hooks.Attrs{"id": "sub", "onClick": props.OnClick}, hooks.Textf(props.Data.Num))
})

// frozenSubCounter never re-renders for its parent: its comparator always
// says the props are equal. It keeps the first data and the first click
// handler, which closes over the first count.
var frozenSubCounter = hooks.Memo(subCounter, func(prev, next subCounterProps) bool {
	return true
})

// memoSubCounter skips whenever data and handler are the same values.
var memoSubCounter = hooks.Memo(subCounter, nil)

func nameInput(name string, setName *hooks.Setter[string]) hooks.Node {
	return hooks.H("input", hooks.Attrs{
		"id":      "name",
		"value":   name,
		"onInput": func(v string) { setName.Set(v) },
	})
}

// Optimize1Panel passes fresh data and a fresh handler on every render to a
// child frozen by its comparator.
var Optimize1Panel = hooks.Define("Optimize_1", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	useConsole(c).Printf("Counter render")
	name, setName := hooks.UseState(c, "counter")
	num, setNum := hooks.UseState(c, 0)
	data := &subData{Num: num}
	addClick := func() { setNum.Set(num + 1) }
	return hooks.Fragment(
		nameInput(name, setName),
		frozenSubCounter.El(subCounterProps{Data: data, OnClick: addClick}),
	)
})

// Optimize2Panel memoizes data and handler so a Memo child only renders
// when the count changes.
var Optimize2Panel = hooks.Define("Optimize_2", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	console := useConsole(c)
	console.Printf("Counter render")
	name, setName := hooks.UseState(c, "counter")
	num, setNum := hooks.UseState(c, 0)

	data := hooks.UseMemo(c, func() *subData { return &subData{Num: num} }, hooks.Deps{num})
	oldData := hooks.UseRef[*subData](c, nil)
	console.Printf("data === oldData ? %t", data == oldData.Current)
	oldData.Current = data

	addClick := hooks.UseCallback(c, func() { setNum.Set(num + 1) }, hooks.Deps{num})
	oldAddClick := hooks.UseRef[func()](c, nil)
	console.Printf("addClick === oldAddClick ? %t", hooks.Same(addClick, oldAddClick.Current))
	oldAddClick.Current = addClick

	return hooks.Fragment(
		nameInput(name, setName),
		memoSubCounter.El(subCounterProps{Data: data, OnClick: addClick}),
	)
})
