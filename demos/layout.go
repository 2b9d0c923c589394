package demos

import (
	"unicode/utf8"

	"github.com/delaneyj/hookparty/hooks"
)

func textWidth(n *hooks.HostNode) int {
	if n == nil {
		return 0
	}
	if n.Tag == "" {
		return utf8.RuneCountInString(n.Text)
	}
	width := 0
	for _, child := range n.Children {
		width += textWidth(child)
	}
	return width
}

// UseLayoutEffectPanel measures its label after the commit and before the
// surface is presented, so no presented frame shows a stale width.
var UseLayoutEffectPanel = hooks.Define("UseLayoutEffect", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	text, setText := hooks.UseState(c, "measure me")
	width, setWidth := hooks.UseState(c, 0)
	label := hooks.UseRef[*hooks.HostNode](c, nil)

	hooks.UseLayoutEffect(c, func() hooks.Cleanup {
		setWidth.Set(textWidth(label.Current))
		return nil
	}, hooks.Deps{text})

	return hooks.Fragment(
		hooks.H("span", hooks.Attrs{"id": "label"}, hooks.Text(text)).WithRef(label),
		hooks.H("input", hooks.Attrs{
			"id":      "text",
			"value":   text,
			"onInput": func(v string) { setText.Set(v) },
		}),
		hooks.H("p", hooks.Attrs{"id": "width"}, hooks.Textf(width)),
	)
})
