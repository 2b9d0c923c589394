package demos

import "time"

var (
	useStateScript = []Step{
		Click("inc"),
		Click("alert"),
		Click("inc"),
		Advance(3 * time.Second),
		Click("initial-inc"),
		Click("initial-same"),
	}
	optimize1Script = []Step{
		Input("name", "hooks"),
		Click("sub"),
		Click("sub"),
	}
	optimize2Script = []Step{
		Input("name", "hooks"),
		Click("sub"),
		Click("sub"),
	}
	useReducerScript = []Step{
		Click("inc"),
		Click("inc"),
		Click("dec"),
		Click("reset"),
	}
	useContextScript = []Step{
		Click("add"),
		Click("add"),
	}
	useEffectScript = []Step{
		Advance(time.Second),
		Input("text", "a"),
		Input("text", "ab"),
		Advance(time.Second),
		Click("inc"),
	}
	useLayoutEffectScript = []Step{
		Input("text", "hello"),
		Input("text", "hooks runtime"),
	}
	useRefScript = []Step{
		Click("child-focus"),
		Click("inc"),
	}
	forwardRefScript = []Step{
		Click("fwd-focus"),
		Click("fwd-inc"),
	}
	imperativeHandleScript = []Step{
		Click("get-focus"),
	}
	customHookScript = []Step{
		Advance(time.Second),
		Click("counter1"),
		Advance(2 * time.Second),
	}
)
