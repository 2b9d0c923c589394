package demos

import (
	"fmt"
	"sync"

	"github.com/delaneyj/hookparty/hooks"
)

// Console collects the lines panels print, the way the browser console
// shows render logs.
type Console struct {
	mu    sync.Mutex
	lines []string
}

func (c *Console) Printf(format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

// Take returns the lines printed since the last Take.
func (c *Console) Take() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.lines
	c.lines = nil
	return lines
}

// ConsoleContext carries the console. Without a provider printing is a
// no-op.
var ConsoleContext = hooks.CreateContext[*Console]("console", nil)

func useConsole(c *hooks.Ctx) *Console {
	return hooks.UseContext(c, ConsoleContext)
}
