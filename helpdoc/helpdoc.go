// Package helpdoc renders a CommandSet's long-form help body, authored as
// Markdown, into width-wrapped ANSI terminal output. The core Help Router
// (embedcli.RouteHelp) still decides when to show long help; helpdoc only
// decides how the body is laid out, and is optional — a CommandSet may
// return plain text instead and never touch this package.
package helpdoc

import (
	"strconv"
	"sync"

	markdown "github.com/vlanse/go-term-markdown"
)

const defaultPadding = 2

var cache = struct {
	sync.Mutex
	m map[string]string
}{m: make(map[string]string)}

// Render word-wraps and ANSI-styles body (Markdown source) to width
// columns. Identical (body, width) pairs are cached, mirroring the
// teacher's render cache for the same underlying library call.
func Render(body string, width int) string {
	if width <= 0 {
		width = 80
	}
	key := cacheKey(body, width)

	cache.Lock()
	if hit, ok := cache.m[key]; ok {
		cache.Unlock()
		return hit
	}
	cache.Unlock()

	out := string(markdown.Render(body, width, defaultPadding))

	cache.Lock()
	cache.m[key] = out
	cache.Unlock()
	return out
}

func cacheKey(body string, width int) string {
	return body + "\x00" + strconv.Itoa(width)
}
