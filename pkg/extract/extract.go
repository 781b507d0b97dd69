// Package extract recovers HTML documents embedded in model output text.
package extract

import (
	"fmt"
	"regexp"
)

// Model replies wrap the document in prose or markdown fences, and
// sometimes emit only a fragment. The patterns are minimal-but-greedy
// across newlines so surrounding chatter is never captured.
var (
	doctypePattern = regexp.MustCompile(`(?i)<!DOCTYPE html>[\s\S]*?</html>`)
	htmlPattern    = regexp.MustCompile(`(?i)<html[\s\S]*?</html>`)
	bodyPattern    = regexp.MustCompile(`(?i)<body[\s\S]*?</body>`)
)

// bodyShell wraps a bare <body> fragment into a minimal document.
const bodyShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>群聊日报</title>
</head>
%s
</html>`

// Extract locates an HTML document in responseText and returns it
// normalized to a complete document. The heuristics run in strict
// priority order, preferring the most complete match:
//
//  1. A full document from its doctype declaration through </html>,
//     returned verbatim.
//  2. An <html>...</html> fragment, returned with a doctype prepended.
//  3. A <body>...</body> fragment, wrapped in a minimal shell with a
//     UTF-8 charset declaration.
//
// The second return value is false when no HTML was found. A miss is a
// normal outcome of a probabilistic generator, not an error.
func Extract(responseText string) (string, bool) {
	if match := doctypePattern.FindString(responseText); match != "" {
		return match, true
	}

	if match := htmlPattern.FindString(responseText); match != "" {
		return "<!DOCTYPE html>\n" + match, true
	}

	if match := bodyPattern.FindString(responseText); match != "" {
		return fmt.Sprintf(bodyShell, match), true
	}

	return "", false
}
