package diag

import (
	"fmt"
	"strings"

	"verity-hq/verity/pkg/contract/ast"
)

// ExtractContext renders the lines of source surrounding the given location
// for display alongside a diagnostic. The source is the file's retained
// content; nothing is re-read from disk. Returns "" when the location does
// not point into the content.
func ExtractContext(content string, location ast.Location, contextLines int) string {
	if !location.IsValid() || content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")

	errorLine := location.Line - 1 // 0-based index
	if errorLine < 0 || errorLine >= len(lines) {
		return ""
	}

	startLine := errorLine - contextLines
	endLine := errorLine + contextLines
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		// Column indicator under the offending line
		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}
