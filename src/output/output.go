// Package output renders the orchestrator's terminal output: framed
// sections per pipeline stage, status icons, and the run context block.
package output

import (
	"fmt"
	"io"
	"os"
)

// Statuses shown in summaries and rows.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StatusIcon returns a status icon, colored when enabled.
func StatusIcon(status string, color bool) string {
	if !color {
		switch status {
		case StatusSuccess:
			return "✓"
		case StatusFailed:
			return "✗"
		default:
			return "⊘"
		}
	}
	switch status {
	case StatusSuccess:
		return "\033[32m✓\033[0m"
	case StatusFailed:
		return "\033[31m✗\033[0m"
	default:
		return "\033[33m⊘\033[0m"
	}
}

// Dimmed returns dimmed text if color is enabled.
func Dimmed(text string, color bool) string {
	if !color {
		return text
	}
	return "\033[90m" + text + "\033[0m"
}

// Bold returns bold text if color is enabled.
func Bold(text string, color bool) string {
	if !color {
		return text
	}
	return "\033[1m" + text + "\033[0m"
}

// KV is a key-value pair for the context block.
type KV struct {
	Key   string
	Value string
}

// ContextBlock prints the run context header in two-column pairs.
func ContextBlock(w io.Writer, kv []KV) {
	if len(kv) == 0 {
		return
	}
	fmt.Fprintln(w)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(w, "    %-12s%-22s%-11s%s\n",
				kv[i].Key, kv[i].Value, kv[i+1].Key, kv[i+1].Value)
		} else {
			fmt.Fprintf(w, "    %-12s%s\n", kv[i].Key, kv[i].Value)
		}
	}
}

// Banner prints the single aggregate success/failure line that closes a run.
func Banner(w io.Writer, ok bool, color bool) {
	fmt.Fprintln(w)
	if ok {
		fmt.Fprintf(w, "%s Build process completed successfully\n", StatusIcon(StatusSuccess, color))
	} else {
		fmt.Fprintf(w, "%s Build process failed\n", StatusIcon(StatusFailed, color))
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal()
}
