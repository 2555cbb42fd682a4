package merge

import "strings"

// Warning is a non-fatal issue met during a merge.
type Warning struct {
	Message string
	Err     error // underlying cause, may be nil
}

func (w Warning) String() string {
	if w.Err != nil {
		return w.Message + ": " + w.Err.Error()
	}
	return w.Message
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
