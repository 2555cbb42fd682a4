// Package slog provides logging decorators for the merge collaborators.
package slog

import (
	"log/slog"
	"time"

	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
)

// Ensure LoggingClassifier implements merge.Classifier.
var _ merge.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier and logs every sub-heading that was
// inferred from run emphasis rather than from a heading style.
type LoggingClassifier struct {
	next   merge.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next merge.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier.
func (c *LoggingClassifier) Classify(node model.RawNode) (model.Node, error) {
	begin := time.Now()
	out, err := c.next.Classify(node)
	if err != nil {
		c.logger.Warn("classification failed",
			"kind", node.Kind.String(),
			"error", err,
		)
		return nil, err
	}

	if sub, ok := out.(*model.Subheading); ok && node.Style.HeadingLevel == 0 {
		style := "(none)"
		if len(node.Runs) > 0 {
			style = describeStyle(node.Runs[0].Style)
		}
		c.logger.Info("sub-heading from emphasis",
			"text", sub.Text,
			"emphasis", style,
			"duration", time.Since(begin),
		)
	}
	return out, nil
}

func describeStyle(s model.TextStyle) string {
	var e merge.Emphasis
	if s.Bold {
		e |= merge.EmphasisBold
	}
	if s.Italic {
		e |= merge.EmphasisItalic
	}
	if s.Underline {
		e |= merge.EmphasisUnderline
	}
	if e == 0 {
		return "(none)"
	}
	return e.String()
}
