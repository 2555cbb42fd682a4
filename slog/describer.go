package slog

import (
	"log/slog"
	"time"

	"github.com/tsawler/docmerge/merge"
)

// Ensure LoggingDescriber implements merge.ImageDescriber.
var _ merge.ImageDescriber = (*LoggingDescriber)(nil)

// LoggingDescriber wraps an ImageDescriber with debug logging.
type LoggingDescriber struct {
	next   merge.ImageDescriber
	logger *slog.Logger
}

// NewLoggingDescriber creates a new LoggingDescriber.
func NewLoggingDescriber(next merge.ImageDescriber, logger *slog.Logger) *LoggingDescriber {
	return &LoggingDescriber{next: next, logger: logger}
}

// Describe delegates to the wrapped describer and logs the outcome.
func (d *LoggingDescriber) Describe(data []byte) (string, error) {
	begin := time.Now()
	alt, err := d.next.Describe(data)
	if err != nil {
		d.logger.Debug("image description failed",
			"bytes", len(data),
			"error", err,
			"duration", time.Since(begin),
		)
		return "", err
	}
	d.logger.Debug("image described",
		"bytes", len(data),
		"chars", len(alt),
		"duration", time.Since(begin),
	)
	return alt, nil
}
