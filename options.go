package docmerge

import (
	"log/slog"

	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
	docslog "github.com/tsawler/docmerge/slog"
)

// MergeOptions holds configuration for a merge.
type MergeOptions struct {
	includeFirstCell bool
	imageWidth       int64 // EMUs
	emphasis         merge.Emphasis
	tableSpacing     bool

	logger     *slog.Logger
	describer  merge.ImageDescriber
	classifier merge.Classifier
}

// defaultOptions returns the default merge options.
func defaultOptions() MergeOptions {
	return MergeOptions{
		imageWidth:   merge.DefaultImageWidth,
		emphasis:     merge.DefaultEmphasis,
		tableSpacing: true,
	}
}

// engine builds the merge engine described by the options.
func (o MergeOptions) engine() *merge.Engine {
	e := merge.NewEngine()
	e.IncludeFirstCell = o.includeFirstCell
	e.ImageWidth = o.imageWidth
	e.TableSpacing = o.tableSpacing
	e.Logger = o.logger
	e.Describer = o.describer

	if o.classifier != nil {
		e.Classifier = o.classifier
	} else {
		e.Classifier = &merge.StyleClassifier{Emphasis: o.emphasis}
	}

	if o.logger != nil {
		e.Classifier = docslog.NewLoggingClassifier(e.Classifier, o.logger)
		if e.Describer != nil {
			e.Describer = docslog.NewLoggingDescriber(e.Describer, o.logger)
		}
	}
	return e
}

// inchesToEMU converts a width in inches to EMUs.
func inchesToEMU(in float64) int64 {
	return int64(in * model.EMUPerInch)
}
