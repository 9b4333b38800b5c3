// Package progress reports staged CLI progress for composition runs.
package progress

import (
	"fmt"
	"io"
	"time"
)

// Stage represents a processing stage
type Stage struct {
	Number      int
	Total       int
	Name        string
	Description string
}

// Predefined stages of a composition run
var (
	StageDigits  = Stage{1, 4, "digits", "Generating π digits..."}
	StageMap     = Stage{2, 4, "map", "Mapping digits to notes..."}
	StageEnhance = Stage{3, 4, "enhance", "Detecting patterns and enhancing melody..."}
	StageRender  = Stage{4, 4, "render", "Rendering output..."}
)

// Reporter handles CLI progress output
type Reporter struct {
	out       io.Writer
	startTime time.Time
	verbose   bool
}

// NewReporter creates a new progress reporter
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{
		out:       out,
		startTime: time.Now(),
		verbose:   verbose,
	}
}

// StartStage announces the beginning of a processing stage
func (r *Reporter) StartStage(stage Stage) {
	fmt.Fprintf(r.out, "[%d/%d] %s\n", stage.Number, stage.Total, stage.Description)
}

// Update shows a sub-progress message within a stage
func (r *Reporter) Update(format string, args ...any) {
	if r.verbose {
		fmt.Fprintf(r.out, "       %s\n", fmt.Sprintf(format, args...))
	}
}

// StageComplete shows completion message for a stage
func (r *Reporter) StageComplete(format string, args ...any) {
	fmt.Fprintf(r.out, "       %s\n", fmt.Sprintf(format, args...))
}

// Done announces successful completion
func (r *Reporter) Done(outputPath string) {
	elapsed := time.Since(r.startTime)
	fmt.Fprintln(r.out, "Done! Composition generated successfully.")
	if outputPath != "" {
		fmt.Fprintf(r.out, "Output saved to: %s\n", outputPath)
	}
	fmt.Fprintf(r.out, "Completed in %.1f seconds\n", elapsed.Seconds())
}

// Error announces an error
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.out, "Error: %s\n", err)
}

// Warning announces a non-fatal warning
func (r *Reporter) Warning(format string, args ...any) {
	fmt.Fprintf(r.out, "Warning: %s\n", fmt.Sprintf(format, args...))
}
