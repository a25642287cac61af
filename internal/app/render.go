package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
	"github.com/randalmurphal/varsubst/pkg/varsubst/observability"
)

// render substitutes the input once and writes the output.
func (a *App) render(ctx context.Context) (err error) {
	runID := uuid.NewString()
	source := a.source()
	logger := observability.EnrichLogger(a.logger, runID, source)

	ctx, span := a.spans.StartRunSpan(ctx, source, runID)
	defer func() { a.spans.EndSpanWithError(span, err) }()

	input, err := a.readInput()
	if err != nil {
		return err
	}
	observability.LogRunStart(logger, runID, len(input))
	elapsed := observability.TimedOperation()

	resolver, err := a.resolver()
	if err != nil {
		return err
	}
	counter := &countingResolver{r: resolver}

	res, err := a.engine.Substitute(input, counter)
	ms := elapsed()
	a.metrics.RecordRun(ctx, err == nil, len(input), counter.lookups, len(res.Undefined),
		time.Duration(ms*float64(time.Millisecond)))
	if err != nil {
		err = fmt.Errorf("%s: %w", source, err)
		observability.LogRunError(logger, runID, err, ms)
		return err
	}

	for _, name := range res.Undefined {
		a.warnf("undefined variable %s", name)
		a.spans.AddSpanEvent(ctx, "undefined", attribute.String("name", name))
		observability.LogUndefined(logger, name)
	}

	if err := a.writeOutput(res.Output); err != nil {
		return err
	}
	observability.LogRunComplete(logger, runID, ms, len(res.Output), len(res.Undefined))
	return nil
}

// listNames prints every referenced name once, in first-seen order.
func (a *App) listNames() error {
	input, err := a.readInput()
	if err != nil {
		return err
	}
	names, err := a.engine.Names(input)
	if err != nil {
		return fmt.Errorf("%s: %w", a.source(), err)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(a.outW, name); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) source() string {
	if isStdin(a.cfg.InputPath) {
		return "stdin"
	}
	return a.cfg.InputPath
}

func (a *App) readInput() (string, error) {
	if isStdin(a.cfg.InputPath) {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(a.cfg.InputPath)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func (a *App) writeOutput(out string) error {
	if a.cfg.OutputPath == "" {
		_, err := io.WriteString(a.outW, out)
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// ErrorLine formats a failed run for stderr. Scan failures are prefixed
// "substitution error:", everything else "error:".
func ErrorLine(err error) string {
	if _, ok := varsubst.AsError(err); ok {
		return "substitution error: " + err.Error()
	}
	return "error: " + err.Error()
}
