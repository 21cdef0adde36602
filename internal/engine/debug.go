package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Report carries everything operators attach to an issue: engine state,
// the run arguments, the entrypoint script and where the image storage is
// mounted. ID is generated per report so a pasted snippet can be matched
// to a conversation.
type Report struct {
	ID         string
	Version    string
	EngineInfo string
	MountInfo  string
	Arguments  string
	Entrypoint string
}

// DebugReport gathers the report's probes. The probes are independent, so
// they run concurrently; a failing probe records its error in place of the
// section instead of failing the whole report.
func (e *Engine) DebugReport(ctx context.Context, version, argsFile string) *Report {
	report := &Report{
		ID:      uuid.New().String(),
		Version: version,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := e.Info(ctx)
		if err != nil {
			report.EngineInfo = fmt.Sprintf("unavailable: %v", err)
			return nil
		}
		report.EngineInfo = reindent(info)
		return nil
	})

	g.Go(func() error {
		root, err := e.GraphRoot(ctx)
		if err != nil {
			report.MountInfo = fmt.Sprintf("unavailable: %v", err)
			return nil
		}
		mounts, err := e.MountInfo(ctx, root)
		if err != nil {
			report.MountInfo = fmt.Sprintf("unavailable: %v", err)
			return nil
		}
		report.MountInfo = reindent(mounts)
		return nil
	})

	g.Go(func() error {
		report.Arguments = readFileSection(argsFile)
		return nil
	})

	g.Go(func() error {
		report.Entrypoint = readFileSection(e.cfg.Entrypoint)
		return nil
	})

	// Probes never return errors; failures are recorded inline.
	_ = g.Wait()
	return report
}

// String renders the report as the plain text block shown to the operator.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Version: %s\n", r.Version)
	fmt.Fprintf(&b, "Engine info:\n%s\n", r.EngineInfo)
	fmt.Fprintf(&b, "Mount info for graph root:\n%s\n", r.MountInfo)
	fmt.Fprintf(&b, "Run arguments:\n%s\n", r.Arguments)
	fmt.Fprintf(&b, "Entrypoint script:\n%s", r.Entrypoint)
	return b.String()
}

// reindent pretty-prints a JSON document, returning the input unchanged if
// it does not parse.
func reindent(doc string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "    "); err != nil {
		return doc
	}
	return buf.String()
}

func readFileSection(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("unavailable: %v", err)
	}
	return strings.TrimRight(string(data), "\n")
}
