package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/davidmdm/x/xerr"

	"github.com/ivaltryek/kube-nimble/internal"
	"github.com/ivaltryek/kube-nimble/internal/reconciler"
	"github.com/ivaltryek/kube-nimble/internal/render"
	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

type Client interface {
	reconciler.Applier
	render.Getter
}

// Render runs every kind's reconciler once in dry-run mode. Reconcile failures are reported as a
// warning and the requeue instructions are discarded.
func Render(ctx context.Context, client Client, params RenderParams) error {
	ctx = internal.WithDebugFlag(ctx, &params.Debug)
	defer internal.DebugTimer(ctx, "render")()

	nimble, err := loadNimble(params)
	if err != nil {
		return err
	}

	if nimble.Namespace == "" {
		nimble.Namespace = params.Namespace
	}

	rc := reconciler.Context{
		Client:   client,
		Renderer: renderer(client, params),
		DryRun:   true,
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)
	tbl.AppendHeader(table.Row{"kind", "requested", "rendered", "error"})

	var errs []error
	for _, kind := range reconciler.Kinds {
		stop := internal.DebugTimer(ctx, "dry run "+kind.Short())
		result, err := reconciler.For(kind)(ctx, nimble, rc)
		stop()

		if err != nil {
			err = fmt.Errorf("%s: %w", kind.Short(), err)
		} else {
			err = result.Warning
		}

		var msg string
		if err != nil {
			errs = append(errs, err)
			msg = err.Error()
		}

		tbl.AppendRow(table.Row{kind.Short(), result.Outcome.Requested, result.Outcome.Requested && err == nil, msg})
	}

	if _, err := io.WriteString(internal.Stderr(ctx), tbl.Render()+"\n"); err != nil {
		return err
	}

	if err := xerr.MultiErrOrderedFrom("failed to render", errs...); err != nil {
		return internal.Warning{Err: err, Causes: errs}
	}

	return nil
}

func renderer(client Client, params RenderParams) reconciler.Renderer {
	switch {
	case params.Out != "":
		return render.Dir{Path: params.Out}
	case params.Diff:
		return render.Diff{Client: client, Context: params.Context, Color: params.Color}
	default:
		return render.Stdout{Color: params.Color}
	}
}

func loadNimble(params RenderParams) (*v1.Nimble, error) {
	if params.Resource == "" || params.Resource == "-" {
		nimble, err := v1.Decode(params.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read nimble from stdin: %w", err)
		}
		return nimble, nil
	}

	file, err := os.Open(params.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to open nimble resource: %w", err)
	}
	defer file.Close()

	nimble, err := v1.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", params.Resource, err)
	}
	return nimble, nil
}
