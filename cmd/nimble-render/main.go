package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"golang.org/x/term"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/davidmdm/x/xcontext"

	"github.com/ivaltryek/kube-nimble/internal"
	"github.com/ivaltryek/kube-nimble/internal/k8s"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if internal.IsWarning(err) {
			return
		}
		os.Exit(1)
	}
}

//go:embed cmd_help.txt
var rootHelp string

func init() {
	rootHelp = strings.TrimSpace(internal.Colorize(rootHelp))
}

func run() error {
	ctx, done := xcontext.WithSignalCancelation(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	var source io.Reader
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		source = os.Stdin
	}

	klog.InitFlags(nil)

	params, err := GetRenderParams(flag.CommandLine, source, os.Args[1:])
	if err != nil {
		return err
	}

	client, err := k8s.NewClientFromKubeConfig(params.KubeConfigPath)
	if err != nil {
		return err
	}

	return Render(withLogger(ctx, klog.NewKlogr()), client, *params)
}

// withLogger routes controller-runtime logging, including the reconcilers' dry-run
// failures, through logger.
func withLogger(ctx context.Context, logger logr.Logger) context.Context {
	ctrl.SetLogger(logger)
	return log.IntoContext(ctx, logger)
}
