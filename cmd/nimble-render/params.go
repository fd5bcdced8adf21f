package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ivaltryek/kube-nimble/internal/home"
)

type RenderParams struct {
	KubeConfigPath string

	// Resource is the path of the Nimble document. Empty or "-" reads Input.
	Resource string
	Input    io.Reader

	Namespace string
	Out       string
	Diff      bool
	Context   int
	Color     bool
	Debug     bool
}

func GetRenderParams(flagset *flag.FlagSet, source io.Reader, args []string) (*RenderParams, error) {
	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), rootHelp)
		flagset.PrintDefaults()
	}

	params := RenderParams{Input: source}

	flagset.StringVar(&params.KubeConfigPath, "kubeconfig", home.Kubeconfig, "path to kube config")
	flagset.StringVar(&params.Resource, "resource", "", "path to the nimble resource to render, - reads standard in")
	flagset.StringVar(&params.Namespace, "namespace", "default", "namespace for the nimble if it does not define one")
	flagset.StringVar(&params.Out, "out", "", "if present writes every manifest to its own file in the directory specified")
	flagset.BoolVar(&params.Diff, "diff", false, "show a diff between the live objects and the would be applied state")
	flagset.IntVar(&params.Context, "context", 4, "number of lines of context in diff (ignored if not using -diff)")
	flagset.BoolVar(&params.Color, "color", term.IsTerminal(int(os.Stdout.Fd())), "use colored output")
	flagset.BoolVar(&params.Debug, "debug", false, "print timings of every step to stderr")

	if err := flagset.Parse(args); err != nil {
		return nil, err
	}

	if params.Resource != "" && params.Resource != "-" {
		params.Input = nil
	}

	if params.Input == nil && (params.Resource == "" || params.Resource == "-") {
		return nil, fmt.Errorf("a nimble resource is required: use -resource or pipe it to standard in")
	}

	if params.Out != "" && params.Diff {
		return nil, fmt.Errorf("-out and -diff cannot be used together")
	}

	return &params, nil
}
