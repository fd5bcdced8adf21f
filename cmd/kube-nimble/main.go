package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
	"k8s.io/client-go/dynamic"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/davidmdm/x/xcontext"

	"github.com/ivaltryek/kube-nimble/internal/controller"
	"github.com/ivaltryek/kube-nimble/internal/k8s"
	"github.com/ivaltryek/kube-nimble/internal/reconciler"
	"github.com/ivaltryek/kube-nimble/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run() error {
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := getConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctrl.SetLogger(klog.NewKlogr())

	ctx, done := xcontext.WithSignalCancelation(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	restcfg, err := k8s.RestConfig(cfg.KubeConfigPath)
	if err != nil {
		return err
	}

	mgr, err := ctrl.NewManager(restcfg, ctrl.Options{
		Metrics:                metricsserver.Options{BindAddress: cfg.MetricsAddr},
		HealthProbeBindAddress: cfg.ProbeAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("failed to add health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("failed to add ready check: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restcfg)
	if err != nil {
		return fmt.Errorf("failed to create dynamic client: %w", err)
	}

	rc := reconciler.Context{
		Client:         k8s.NewClientFrom(dynamicClient, mgr.GetRESTMapper()),
		Renderer:       render.Stdout{Color: term.IsTerminal(int(os.Stdout.Fd()))},
		DryRun:         cfg.DryRun,
		ForceConflicts: cfg.ForceConflicts,
	}

	if err := controller.Setup(mgr, rc); err != nil {
		return err
	}

	klog.InfoS("starting nimble controller", "dryRun", cfg.DryRun)

	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("controller manager exited: %w", err)
	}

	klog.Info("controller terminated")
	return nil
}
