package main

import (
	"github.com/davidmdm/conf"

	"github.com/ivaltryek/kube-nimble/internal/home"
)

type Config struct {
	KubeConfigPath string
	DryRun         bool
	ForceConflicts bool
	MetricsAddr    string
	ProbeAddr      string
}

func getConfig() (cfg Config, err error) {
	conf.Var(conf.Environ, &cfg.KubeConfigPath, "KUBECONFIG", conf.Default(home.Kubeconfig))
	conf.Var(conf.Environ, &cfg.DryRun, "DRY_RUN", conf.Default(false))
	conf.Var(conf.Environ, &cfg.ForceConflicts, "FORCE_CONFLICTS", conf.Default(false))
	conf.Var(conf.Environ, &cfg.MetricsAddr, "METRICS_ADDR", conf.Default(":8080"))
	conf.Var(conf.Environ, &cfg.ProbeAddr, "PROBE_ADDR", conf.Default(":8081"))
	err = conf.Environ.Parse()
	return
}
