package home

import (
	"os"
	"path/filepath"
)

var Kubeconfig string

// Containers commonly run without a home directory. Kubeconfig is then left empty
// and callers fall back to the in-cluster configuration.
func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	Kubeconfig = filepath.Join(home, ".kube/config")
}
