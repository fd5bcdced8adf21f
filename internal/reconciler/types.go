package reconciler

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/ivaltryek/kube-nimble/internal/k8s"
)

// Kind is a manifest kind derived from a Nimble.
type Kind string

const (
	KindDeployment Kind = "Deployment"
	KindService    Kind = "Service"
	KindIngress    Kind = "Ingress"
	KindHPA        Kind = "HorizontalPodAutoscaler"
)

// Kinds lists every derived kind in render order.
var Kinds = []Kind{KindDeployment, KindService, KindIngress, KindHPA}

// Short is the lowercase name used in render headers and controller names.
func (kind Kind) Short() string {
	switch kind {
	case KindDeployment:
		return "deployment"
	case KindService:
		return "service"
	case KindIngress:
		return "ingress"
	case KindHPA:
		return "hpa"
	default:
		return string(kind)
	}
}

// Applier server-side applies a manifest and returns the object the API server produced.
// *k8s.Client satisfies it.
type Applier interface {
	ApplyResource(ctx context.Context, resource *unstructured.Unstructured, opts k8s.ApplyOpts) (*unstructured.Unstructured, error)
}

// Renderer receives dry-run results.
type Renderer interface {
	Render(ctx context.Context, kind Kind, resource *unstructured.Unstructured) error
}

type RenderFunc func(ctx context.Context, kind Kind, resource *unstructured.Unstructured) error

func (fn RenderFunc) Render(ctx context.Context, kind Kind, resource *unstructured.Unstructured) error {
	return fn(ctx, kind, resource)
}

// Context is shared by every reconcile of a process.
type Context struct {
	Client         Applier
	Renderer       Renderer
	DryRun         bool
	ForceConflicts bool
}

// Outcome reports what a single reconcile did for its kind.
type Outcome struct {
	// Requested is true when the Nimble declares the kind.
	Requested bool
	// Applied is true when the manifest was persisted to the cluster.
	Applied bool
}

type Result struct {
	// RequeueAfter is zero when the reconcile should wait for the next change.
	RequeueAfter time.Duration
	Outcome      Outcome
	// Warning holds a dry-run failure that was logged and not returned.
	Warning error
}
