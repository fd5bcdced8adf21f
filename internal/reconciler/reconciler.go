package reconciler

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/ivaltryek/kube-nimble/internal/k8s"
	"github.com/ivaltryek/kube-nimble/internal/transform"
	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Func reconciles a single kind for a Nimble.
type Func func(ctx context.Context, nimble *v1.Nimble, rc Context) (Result, error)

// For returns the reconcile function of kind, or nil for an unknown kind.
func For(kind Kind) Func {
	switch kind {
	case KindDeployment:
		return Deployment
	case KindService:
		return Service
	case KindIngress:
		return Ingress
	case KindHPA:
		return HorizontalPodAutoscaler
	default:
		return nil
	}
}

func Deployment(ctx context.Context, nimble *v1.Nimble, rc Context) (Result, error) {
	return reconcile(ctx, KindDeployment, nimble, rc, true, func(ownership transform.Ownership) any {
		return transform.Deployment(nimble, ownership)
	})
}

func Service(ctx context.Context, nimble *v1.Nimble, rc Context) (Result, error) {
	return reconcile(ctx, KindService, nimble, rc, nimble.Spec.Service != nil, func(ownership transform.Ownership) any {
		return transform.Service(nimble, ownership)
	})
}

func Ingress(ctx context.Context, nimble *v1.Nimble, rc Context) (Result, error) {
	return reconcile(ctx, KindIngress, nimble, rc, nimble.Spec.Ingress != nil, func(ownership transform.Ownership) any {
		return transform.Ingress(nimble, ownership)
	})
}

func HorizontalPodAutoscaler(ctx context.Context, nimble *v1.Nimble, rc Context) (Result, error) {
	return reconcile(ctx, KindHPA, nimble, rc, nimble.Spec.HPA != nil, func(ownership transform.Ownership) any {
		return transform.HorizontalPodAutoscaler(nimble, ownership)
	})
}

func reconcile(ctx context.Context, kind Kind, nimble *v1.Nimble, rc Context, requested bool, build func(transform.Ownership) any) (Result, error) {
	if !requested {
		return Result{}, nil
	}

	if nimble.Name == "" {
		return Result{}, MissingObjectKeyError{Field: ".metadata.name"}
	}
	if nimble.Namespace == "" {
		return Result{}, MissingObjectKeyError{Field: ".metadata.namespace"}
	}

	if rc.DryRun {
		result := Result{Outcome: Outcome{Requested: true}}
		if err := render(ctx, kind, rc, build(transform.Detached())); err != nil {
			log.FromContext(ctx).Error(err, "dry run failed", "kind", kind, "resource_name", nimble.Name, "namespace", nimble.Namespace)
			result.Warning = fmt.Errorf("%s: %w", kind.Short(), err)
		}
		return result, nil
	}

	resource, err := k8s.ToUnstructured(build(transform.AttachedTo(nimble)))
	if err == nil {
		_, err = rc.Client.ApplyResource(ctx, resource, k8s.ApplyOpts{ForceConflicts: rc.ForceConflicts})
	}
	if err != nil {
		return Result{Outcome: Outcome{Requested: true}}, ObjectCreationFailedError{Kind: kind, Err: err}
	}

	return Result{
		RequeueAfter: DriftInterval,
		Outcome:      Outcome{Requested: true, Applied: true},
	}, nil
}

func render(ctx context.Context, kind Kind, rc Context, manifest any) error {
	resource, err := k8s.ToUnstructured(manifest)
	if err != nil {
		return err
	}

	result, err := rc.Client.ApplyResource(ctx, resource, k8s.ApplyOpts{DryRun: true, ForceConflicts: rc.ForceConflicts})
	if err != nil {
		return fmt.Errorf("dry run apply: %w", err)
	}

	k8s.StripServerFields(result)

	if rc.Renderer == nil {
		return nil
	}
	return rc.Renderer.Render(ctx, kind, result)
}
