package controller

import (
	"context"
	"fmt"

	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/ivaltryek/kube-nimble/internal/reconciler"
	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Reconciler adapts a single kind's reconcile function to controller-runtime.
type Reconciler struct {
	Kind    reconciler.Kind
	Reader  client.Reader
	Context reconciler.Context
}

func (r Reconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	obj := v1.NewUnstructured()
	if err := r.Reader.Get(ctx, req.NamespacedName, obj); err != nil {
		return reconcile.Result{}, client.IgnoreNotFound(err)
	}

	nimble, err := v1.FromUnstructured(obj)
	if err != nil {
		return reconcile.Result{}, err
	}

	logger := log.FromContext(ctx).WithValues("resource_name", nimble.Name, "namespace", nimble.Namespace)

	reconcileKind := reconciler.For(r.Kind)
	if reconcileKind == nil {
		return reconcile.Result{}, fmt.Errorf("no reconciler for kind %q", r.Kind)
	}

	result, err := reconcileKind(ctx, nimble, r.Context)
	reconcileOutcomes.WithLabelValues(r.Kind.Short(), outcome(result, err)).Inc()

	if err != nil {
		logger.Error(err, fmt.Sprintf("%s reconciliation error", r.Kind))
		return reconcile.Result{}, err
	}

	if result.Outcome.Applied {
		logger.Info(fmt.Sprintf("%s reconciliation successful.", r.Kind))
	}

	return reconcile.Result{RequeueAfter: result.RequeueAfter}, nil
}

// RateLimiter retries every failed request after the same fixed delay.
func RateLimiter() workqueue.TypedRateLimiter[reconcile.Request] {
	return workqueue.NewTypedItemExponentialFailureRateLimiter[reconcile.Request](reconciler.RetryDelay, reconciler.RetryDelay)
}

// Name is the controller name registered for kind.
func Name(kind reconciler.Kind) string {
	return "nimble-" + kind.Short()
}

// Setup registers one controller per derived kind with the manager. Each watches Nimble objects
// independently of the others.
func Setup(mgr ctrl.Manager, rc reconciler.Context) error {
	for _, kind := range reconciler.Kinds {
		err := ctrl.NewControllerManagedBy(mgr).
			Named(Name(kind)).
			For(v1.NewUnstructured()).
			WithOptions(controller.Options{RateLimiter: RateLimiter()}).
			Complete(Reconciler{Kind: kind, Reader: mgr.GetClient(), Context: rc})
		if err != nil {
			return fmt.Errorf("failed to set up %s controller: %w", Name(kind), err)
		}
	}
	return nil
}
