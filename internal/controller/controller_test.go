package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/ivaltryek/kube-nimble/internal/k8s"
	"github.com/ivaltryek/kube-nimble/internal/reconciler"
	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

type reader map[types.NamespacedName]*unstructured.Unstructured

func (reader reader) Get(_ context.Context, key client.ObjectKey, obj client.Object, _ ...client.GetOption) error {
	stored, ok := reader[key]
	if !ok {
		return kerrors.NewNotFound(v1.GroupVersionResource.GroupResource(), key.Name)
	}
	obj.(*unstructured.Unstructured).Object = stored.DeepCopy().Object
	return nil
}

func (reader reader) List(context.Context, client.ObjectList, ...client.ListOption) error {
	return errors.New("not implemented")
}

type applier struct {
	applied []*unstructured.Unstructured
	err     error
}

func (applier *applier) ApplyResource(_ context.Context, resource *unstructured.Unstructured, _ k8s.ApplyOpts) (*unstructured.Unstructured, error) {
	if applier.err != nil {
		return nil, applier.err
	}
	applier.applied = append(applier.applied, resource)
	return resource, nil
}

var key = types.NamespacedName{Namespace: "default", Name: "web"}

func storedNimble() reader {
	obj := v1.NewUnstructured()
	obj.SetName(key.Name)
	obj.SetNamespace(key.Namespace)
	obj.SetUID("uid-1")
	obj.Object["spec"] = map[string]any{
		"deployment": map[string]any{
			"labels":     map[string]any{"app": "web"},
			"containers": []any{map[string]any{"name": "web", "image": "nginx:1.25"}},
		},
	}
	return reader{key: obj}
}

func TestReconcileDeployment(t *testing.T) {
	applier := &applier{}

	r := Reconciler{
		Kind:    reconciler.KindDeployment,
		Reader:  storedNimble(),
		Context: reconciler.Context{Client: applier},
	}

	before := testutil.ToFloat64(reconcileOutcomes.WithLabelValues("deployment", OutcomeApplied))

	result, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: key})
	require.NoError(t, err)
	require.Equal(t, reconcile.Result{RequeueAfter: 30 * time.Second}, result)

	require.Len(t, applier.applied, 1)
	require.Equal(t, "Deployment", applier.applied[0].GetKind())
	require.Equal(t, "web", applier.applied[0].GetName())

	require.Equal(t, before+1, testutil.ToFloat64(reconcileOutcomes.WithLabelValues("deployment", OutcomeApplied)))
}

func TestReconcileAbsentKind(t *testing.T) {
	applier := &applier{}

	r := Reconciler{
		Kind:    reconciler.KindIngress,
		Reader:  storedNimble(),
		Context: reconciler.Context{Client: applier},
	}

	result, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: key})
	require.NoError(t, err)
	require.Equal(t, reconcile.Result{}, result)
	require.Empty(t, applier.applied)
}

func TestReconcileDeletedNimble(t *testing.T) {
	r := Reconciler{
		Kind:    reconciler.KindDeployment,
		Reader:  reader{},
		Context: reconciler.Context{Client: &applier{}},
	}

	result, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: key})
	require.NoError(t, err)
	require.Equal(t, reconcile.Result{}, result)
}

func TestReconcileApplyFailure(t *testing.T) {
	cause := errors.New("forbidden")

	r := Reconciler{
		Kind:    reconciler.KindDeployment,
		Reader:  storedNimble(),
		Context: reconciler.Context{Client: &applier{err: cause}},
	}

	_, err := r.Reconcile(context.Background(), reconcile.Request{NamespacedName: key})
	require.ErrorIs(t, err, cause)
	require.True(t, reconciler.IsObjectCreationFailed(err))
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		Name     string
		Result   reconciler.Result
		Err      error
		Expected string
	}{
		{
			Name:     "absent",
			Expected: OutcomeAbsent,
		},
		{
			Name:     "applied",
			Result:   reconciler.Result{Outcome: reconciler.Outcome{Requested: true, Applied: true}},
			Expected: OutcomeApplied,
		},
		{
			Name:     "rendered",
			Result:   reconciler.Result{Outcome: reconciler.Outcome{Requested: true}},
			Expected: OutcomeRendered,
		},
		{
			Name:     "dry run warning",
			Result:   reconciler.Result{Outcome: reconciler.Outcome{Requested: true}, Warning: errors.New("boom")},
			Expected: OutcomeError,
		},
		{
			Name:     "error",
			Err:      errors.New("boom"),
			Expected: OutcomeError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			require.Equal(t, tc.Expected, outcome(tc.Result, tc.Err))
		})
	}
}

func TestRateLimiterIsFixed(t *testing.T) {
	limiter := RateLimiter()
	request := reconcile.Request{NamespacedName: key}

	for range 5 {
		require.Equal(t, reconciler.RetryDelay, limiter.When(request))
	}
}

func TestNames(t *testing.T) {
	var names []string
	for _, kind := range reconciler.Kinds {
		names = append(names, Name(kind))
	}
	require.Equal(t, []string{"nimble-deployment", "nimble-service", "nimble-ingress", "nimble-hpa"}, names)
}
