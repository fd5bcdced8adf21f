package k8s

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	kerrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

const FieldManager = "nimble.ivaltryek.github.com"

type Client struct {
	dynamic dynamic.Interface
	mapper  meta.RESTMapper
}

// RestConfig loads the kubeconfig at path, falling back to the in-cluster
// configuration when no such file exists.
func RestConfig(path string) (*rest.Config, error) {
	if _, err := os.Stat(path); path == "" || errors.Is(err, os.ErrNotExist) {
		cfg, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("no kubeconfig found at %q and in-cluster config unavailable: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("failed to build k8 config: %w", err)
	}
	return cfg, nil
}

func NewClientFromKubeConfig(path string) (*Client, error) {
	restcfg, err := RestConfig(path)
	if err != nil {
		return nil, err
	}
	return NewClient(restcfg)
}

func NewClient(cfg *rest.Config) (*Client, error) {
	dynamicClient, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client component: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create k8 clientset: %w", err)
	}

	return NewClientFrom(
		dynamicClient,
		restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(clientset.DiscoveryClient)),
	), nil
}

// NewClientFrom builds a client over an existing dynamic interface and REST mapper,
// such as the ones owned by a controller manager.
func NewClientFrom(dynamicClient dynamic.Interface, mapper meta.RESTMapper) *Client {
	return &Client{dynamic: dynamicClient, mapper: mapper}
}

type ApplyOpts struct {
	DryRun         bool
	ForceConflicts bool
}

// ApplyResource server-side applies the resource and returns the object as the API server sees it.
// With DryRun set the request is validated and defaulted but nothing is persisted.
func (client Client) ApplyResource(ctx context.Context, resource *unstructured.Unstructured, opts ApplyOpts) (*unstructured.Unstructured, error) {
	resourceInterface, err := client.GetDynamicResourceInterface(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource: %w", err)
	}

	dryRun := func() []string {
		if opts.DryRun {
			return []string{metav1.DryRunAll}
		}
		return nil
	}()

	data, err := json.Marshal(resource)
	if err != nil {
		return nil, err
	}

	return resourceInterface.Patch(
		ctx,
		resource.GetName(),
		types.ApplyPatchType,
		data,
		metav1.PatchOptions{
			FieldManager: FieldManager,
			Force:        &opts.ForceConflicts,
			DryRun:       dryRun,
		},
	)
}

// GetResource fetches the live counterpart of resource. It returns nil without error when the
// object does not exist yet.
func (client Client) GetResource(ctx context.Context, resource *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	resourceInterface, err := client.GetDynamicResourceInterface(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource: %w", err)
	}

	live, err := resourceInterface.Get(ctx, resource.GetName(), metav1.GetOptions{})
	if kerrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return live, nil
}

func (client Client) GetDynamicResourceInterface(resource *unstructured.Unstructured) (dynamic.ResourceInterface, error) {
	apiResource, err := client.LookupResourceMapping(resource)
	if err != nil {
		return nil, err
	}
	if apiResource.Scope.Name() == meta.RESTScopeNameNamespace {
		return client.dynamic.Resource(apiResource.Resource).Namespace(resource.GetNamespace()), nil
	}
	return client.dynamic.Resource(apiResource.Resource), nil
}

func (client Client) LookupResourceMapping(resource *unstructured.Unstructured) (*meta.RESTMapping, error) {
	gvk := schema.FromAPIVersionAndKind(resource.GetAPIVersion(), resource.GetKind())
	return client.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
}
