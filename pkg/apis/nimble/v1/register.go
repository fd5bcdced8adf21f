package v1

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	Group    = "ivaltryek.github.com"
	Version  = "v1"
	Kind     = "Nimble"
	Resource = "nimbles"
)

var (
	GroupVersion         = schema.GroupVersion{Group: Group, Version: Version}
	GroupVersionKind     = GroupVersion.WithKind(Kind)
	GroupVersionResource = GroupVersion.WithResource(Resource)
)

// APIVersion returns the apiVersion string used in owner references.
func APIVersion() string { return GroupVersion.String() }

// NewUnstructured returns an empty object typed as a Nimble, suitable for
// reading through clients that do not know the Nimble Go type.
func NewUnstructured() *unstructured.Unstructured {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(GroupVersionKind)
	return obj
}
