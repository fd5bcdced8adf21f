package k8s

import (
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ToUnstructured converts any JSON serializable manifest, typically an apply configuration,
// into its unstructured form.
func ToUnstructured(value any) (*unstructured.Unstructured, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	var resource unstructured.Unstructured
	if err := resource.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &resource, nil
}

// StripServerFields removes the bookkeeping the API server adds to responses, leaving the
// object as a user would write it.
func StripServerFields(resource *unstructured.Unstructured) {
	if resource == nil {
		return
	}
	unstructured.RemoveNestedField(resource.Object, "metadata", "managedFields")
	unstructured.RemoveNestedField(resource.Object, "status")
}
