package v1

import (
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	kyaml "k8s.io/apimachinery/pkg/util/yaml"
)

// Decode reads exactly one Nimble document, YAML or JSON, from r and applies defaults.
func Decode(r io.Reader) (*Nimble, error) {
	decoder := kyaml.NewYAMLOrJSONDecoder(r, 4096)

	var nimble Nimble
	if err := decoder.Decode(&nimble); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no document found")
		}
		return nil, fmt.Errorf("failed to decode nimble: %w", err)
	}

	var extra map[string]any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("failed to decode trailing document: %w", err)
		}
		if len(extra) > 0 {
			return nil, fmt.Errorf("expected exactly one document")
		}
	}

	if err := checkTypeMeta(nimble.APIVersion, nimble.Kind); err != nil {
		return nil, err
	}

	nimble.Default()

	return &nimble, nil
}

// FromUnstructured converts an object read from the cluster into a defaulted Nimble.
func FromUnstructured(obj *unstructured.Unstructured) (*Nimble, error) {
	if err := checkTypeMeta(obj.GetAPIVersion(), obj.GetKind()); err != nil {
		return nil, err
	}

	var nimble Nimble
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, &nimble); err != nil {
		return nil, fmt.Errorf("failed to convert %s/%s: %w", obj.GetNamespace(), obj.GetName(), err)
	}

	nimble.Default()

	return &nimble, nil
}

func checkTypeMeta(apiVersion, kind string) error {
	if kind != "" && kind != Kind {
		return fmt.Errorf("unexpected kind %q: expected %s", kind, Kind)
	}
	if apiVersion != "" && apiVersion != APIVersion() {
		return fmt.Errorf("unexpected apiVersion %q: expected %s", apiVersion, APIVersion())
	}
	return nil
}
