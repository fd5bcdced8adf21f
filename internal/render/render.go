package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/davidmdm/ansi"

	"github.com/ivaltryek/kube-nimble/internal"
	"github.com/ivaltryek/kube-nimble/internal/k8s"
	"github.com/ivaltryek/kube-nimble/internal/reconciler"
	"github.com/ivaltryek/kube-nimble/internal/text"
)

var cyan = ansi.MakeStyle(ansi.FgCyan)

// Stdout writes every manifest to the context's stdout as its own YAML document,
// introduced by a comment naming the manifest. Each document goes out in a single
// write so concurrent reconcilers sharing stdout never interleave.
type Stdout struct {
	Color bool
}

func (renderer Stdout) Render(ctx context.Context, kind reconciler.Kind, resource *unstructured.Unstructured) error {
	header := "# " + kind.Short() + ".yaml"
	if renderer.Color {
		header = cyan.Sprint(header)
	}

	var document bytes.Buffer
	fmt.Fprintf(&document, "---\n%s\n\n", header)

	encoder := yaml.NewEncoder(&document)
	encoder.SetIndent(2)

	if err := encoder.Encode(resource.Object); err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind.Short(), err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind.Short(), err)
	}

	_, err := internal.Stdout(ctx).Write(document.Bytes())
	return err
}

// Dir writes every manifest to its own file under Path, named after the resource's canonical name.
type Dir struct {
	Path string
}

func (renderer Dir) Render(_ context.Context, _ reconciler.Kind, resource *unstructured.Unstructured) error {
	return internal.WriteYAML(filepath.Join(renderer.Path, internal.Canonical(resource)+".yaml"), resource.Object)
}

type Getter interface {
	GetResource(ctx context.Context, resource *unstructured.Unstructured) (*unstructured.Unstructured, error)
}

// Diff prints a unified diff between the live object and the dry-run result.
type Diff struct {
	Client  Getter
	Context int
	Color   bool
}

func (renderer Diff) Render(ctx context.Context, kind reconciler.Kind, resource *unstructured.Unstructured) error {
	live, err := renderer.Client.GetResource(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to get live %s: %w", kind.Short(), err)
	}

	name := internal.Canonical(resource)

	var current any
	if live != nil {
		k8s.StripServerFields(live)
		stripVolatileMetadata(live)
		current = live.Object
	}

	desired := resource.DeepCopy()
	stripVolatileMetadata(desired)

	a, err := text.ToYamlFile("live/"+name, current)
	if err != nil {
		return err
	}

	b, err := text.ToYamlFile("dry-run/"+name, desired.Object)
	if err != nil {
		return err
	}

	differ := func() text.DiffFunc {
		if renderer.Color {
			return text.DiffColorized
		}
		return text.Diff
	}()

	_, err = fmt.Fprint(internal.Stdout(ctx), differ(a, b, renderer.Context))
	return err
}

func stripVolatileMetadata(resource *unstructured.Unstructured) {
	for _, field := range []string{"uid", "resourceVersion", "generation", "creationTimestamp"} {
		unstructured.RemoveNestedField(resource.Object, "metadata", field)
	}
}
