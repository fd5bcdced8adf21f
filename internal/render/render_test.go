package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/ivaltryek/kube-nimble/internal"
	"github.com/ivaltryek/kube-nimble/internal/reconciler"
)

func service(clusterIP string) *unstructured.Unstructured {
	return &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "v1",
			"kind":       "Service",
			"metadata": map[string]any{
				"name":            "web",
				"namespace":       "default",
				"uid":             "1234",
				"resourceVersion": "42",
			},
			"spec": map[string]any{
				"clusterIP": clusterIP,
			},
		},
	}
}

func TestStdout(t *testing.T) {
	var stdout bytes.Buffer
	ctx := internal.WithStdout(context.Background(), &stdout)

	require.NoError(t, Stdout{}.Render(ctx, reconciler.KindService, service("10.0.0.1")))
	require.NoError(t, Stdout{}.Render(ctx, reconciler.KindHPA, &unstructured.Unstructured{Object: map[string]any{"kind": "HorizontalPodAutoscaler"}}))

	expected := "---\n# service.yaml\n\n" +
		"apiVersion: v1\n" +
		"kind: Service\n" +
		"metadata:\n" +
		"  name: web\n" +
		"  namespace: default\n" +
		"  resourceVersion: \"42\"\n" +
		"  uid: \"1234\"\n" +
		"spec:\n" +
		"  clusterIP: 10.0.0.1\n" +
		"---\n# hpa.yaml\n\n" +
		"kind: HorizontalPodAutoscaler\n"

	require.Equal(t, expected, stdout.String())
}

// chunks records every Write separately and is slow enough to expose interleaving.
type chunks struct {
	mu     sync.Mutex
	writes []string
}

func (w *chunks) Write(data []byte) (int, error) {
	time.Sleep(5 * time.Millisecond)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, string(data))
	return len(data), nil
}

func TestStdoutConcurrentDocumentsStayWhole(t *testing.T) {
	var out chunks
	ctx := internal.WithStdout(context.Background(), &out)

	errs := make([]error, len(reconciler.Kinds))

	var wg sync.WaitGroup
	for i, kind := range reconciler.Kinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resource := &unstructured.Unstructured{Object: map[string]any{"kind": string(kind)}}
			errs[i] = Stdout{}.Render(ctx, kind, resource)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, out.writes, len(reconciler.Kinds))

	var headers []string
	for _, document := range out.writes {
		lines := strings.Split(document, "\n")
		require.Equal(t, "---", lines[0])
		require.True(t, strings.HasPrefix(lines[1], "# "))

		kind := reconciler.Kind(strings.TrimPrefix(lines[3], "kind: "))
		require.Equal(t, "# "+kind.Short()+".yaml", lines[1])

		headers = append(headers, lines[1])
	}
	require.ElementsMatch(t, []string{"# deployment.yaml", "# service.yaml", "# ingress.yaml", "# hpa.yaml"}, headers)
}

func TestDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, Dir{Path: dir}.Render(context.Background(), reconciler.KindService, service("10.0.0.1")))

	data, err := os.ReadFile(filepath.Join(dir, "default.core.v1.service.web.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "clusterIP: 10.0.0.1\n")
}

type getter map[string]*unstructured.Unstructured

func (getter getter) GetResource(_ context.Context, resource *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	live, ok := getter[resource.GetName()]
	if !ok {
		return nil, nil
	}
	return live.DeepCopy(), nil
}

func TestDiff(t *testing.T) {
	cases := []struct {
		Name     string
		Live     getter
		Contains []string
		Empty    bool
	}{
		{
			Name:  "unchanged",
			Live:  getter{"web": service("10.0.0.1")},
			Empty: true,
		},
		{
			Name: "changed",
			Live: getter{"web": service("10.0.0.2")},
			Contains: []string{
				"--- live/default.core.v1.service.web\n",
				"+++ dry-run/default.core.v1.service.web\n",
				"-  clusterIP: 10.0.0.2\n",
				"+  clusterIP: 10.0.0.1\n",
			},
		},
		{
			Name: "not yet created",
			Live: getter{},
			Contains: []string{
				"+kind: Service\n",
				"+  clusterIP: 10.0.0.1\n",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			var stdout bytes.Buffer
			ctx := internal.WithStdout(context.Background(), &stdout)

			desired := service("10.0.0.1")
			desired.SetResourceVersion("43")

			require.NoError(t, Diff{Client: tc.Live, Context: 3}.Render(ctx, reconciler.KindService, desired))

			if tc.Empty {
				require.Empty(t, stdout.String())
				return
			}
			for _, value := range tc.Contains {
				require.Contains(t, stdout.String(), value)
			}
		})
	}
}
