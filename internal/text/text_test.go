package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToYamlFile(t *testing.T) {
	file, err := ToYamlFile("service", map[string]any{"spec": map[string]any{"type": "ClusterIP"}})
	require.NoError(t, err)
	require.Equal(t, File{Name: "service", Content: "spec:\n  type: ClusterIP\n"}, file)

	empty, err := ToYamlFile("missing", nil)
	require.NoError(t, err)
	require.Equal(t, File{Name: "missing"}, empty)
}

func TestDiff(t *testing.T) {
	live := File{Name: "live", Content: "replicas: 1\nimage: nginx:1.24\n"}
	desired := File{Name: "desired", Content: "replicas: 1\nimage: nginx:1.25\n"}

	diff := Diff(live, desired, 1)

	require.True(t, strings.HasPrefix(diff, "--- live\n+++ desired\n"))
	require.Contains(t, diff, "-image: nginx:1.24\n")
	require.Contains(t, diff, "+image: nginx:1.25\n")
	require.Contains(t, diff, " replicas: 1\n")

	require.Empty(t, Diff(live, live, 1))
}
