package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/utils/ptr"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

func TestIngress(t *testing.T) {
	nimble := webNimble()
	require.Nil(t, Ingress(nimble, Detached()))

	nimble.Spec.Ingress = &v1.IngSpec{
		Class: ptr.To("nginx"),
		Rules: []v1.RuleSpec{
			{Host: ptr.To("web.example.com"), PathType: "Prefix", Path: ptr.To("/"), Port: ptr.To[int32](80)},
		},
	}
	nimble.Default()

	ingress := Ingress(nimble, Detached())
	require.Equal(t, ptr.To("web"), ingress.Name)
	require.Equal(t, v1.DefaultAnnotations(), ingress.Annotations)
	require.Equal(t, ptr.To("nginx"), ingress.Spec.IngressClassName)
	require.Len(t, ingress.Spec.Rules, 1)
}

func TestRules(t *testing.T) {
	require.Nil(t, Rules(nil, "web"))
	require.Empty(t, Rules([]v1.RuleSpec{}, "web"))

	rules := Rules(
		[]v1.RuleSpec{
			{Host: ptr.To("a.example.com"), PathType: "Prefix", Path: ptr.To("/api"), Port: ptr.To[int32](8080)},
			{PathType: "Exact"},
		},
		"web",
	)

	require.Len(t, rules, 2)

	first := rules[0]
	require.Equal(t, ptr.To("a.example.com"), first.Host)
	require.Len(t, first.HTTP.Paths, 1)

	path := first.HTTP.Paths[0]
	require.Equal(t, ptr.To("/api"), path.Path)
	require.Equal(t, ptr.To(networkingv1.PathTypePrefix), path.PathType)
	require.Equal(t, ptr.To("web"), path.Backend.Service.Name)
	require.Equal(t, ptr.To[int32](8080), path.Backend.Service.Port.Number)

	second := rules[1]
	require.Nil(t, second.Host)
	require.Len(t, second.HTTP.Paths, 1)
	require.Nil(t, second.HTTP.Paths[0].Path)
	require.Equal(t, ptr.To(networkingv1.PathTypeExact), second.HTTP.Paths[0].PathType)
	require.Equal(t, ptr.To("web"), second.HTTP.Paths[0].Backend.Service.Name)
	require.Nil(t, second.HTTP.Paths[0].Backend.Service.Port)
}
