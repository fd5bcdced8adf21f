package transform

import (
	networkingv1 "k8s.io/api/networking/v1"
	networkingv1ac "k8s.io/client-go/applyconfigurations/networking/v1"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Ingress builds the Ingress for the nimble, routing to the Service of the same name.
// It returns nil when no ingress is requested.
func Ingress(nimble *v1.Nimble, ownership Ownership) *networkingv1ac.IngressApplyConfiguration {
	spec := nimble.Spec.Ingress
	if spec == nil {
		return nil
	}

	ingSpec := networkingv1ac.IngressSpec().WithRules(Rules(spec.Rules, nimble.Name)...)
	if spec.Class != nil {
		ingSpec.WithIngressClassName(*spec.Class)
	}

	return networkingv1ac.Ingress(nimble.Name, nimble.Namespace).
		WithAnnotations(spec.Annotations).
		WithOwnerReferences(ownership.References()...).
		WithSpec(ingSpec)
}

// Rules yields one rule per spec, each holding a single HTTP path backed by the named service.
func Rules(specs []v1.RuleSpec, service string) []*networkingv1ac.IngressRuleApplyConfiguration {
	if specs == nil {
		return nil
	}

	rules := make([]*networkingv1ac.IngressRuleApplyConfiguration, len(specs))
	for i, spec := range specs {
		backend := networkingv1ac.IngressServiceBackend().WithName(service)
		if spec.Port != nil {
			backend.WithPort(networkingv1ac.ServiceBackendPort().WithNumber(*spec.Port))
		}

		path := networkingv1ac.HTTPIngressPath().
			WithPathType(networkingv1.PathType(spec.PathType)).
			WithBackend(networkingv1ac.IngressBackend().WithService(backend))
		if spec.Path != nil {
			path.WithPath(*spec.Path)
		}

		rule := networkingv1ac.IngressRule().WithHTTP(networkingv1ac.HTTPIngressRuleValue().WithPaths(path))
		if spec.Host != nil {
			rule.WithHost(*spec.Host)
		}

		rules[i] = rule
	}
	return rules
}
