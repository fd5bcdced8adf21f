package transform

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	corev1ac "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/utils/ptr"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Service builds the Service for the nimble. It returns nil when no service is requested.
func Service(nimble *v1.Nimble, ownership Ownership) *corev1ac.ServiceApplyConfiguration {
	spec := nimble.Spec.Service
	if spec == nil {
		return nil
	}

	svcSpec := corev1ac.ServiceSpec().
		WithSelector(spec.Selector).
		WithPorts(Ports(spec.Ports)...)

	if spec.Type != nil {
		svcSpec.WithType(corev1.ServiceType(*spec.Type))
	}

	return corev1ac.Service(nimble.Name, nimble.Namespace).
		WithAnnotations(spec.Annotations).
		WithOwnerReferences(ownership.References()...).
		WithSpec(svcSpec)
}

// Ports maps port specs in order. The target port falls back to the port itself.
func Ports(specs []v1.PortSpec) []*corev1ac.ServicePortApplyConfiguration {
	ports := make([]*corev1ac.ServicePortApplyConfiguration, len(specs))
	for i, spec := range specs {
		port := corev1ac.ServicePort().
			WithPort(spec.Port).
			WithTargetPort(intstr.FromInt32(ptr.Deref(spec.TargetPort, spec.Port)))

		if spec.Name != nil {
			port.WithName(*spec.Name)
		}
		if spec.Protocol != nil {
			port.WithProtocol(corev1.Protocol(*spec.Protocol))
		}
		if spec.NodePort != nil {
			port.WithNodePort(*spec.NodePort)
		}

		ports[i] = port
	}
	return ports
}
