package transform

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/intstr"
	appsv1ac "k8s.io/client-go/applyconfigurations/apps/v1"
	corev1ac "k8s.io/client-go/applyconfigurations/core/v1"
	metav1ac "k8s.io/client-go/applyconfigurations/meta/v1"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Deployment builds the Deployment owned by the nimble. Labels serve as object
// labels, selector and pod labels at once.
func Deployment(nimble *v1.Nimble, ownership Ownership) *appsv1ac.DeploymentApplyConfiguration {
	spec := nimble.Spec.Deployment

	return appsv1ac.Deployment(nimble.Name, nimble.Namespace).
		WithLabels(spec.Labels).
		WithAnnotations(spec.Annotations).
		WithOwnerReferences(ownership.References()...).
		WithSpec(
			appsv1ac.DeploymentSpec().
				WithReplicas(ptr.Deref(spec.Replicas, v1.DefaultReplicas)).
				WithSelector(metav1ac.LabelSelector().WithMatchLabels(spec.Labels)).
				WithTemplate(
					corev1ac.PodTemplateSpec().
						WithLabels(spec.Labels).
						WithAnnotations(spec.Annotations).
						WithSpec(corev1ac.PodSpec().WithContainers(Containers(spec.Containers)...)),
				),
		)
}

// Containers maps every spec to a container, preserving order.
func Containers(specs []v1.ContainerSpec) []*corev1ac.ContainerApplyConfiguration {
	containers := make([]*corev1ac.ContainerApplyConfiguration, len(specs))
	for i, spec := range specs {
		container := corev1ac.Container().
			WithName(spec.Name).
			WithImage(spec.Image).
			WithCommand(spec.Command...).
			WithEnv(Envs(spec.Env)...).
			WithEnvFrom(EnvFrom(spec.EnvFrom)...)

		requests, limits := Resources(spec.Requests), Resources(spec.Limits)
		if requests != nil || limits != nil {
			resources := corev1ac.ResourceRequirements()
			if requests != nil {
				resources.WithRequests(requests)
			}
			if limits != nil {
				resources.WithLimits(limits)
			}
			container.WithResources(resources)
		}

		if probe := Probe(spec.LivenessProbe); probe != nil {
			container.WithLivenessProbe(probe)
		}
		if probe := Probe(spec.ReadinessProbe); probe != nil {
			container.WithReadinessProbe(probe)
		}
		if probe := Probe(spec.StartupProbe); probe != nil {
			container.WithStartupProbe(probe)
		}

		containers[i] = container
	}
	return containers
}

// Resources returns exactly the quantities that are set, or nil when none are.
// A quantity that does not parse counts as unset and is logged as a warning.
func Resources(spec *v1.ResourceSpec) corev1.ResourceList {
	if spec == nil {
		return nil
	}

	list := corev1.ResourceList{}
	for name, value := range map[corev1.ResourceName]*string{
		corev1.ResourceCPU:    spec.CPU,
		corev1.ResourceMemory: spec.Memory,
	} {
		if value == nil {
			continue
		}
		quantity, err := resource.ParseQuantity(*value)
		if err != nil {
			klog.Warningf("ignoring %s quantity %q: %v", name, *value, err)
			continue
		}
		list[name] = quantity
	}

	if len(list) == 0 {
		return nil
	}
	return list
}

// Probe returns nil unless exactly one handler is set. The numeric settings are
// dropped along with the rest of the probe in that case.
func Probe(spec *v1.ProbeSpec) *corev1ac.ProbeApplyConfiguration {
	if spec == nil {
		return nil
	}

	probe := corev1ac.Probe()
	if spec.InitialDelaySeconds != nil {
		probe.WithInitialDelaySeconds(*spec.InitialDelaySeconds)
	}
	if spec.PeriodSeconds != nil {
		probe.WithPeriodSeconds(*spec.PeriodSeconds)
	}
	if spec.SuccessThreshold != nil {
		probe.WithSuccessThreshold(*spec.SuccessThreshold)
	}

	switch exec, httpGet, tcpSocket := spec.Exec != nil, spec.HTTPGet != nil, spec.TCPSocket != nil; {
	case exec && !httpGet && !tcpSocket:
		return probe.WithExec(corev1ac.ExecAction().WithCommand(spec.Exec...))
	case !exec && httpGet && !tcpSocket:
		return probe.WithHTTPGet(
			corev1ac.HTTPGetAction().
				WithPath(spec.HTTPGet.Path).
				WithPort(intstr.FromInt32(spec.HTTPGet.Port)),
		)
	case !exec && !httpGet && tcpSocket:
		return probe.WithTCPSocket(corev1ac.TCPSocketAction().WithPort(intstr.FromInt32(spec.TCPSocket.Port)))
	default:
		return nil
	}
}

func Envs(specs []v1.EnvSpec) []*corev1ac.EnvVarApplyConfiguration {
	if specs == nil {
		return nil
	}
	envs := make([]*corev1ac.EnvVarApplyConfiguration, len(specs))
	for i, spec := range specs {
		env := corev1ac.EnvVar().WithName(spec.Name)
		if spec.Value != nil {
			env.WithValue(*spec.Value)
		}
		envs[i] = env
	}
	return envs
}

// EnvFrom expands every spec into one source per reference. When both are set the
// config map source comes first.
func EnvFrom(specs []v1.EnvFromSpec) []*corev1ac.EnvFromSourceApplyConfiguration {
	if specs == nil {
		return nil
	}
	sources := make([]*corev1ac.EnvFromSourceApplyConfiguration, 0, len(specs))
	for _, spec := range specs {
		if spec.ConfigMapRef != nil {
			sources = append(sources, corev1ac.EnvFromSource().WithConfigMapRef(corev1ac.ConfigMapEnvSource().WithName(*spec.ConfigMapRef)))
		}
		if spec.SecretRef != nil {
			sources = append(sources, corev1ac.EnvFromSource().WithSecretRef(corev1ac.SecretEnvSource().WithName(*spec.SecretRef)))
		}
	}
	return sources
}
