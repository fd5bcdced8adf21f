package v1

import "k8s.io/utils/ptr"

const (
	AnnotationManagedBy = "app.kubernetes.io/managed-by"
	ManagedBy           = "kube-nimble"

	DefaultReplicas            int32 = 1
	DefaultInitialDelaySeconds int32 = 0
	DefaultPeriodSeconds       int32 = 10
	DefaultSuccessThreshold    int32 = 1
	DefaultProtocol                  = "TCP"
)

// DefaultAnnotations returns a fresh copy of the annotations applied to objects that do not declare their own.
func DefaultAnnotations() map[string]string {
	return map[string]string{AnnotationManagedBy: ManagedBy}
}

// Default fills every unset field that has a documented default. It is idempotent.
func (nimble *Nimble) Default() {
	nimble.Spec.Default()
}

func (spec *NimbleSpec) Default() {
	spec.Deployment.Default()
	if spec.Service != nil {
		spec.Service.Default()
	}
	if spec.HPA != nil {
		spec.HPA.Default()
	}
	if spec.Ingress != nil {
		spec.Ingress.Default()
	}
}

func (spec *DeploySpec) Default() {
	if spec.Replicas == nil {
		spec.Replicas = ptr.To(DefaultReplicas)
	}
	if spec.Annotations == nil {
		spec.Annotations = DefaultAnnotations()
	}
	for i := range spec.Containers {
		spec.Containers[i].Default()
	}
}

func (spec *ContainerSpec) Default() {
	for _, probe := range []*ProbeSpec{spec.ReadinessProbe, spec.LivenessProbe, spec.StartupProbe} {
		if probe != nil {
			probe.Default()
		}
	}
}

func (spec *ProbeSpec) Default() {
	if spec.InitialDelaySeconds == nil {
		spec.InitialDelaySeconds = ptr.To(DefaultInitialDelaySeconds)
	}
	if spec.PeriodSeconds == nil {
		spec.PeriodSeconds = ptr.To(DefaultPeriodSeconds)
	}
	if spec.SuccessThreshold == nil {
		spec.SuccessThreshold = ptr.To(DefaultSuccessThreshold)
	}
}

func (spec *SvcSpec) Default() {
	if spec.Annotations == nil {
		spec.Annotations = DefaultAnnotations()
	}
	for i := range spec.Ports {
		if spec.Ports[i].Protocol == nil {
			spec.Ports[i].Protocol = ptr.To(DefaultProtocol)
		}
	}
}

func (spec *HPASpec) Default() {
	if spec.Annotations == nil {
		spec.Annotations = DefaultAnnotations()
	}
}

func (spec *IngSpec) Default() {
	if spec.Annotations == nil {
		spec.Annotations = DefaultAnnotations()
	}
}
