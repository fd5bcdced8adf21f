package transform

import (
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	autoscalingv2ac "k8s.io/client-go/applyconfigurations/autoscaling/v2"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// HorizontalPodAutoscaler builds an autoscaler targeting the nimble's Deployment.
// It returns nil when no autoscaler is requested.
func HorizontalPodAutoscaler(nimble *v1.Nimble, ownership Ownership) *autoscalingv2ac.HorizontalPodAutoscalerApplyConfiguration {
	spec := nimble.Spec.HPA
	if spec == nil {
		return nil
	}

	hpaSpec := autoscalingv2ac.HorizontalPodAutoscalerSpec().
		WithScaleTargetRef(
			autoscalingv2ac.CrossVersionObjectReference().
				WithAPIVersion("apps/v1").
				WithKind("Deployment").
				WithName(nimble.Name),
		).
		WithMaxReplicas(spec.Max).
		WithMetrics(Metrics(spec)...)

	if spec.Min != nil {
		hpaSpec.WithMinReplicas(*spec.Min)
	}

	return autoscalingv2ac.HorizontalPodAutoscaler(nimble.Name, nimble.Namespace).
		WithAnnotations(spec.Annotations).
		WithOwnerReferences(ownership.References()...).
		WithSpec(hpaSpec)
}

// Metrics returns nil without a spec, an empty list without a resource policy, and
// a single resource metric otherwise.
func Metrics(spec *v1.HPASpec) []*autoscalingv2ac.MetricSpecApplyConfiguration {
	if spec == nil {
		return nil
	}
	if spec.ResourcePolicy == nil {
		return []*autoscalingv2ac.MetricSpecApplyConfiguration{}
	}

	policy := spec.ResourcePolicy

	target := autoscalingv2ac.MetricTarget().WithType(autoscalingv2.MetricTargetType(policy.Type))
	if policy.AverageUtilization != nil {
		target.WithAverageUtilization(*policy.AverageUtilization)
	}

	return []*autoscalingv2ac.MetricSpecApplyConfiguration{
		autoscalingv2ac.MetricSpec().
			WithType(autoscalingv2.ResourceMetricSourceType).
			WithResource(
				autoscalingv2ac.ResourceMetricSource().
					WithName(corev1.ResourceName(policy.Name)).
					WithTarget(target),
			),
	}
}
