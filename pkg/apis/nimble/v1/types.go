// Package v1 contains the schema of the Nimble custom resource.
//
// +kubebuilder:object:generate=false
// +groupName=ivaltryek.github.com
package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Nimble describes a workload that is converged into a Deployment and optionally a
// Service, an Ingress and a HorizontalPodAutoscaler.
//
// +kubebuilder:object:root=true
type Nimble struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec NimbleSpec `json:"spec"`
}

type NimbleSpec struct {
	Deployment DeploySpec `json:"deployment"`
	Service    *SvcSpec   `json:"service,omitempty"`
	HPA        *HPASpec   `json:"hpa,omitempty"`
	Ingress    *IngSpec   `json:"ingress,omitempty"`
}

type DeploySpec struct {
	// Containers to run in the deployment.
	// +kubebuilder:validation:MinItems=1
	Containers []ContainerSpec `json:"containers"`

	// +kubebuilder:default=1
	Replicas *int32 `json:"replicas,omitempty"`

	// Labels are applied to the deployment, its selector and its pods.
	// The selector of a Deployment is immutable, so changing labels after creation will fail.
	Labels map[string]string `json:"labels"`

	// Annotations are applied to the deployment and its pods.
	Annotations map[string]string `json:"annotations,omitempty"`
}

type ContainerSpec struct {
	Name  string `json:"name"`
	Image string `json:"image"`

	// Command overrides the entrypoint of the image.
	Command []string `json:"command,omitempty"`

	Requests *ResourceSpec `json:"requests,omitempty"`
	Limits   *ResourceSpec `json:"limits,omitempty"`

	ReadinessProbe *ProbeSpec `json:"readinessProbe,omitempty"`
	LivenessProbe  *ProbeSpec `json:"livenessProbe,omitempty"`
	StartupProbe   *ProbeSpec `json:"startupProbe,omitempty"`

	Env     []EnvSpec     `json:"env,omitempty"`
	EnvFrom []EnvFromSpec `json:"envFrom,omitempty"`
}

// ResourceSpec holds quantity strings such as "250m" or "64Mi".
type ResourceSpec struct {
	CPU    *string `json:"cpu,omitempty"`
	Memory *string `json:"memory,omitempty"`
}

// ProbeSpec expects exactly one of Exec, HTTPGet and TCPSocket. Any other
// combination produces no probe at all.
type ProbeSpec struct {
	Exec      []string   `json:"exec,omitempty"`
	HTTPGet   *HTTPGet   `json:"httpGet,omitempty"`
	TCPSocket *TCPSocket `json:"tcpSocket,omitempty"`

	// +kubebuilder:default=0
	InitialDelaySeconds *int32 `json:"initialDelaySeconds,omitempty"`
	// +kubebuilder:default=10
	PeriodSeconds *int32 `json:"periodSeconds,omitempty"`
	// +kubebuilder:default=1
	SuccessThreshold *int32 `json:"successThreshold,omitempty"`
}

type HTTPGet struct {
	Path string `json:"path"`
	Port int32  `json:"port"`
}

type TCPSocket struct {
	Port int32 `json:"port"`
}

type EnvSpec struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// EnvFromSpec may reference a config map and a secret at the same time.
type EnvFromSpec struct {
	ConfigMapRef *string `json:"configMapRef,omitempty"`
	SecretRef    *string `json:"secretRef,omitempty"`
}

type SvcSpec struct {
	Annotations map[string]string `json:"annotations,omitempty"`
	Selector    map[string]string `json:"selector,omitempty"`

	// +kubebuilder:validation:Enum=ClusterIP;NodePort;LoadBalancer;ExternalName
	Type  *string    `json:"type,omitempty"`
	Ports []PortSpec `json:"ports,omitempty"`
}

type PortSpec struct {
	Name     *string `json:"name,omitempty"`
	NodePort *int32  `json:"nodePort,omitempty"`
	Port     int32   `json:"port"`

	// +kubebuilder:default=TCP
	Protocol *string `json:"protocol,omitempty"`

	// TargetPort defaults to Port when omitted.
	TargetPort *int32 `json:"target_port,omitempty"`
}

type HPASpec struct {
	Annotations map[string]string `json:"annotations,omitempty"`

	Max int32  `json:"max"`
	Min *int32 `json:"min,omitempty"`

	ResourcePolicy *ResourceMetricSpec `json:"resourcePolicy,omitempty"`
}

type ResourceMetricSpec struct {
	// Name of the resource, for example cpu or memory.
	Name string `json:"name"`
	// Type is one of Utilization, Value or AverageValue.
	Type               string `json:"type"`
	AverageUtilization *int32 `json:"avgUtil,omitempty"`
}

type IngSpec struct {
	Annotations map[string]string `json:"annotations,omitempty"`

	// Class is the name of the IngressClass serving this ingress.
	Class *string    `json:"class,omitempty"`
	Rules []RuleSpec `json:"rules,omitempty"`
}

// RuleSpec maps to a single host rule with exactly one path.
type RuleSpec struct {
	Host *string `json:"host,omitempty"`

	// +kubebuilder:validation:Enum=Exact;Prefix;ImplementationSpecific
	PathType string  `json:"pathType"`
	Path     *string `json:"path,omitempty"`
	Port     *int32  `json:"port,omitempty"`
}
