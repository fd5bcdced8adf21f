package transform

import (
	metav1ac "k8s.io/client-go/applyconfigurations/meta/v1"

	v1 "github.com/ivaltryek/kube-nimble/pkg/apis/nimble/v1"
)

// Ownership decides whether derived manifests point back to their Nimble.
// Dry-run renders are detached since nothing is persisted.
type Ownership struct {
	owner *metav1ac.OwnerReferenceApplyConfiguration
}

func Detached() Ownership { return Ownership{} }

// AttachedTo makes the nimble the controller owner of every derived manifest so
// that the garbage collector removes them along with it.
func AttachedTo(nimble *v1.Nimble) Ownership {
	return Ownership{
		owner: metav1ac.OwnerReference().
			WithAPIVersion(v1.APIVersion()).
			WithKind(v1.Kind).
			WithName(nimble.Name).
			WithUID(nimble.UID).
			WithController(true).
			WithBlockOwnerDeletion(true),
	}
}

func (ownership Ownership) Attached() bool { return ownership.owner != nil }

func (ownership Ownership) References() []*metav1ac.OwnerReferenceApplyConfiguration {
	if ownership.owner == nil {
		return nil
	}
	return []*metav1ac.OwnerReferenceApplyConfiguration{ownership.owner}
}
