package carpe

// ReasonKind identifies why the inference capability is unavailable.
type ReasonKind string

// Reasons reported by inference providers. ReasonOther carries the provider's
// raw reason so unrecognized states are never dropped.
const (
	ReasonNotEnabled        ReasonKind = "not_enabled"
	ReasonModelNotReady     ReasonKind = "model_not_ready"
	ReasonDeviceNotEligible ReasonKind = "device_not_eligible"
	ReasonOther             ReasonKind = "other"
)

// UnavailableReason describes an unavailable capability.
type UnavailableReason struct {
	Kind ReasonKind `json:"kind"`

	// Raw is the provider's own description. Always set for ReasonOther,
	// optionally set for the known kinds.
	Raw string `json:"raw,omitempty"`
}

// Message returns the default human-readable text for the reason.
// Presentation is a caller concern; nothing in the pipeline depends on it.
func (r UnavailableReason) Message() string {
	switch r.Kind {
	case ReasonNotEnabled:
		return "AI features not enabled"
	case ReasonModelNotReady:
		return "AI model not ready. Please try again later."
	case ReasonDeviceNotEligible:
		return "This device doesn't support AI features"
	default:
		if r.Raw != "" {
			return "AI model unavailable (" + r.Raw + ")"
		}
		return "AI model unavailable"
	}
}

// CapabilityState is the availability of the inference collaborator at the
// moment it was queried. It must not be cached across pipeline calls.
type CapabilityState struct {
	Available bool              `json:"available"`
	Reason    UnavailableReason `json:"reason"`
}

// Available returns the state of a capability ready to serve requests.
func Available() CapabilityState {
	return CapabilityState{Available: true}
}

// Unavailable returns an unavailable state for one of the known reasons.
func Unavailable(kind ReasonKind) CapabilityState {
	return CapabilityState{Reason: UnavailableReason{Kind: kind}}
}

// UnavailableOther returns an unavailable state for a reason the module does
// not recognize, keeping the provider's raw text.
func UnavailableOther(raw string) CapabilityState {
	return CapabilityState{Reason: UnavailableReason{Kind: ReasonOther, Raw: raw}}
}

// String describes the state, e.g. for CLI output.
func (s CapabilityState) String() string {
	if s.Available {
		return "available"
	}
	return "unavailable: " + s.Reason.Message()
}
