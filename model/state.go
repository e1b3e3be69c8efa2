package model

// LoadState represents the loading state of a node's children or details
type LoadState string

const (
	// LoadStateUnknown means the data is not loadable at all
	LoadStateUnknown LoadState = "Unknown"

	// LoadStateIdle means no load has been started yet
	LoadStateIdle LoadState = "Idle"

	// LoadStateLoading means a load is in progress
	LoadStateLoading LoadState = "Loading"

	// LoadStateLoaded means the last load finished successfully
	LoadStateLoaded LoadState = "Loaded"

	// LoadStateFailed means the last load failed with an error
	LoadStateFailed LoadState = "Failed"
)

// String returns the string representation of LoadState
func (ls LoadState) String() string {
	return string(ls)
}

// IsLoading returns true if a load is currently in progress
func (ls LoadState) IsLoading() bool {
	return ls == LoadStateLoading
}

// CanStartLoad returns true if a new load may be started from this state.
// At most one load per node is in flight: Loading blocks all entry points.
func (ls LoadState) CanStartLoad() bool {
	return ls == LoadStateIdle || ls == LoadStateLoaded || ls == LoadStateFailed
}

// LoadPolicy controls how children of a node may be loaded
type LoadPolicy int

const (
	// PolicyDoNotLoad forbids loading entirely
	PolicyDoNotLoad LoadPolicy = 0

	// PolicyManual allows loads triggered explicitly through the model API
	PolicyManual LoadPolicy = 1 << 0

	// PolicyAuto allows loads triggered by views via CanFetchMore/FetchMore
	PolicyAuto LoadPolicy = 1 << 1

	// PolicyCombined allows both manual and automatic loads
	PolicyCombined LoadPolicy = PolicyManual | PolicyAuto
)

// Allows returns true if the policy permits loads of the given trigger kind
func (p LoadPolicy) Allows(trigger LoadPolicy) bool {
	return p&trigger != 0
}

// String returns the string representation of LoadPolicy
func (p LoadPolicy) String() string {
	switch p {
	case PolicyDoNotLoad:
		return "DoNotLoad"
	case PolicyManual:
		return "Manual"
	case PolicyAuto:
		return "Auto"
	case PolicyCombined:
		return "Combined"
	default:
		return "Invalid"
	}
}
