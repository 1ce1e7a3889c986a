// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dwp

// Phase identifies where a State sits in the DWP lifecycle.
//
// The original belt_dwp.c signals the header/payload boundary out-of-band,
// by checking whether the payload half of the length counter is still
// zero. That makes the invariant implicit and unenforceable outside the
// absorb loop. Phase makes it explicit: the header-to-payload transition,
// and the transition into Finalized, are each a single, checkable state
// change that never reverts.
type Phase int

const (
	// PhaseHeader is the state immediately after Start: StepI is
	// permitted, and the first non-empty StepE/StepD/StepA call advances
	// the state to PhasePayload.
	PhaseHeader Phase = iota

	// PhasePayload is entered on the first non-empty StepE/StepD/StepA
	// call. StepI is no longer permitted.
	PhasePayload

	// PhaseFinalized is entered by StepG or StepV. No further streaming
	// calls are permitted; the State's secret material has been
	// zeroized.
	PhaseFinalized
)

// String renders the Phase for diagnostics and assertion messages.
func (p Phase) String() string {
	switch p {
	case PhaseHeader:
		return "header"
	case PhasePayload:
		return "payload"
	case PhaseFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
