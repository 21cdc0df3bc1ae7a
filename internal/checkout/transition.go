package checkout

import (
	"github.com/verilocal/admin-gateway/pkg/enums"

	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
)

// requireStep guards every wizard operation: acting from the wrong step is
// a state conflict, not a validation problem.
func requireStep(session *Session, step enums.CheckoutStep) error {
	if session.Step != step {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			"this action is not available at the "+session.Step.String()+" step")
	}
	return nil
}

// stepAfterProfile branches on profile visibility: private organizations
// skip locations entirely and go straight to payment.
func stepAfterProfile(session *Session) enums.CheckoutStep {
	if session.Profile != nil && session.Profile.IsPublicProfile {
		return enums.CheckoutStepLocations
	}
	return enums.CheckoutStepPayment
}

// stepAfterLocations branches on verification status: verified
// organizations pay verification fees first, unverified ones go straight
// to the subscription payment.
func stepAfterLocations(session *Session) enums.CheckoutStep {
	if session.Profile != nil && session.Profile.VerificationStatus == enums.VerificationStatusVerified {
		return enums.CheckoutStepLocationPayment
	}
	return enums.CheckoutStepPayment
}

// previousStep returns the immediate predecessor of the session's current
// step along the branch the session actually took. There is no way back
// from the first step or out of a completed session.
func previousStep(session *Session) (enums.CheckoutStep, bool) {
	switch session.Step {
	case enums.CheckoutStepProfile:
		return enums.CheckoutStepPackages, true
	case enums.CheckoutStepLocations:
		return enums.CheckoutStepProfile, true
	case enums.CheckoutStepLocationPayment:
		return enums.CheckoutStepLocations, true
	case enums.CheckoutStepPayment:
		if session.Profile == nil || !session.Profile.IsPublicProfile {
			return enums.CheckoutStepProfile, true
		}
		if session.Profile.VerificationStatus == enums.VerificationStatusVerified {
			return enums.CheckoutStepLocationPayment, true
		}
		return enums.CheckoutStepLocations, true
	default:
		return "", false
	}
}
