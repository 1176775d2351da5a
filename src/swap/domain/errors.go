package domain

import "errors"

// Error taxonomy for the swap core. Everything the executor surfaces wraps one
// of these, so callers branch with errors.Is instead of string matching.
var (
	// ErrValidation covers malformed or missing swap inputs, detected before
	// any I/O: same-token swap, non-positive amount, no wallet address.
	ErrValidation = errors.New("invalid swap request")

	// ErrUnsupportedPair means the pair-support resolver said no. The user
	// must change token selection; there is no retry.
	ErrUnsupportedPair = errors.New("pair not supported")

	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRemoteQuote covers aggregator quote/build failures: transport errors,
	// timeouts, non-2xx responses, malformed bodies. Recoverable for quoting
	// (rate-calculator fallback), fatal for the build step of an execution.
	ErrRemoteQuote = errors.New("quote/build failed")

	// ErrWalletRejected means the user declined a signature or approval.
	// Kept distinct from transport errors so callers do not phrase a
	// deliberate user action as a network problem.
	ErrWalletRejected = errors.New("user rejected")

	ErrApprovalFailed = errors.New("approval failed")
	ErrSwapReverted   = errors.New("transaction reverted")

	// ErrExecutionInFlight rejects a second Execute while one is running; the
	// tracker holds a single current-transaction slot.
	ErrExecutionInFlight = errors.New("swap already in progress")
)
