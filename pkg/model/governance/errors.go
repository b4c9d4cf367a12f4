package governance

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/registry"
)

var (
	ErrAccessDenied          = errors.New("Access denied")
	ErrPaymentCountInvalid   = errors.New("Only one sNSBT payment is allowed")
	ErrWrongAsset            = errors.New("Only sNSBT allowed")
	ErrPaymentsProhibited    = errors.New("Payments are prohibited")
	ErrInvalidAmount         = errors.New("Amount must be positive")
	ErrKeyNotFound           = errors.New("is not exist")
	ErrVotingCanceled        = errors.New("Voting is canceled by team")
	ErrVotingNotStarted      = errors.New("Voting not started yet")
	ErrVotingFinished        = errors.New("Voting already finished")
	ErrTooFewChoices         = errors.New("Too few choices to vote")
	ErrUnknownChoice         = errors.New("Unknown choice!")
	ErrActiveVoteLock        = errors.New("Withdrawal is locked")
	ErrUnknownFunction       = errors.New("unknown function")
	ErrInvalidArguments      = errors.New("invalid arguments")
	ErrTransactionNotAllowed = errors.New("Transaction is not allowed by account-script")
)

const rejectionReasonInternal = "internal"

// errors whose message carries detail around the sentinel text
func errKeyNotFound(key string) error {
	return &detailedError{kind: ErrKeyNotFound, message: "Key '" + key + "' is not exist"}
}

func errUnknownChoice(abstainOption int64) error {
	return &detailedError{kind: ErrUnknownChoice, message: "Unknown choice! Must be 0.." + strconv.FormatInt(abstainOption, 10)}
}

func errActiveVoteLock(releaseTime int64) error {
	return &detailedError{kind: ErrActiveVoteLock, message: "Withdrawal is locked until " + strconv.FormatInt(releaseTime, 10)}
}

// detailedError renders its own message while matching kind with errors.Is.
type detailedError struct {
	kind    error
	message string
}

func (e *detailedError) Error() string {
	return e.message
}

func (e *detailedError) Is(target error) bool {
	return target == e.kind
}

// IsRejection tells whether err is a validation failure of an invocation,
// as opposed to a storage or internal error.
func IsRejection(err error) bool {
	return RejectionReason(err) != rejectionReasonInternal
}

// RejectionReason returns a short label for the kind of err, used for metrics.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrPaymentCountInvalid):
		return "payment_count_invalid"
	case errors.Is(err, ErrWrongAsset):
		return "wrong_asset"
	case errors.Is(err, ErrPaymentsProhibited):
		return "payments_prohibited"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, ErrVotingCanceled):
		return "voting_canceled"
	case errors.Is(err, ErrVotingNotStarted):
		return "voting_not_started"
	case errors.Is(err, ErrVotingFinished):
		return "voting_finished"
	case errors.Is(err, ErrTooFewChoices):
		return "too_few_choices"
	case errors.Is(err, ErrUnknownChoice):
		return "unknown_choice"
	case errors.Is(err, ErrActiveVoteLock):
		return "active_vote_lock"
	case errors.Is(err, ErrUnknownFunction):
		return "unknown_function"
	case errors.Is(err, ErrInvalidArguments):
		return "invalid_arguments"
	case errors.Is(err, ErrTransactionNotAllowed):
		return "transaction_not_allowed"
	case errors.Is(err, registry.ErrMalformedProposalRecord):
		return "malformed_proposal_record"
	default:
		return rejectionReasonInternal
	}
}
