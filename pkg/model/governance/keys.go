package governance

import (
	"fmt"
)

// DepositKey is the ledger key of the custody balance of address.
func DepositKey(address string) string {
	return fmt.Sprintf("%%s%%s__deposit__%s", address)
}

// VotesByUserKey is the ledger key of the vote weight address put on proposalID.
func VotesByUserKey(proposalID int64, address string) string {
	return fmt.Sprintf("%%s%%d%%s__votesByUser__%d__%s", proposalID, address)
}

// OptionByUserKey is the ledger key of the option address voted for on proposalID.
func OptionByUserKey(proposalID int64, address string) string {
	return fmt.Sprintf("%%s%%d%%s__optionByUser__%d__%s", proposalID, address)
}

// VotesByOptionKey is the ledger key of the tally of option on proposalID.
func VotesByOptionKey(proposalID int64, option int64) string {
	return fmt.Sprintf("%%s%%d%%d__votesByOption__%d__%d", proposalID, option)
}

// ReleaseTimeKey is the ledger key of the timestamp before which address may not withdraw.
func ReleaseTimeKey(address string) string {
	return fmt.Sprintf("%%s%%s__releaseTime__%s", address)
}
