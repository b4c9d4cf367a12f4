package governance

import (
	"encoding/json"
)

// argumentRequest is a typed argument of an invocation.
type argumentRequest struct {
	// The type of the argument ("integer" or "string").
	Type string `json:"type"`
	// The value of the argument.
	Value json.RawMessage `json:"value"`
}

// paymentRequest is a payment attached to an invocation.
type paymentRequest struct {
	AssetID string `json:"assetId"`
	Amount  int64  `json:"amount"`
}

// invocationRequest defines the request of a POST invoke REST API call.
type invocationRequest struct {
	// The address of the invoking account.
	Caller string `json:"caller"`
	// The name of the invoked function.
	Function string             `json:"function"`
	Args     []*argumentRequest `json:"args"`
	Payments []*paymentRequest  `json:"payments"`
	// The block time in milliseconds. The node time is used if omitted.
	Timestamp int64 `json:"timestamp,omitempty"`
}

// entryResponse defines a ledger entry.
type entryResponse struct {
	Key   string      `json:"key"`
	Type  string      `json:"type"`
	Value interface{} `json:"value,omitempty"`
}

// entriesResponse defines the response of a GET data REST API call.
type entriesResponse struct {
	Entries []*entryResponse `json:"entries"`
}

// transferResponse defines a transfer out of custody.
type transferResponse struct {
	Recipient string `json:"recipient"`
	AssetID   string `json:"assetId"`
	Amount    int64  `json:"amount"`
}

// transactionResponse defines the response of a POST invoke REST API call.
type transactionResponse struct {
	Function  string `json:"function"`
	Caller    string `json:"caller"`
	Timestamp int64  `json:"timestamp"`
	// Whether the transaction was only evaluated and not committed.
	DryRun    bool                `json:"dryRun"`
	Writes    []*entryResponse    `json:"writes"`
	Transfers []*transferResponse `json:"transfers"`
}

// depositResponse defines the response of a GET deposits REST API call.
type depositResponse struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
	// The time in milliseconds until the deposit is locked, if any.
	ReleaseTime int64 `json:"releaseTime,omitempty"`
}

// talliesResponse defines the response of a GET proposal tallies REST API call.
type talliesResponse struct {
	ProposalID int64    `json:"proposalId"`
	Status     string   `json:"status"`
	Choices    []string `json:"choices"`
	// The tallies of the choices followed by the tally of abstain.
	Tallies []int64 `json:"tallies"`
}

// voteResponse defines the response of a GET proposal vote REST API call.
type voteResponse struct {
	ProposalID int64  `json:"proposalId"`
	Address    string `json:"address"`
	Option     int64  `json:"option"`
	Votes      int64  `json:"votes"`
}

// registryEntryRequest is a string entry of the registry ledger.
type registryEntryRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// registryDataRequest defines the request of a PUT registry data REST API call.
type registryDataRequest struct {
	Entries []*registryEntryRequest `json:"entries"`
}

// releaseTimeRequest defines the request of a PUT release time REST API call.
type releaseTimeRequest struct {
	ReleaseTime int64 `json:"releaseTime"`
}

// verifyRequest defines the request of a POST verify REST API call.
type verifyRequest struct {
	Sender          string   `json:"sender"`
	ProofPublicKeys []string `json:"proofPublicKeys"`
}

// verifyResponse defines the response of a POST verify REST API call.
type verifyResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
