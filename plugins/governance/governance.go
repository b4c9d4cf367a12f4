package governance

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/account"
	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
	"github.com/snsbt/governance/pkg/restapi"
)

var (
	// ErrInvocationRejected is returned if the governance manager rejected an invocation.
	ErrInvocationRejected = echo.NewHTTPError(http.StatusBadRequest, "invocation rejected")
)

// invocationError maps errors of the governance manager to HTTP errors.
func invocationError(err error) error {
	if governance.IsRejection(err) {
		return errors.WithMessage(ErrInvocationRejected, err.Error())
	}
	return err
}

func newEntryResponse(key string, value *ledger.Value) *entryResponse {
	resp := &entryResponse{Key: key, Type: "delete"}
	if value == nil {
		return resp
	}

	resp.Type = value.Type.String()
	switch value.Type {
	case ledger.ValueTypeInteger:
		resp.Value = value.Integer
	default:
		resp.Value = value.String
	}
	return resp
}

func newTransactionResponse(tx *governance.Transaction, dryRun bool) *transactionResponse {
	writes := make([]*entryResponse, 0, len(tx.Writes))
	for _, write := range tx.Writes {
		writes = append(writes, newEntryResponse(write.Key, write.Value))
	}

	transfers := make([]*transferResponse, 0, len(tx.Transfers))
	for _, transfer := range tx.Transfers {
		transfers = append(transfers, &transferResponse{
			Recipient: transfer.Recipient,
			AssetID:   transfer.AssetID,
			Amount:    transfer.Amount,
		})
	}

	return &transactionResponse{
		Function:  tx.Function,
		Caller:    tx.Caller,
		Timestamp: tx.Timestamp,
		DryRun:    dryRun,
		Writes:    writes,
		Transfers: transfers,
	}
}

func parseArgument(index int, arg *argumentRequest) (*ledger.Value, error) {
	if arg == nil {
		return nil, errors.WithMessagef(restapi.ErrInvalidParameter, "argument %d is missing", index)
	}

	valueType, err := ledger.ValueTypeFromString(arg.Type)
	if err != nil {
		return nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid type of argument %d: %s", index, err)
	}

	switch valueType {
	case ledger.ValueTypeInteger:
		var value int64
		if err := json.Unmarshal(arg.Value, &value); err != nil {
			return nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid integer argument %d: %s", index, err)
		}
		return ledger.NewIntegerValue(value), nil

	default:
		var value string
		if err := json.Unmarshal(arg.Value, &value); err != nil {
			return nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid string argument %d: %s", index, err)
		}
		return ledger.NewStringValue(value), nil
	}
}

func parseInvocationRequest(c echo.Context) (*governance.Invocation, *governance.Call, error) {

	request := &invocationRequest{}
	if err := c.Bind(request); err != nil {
		return nil, nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	if _, err := account.ParseAddress(request.Caller); err != nil {
		return nil, nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid caller: %s, error: %s", request.Caller, err)
	}

	payments := make([]*governance.Payment, 0, len(request.Payments))
	for _, payment := range request.Payments {
		if payment == nil {
			return nil, nil, errors.WithMessage(restapi.ErrInvalidParameter, "invalid payment")
		}
		if _, err := account.ParseAssetID(payment.AssetID); err != nil {
			return nil, nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid payment asset: %s, error: %s", payment.AssetID, err)
		}
		payments = append(payments, &governance.Payment{AssetID: payment.AssetID, Amount: payment.Amount})
	}

	args := make([]*ledger.Value, 0, len(request.Args))
	for i, arg := range request.Args {
		value, err := parseArgument(i, arg)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, value)
	}

	return &governance.Invocation{
			Caller:    request.Caller,
			Payments:  payments,
			Timestamp: request.Timestamp,
		}, &governance.Call{
			Function: request.Function,
			Args:     args,
		}, nil
}

func invoke(c echo.Context) (*transactionResponse, error) {

	dryRun, err := restapi.ParseBoolQueryParam(c, restapi.QueryParameterDryRun)
	if err != nil {
		return nil, err
	}

	inv, call, err := parseInvocationRequest(c)
	if err != nil {
		return nil, err
	}

	var tx *governance.Transaction
	if dryRun {
		tx, err = deps.GovernanceManager.DryRun(inv, call)
	} else {
		tx, err = deps.GovernanceManager.Invoke(inv, call)
	}
	if err != nil {
		return nil, invocationError(err)
	}

	return newTransactionResponse(tx, dryRun), nil
}

func getEntries(_ echo.Context) (*entriesResponse, error) {

	entries, err := deps.GovernanceManager.Entries()
	if err != nil {
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading ledger entries failed, error: %s", err)
	}

	resp := &entriesResponse{Entries: make([]*entryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, newEntryResponse(entry.Key, entry.Value))
	}
	return resp, nil
}

func getEntry(c echo.Context) (*entryResponse, error) {

	key, err := restapi.ParseKeyParam(c)
	if err != nil {
		return nil, err
	}

	// keys are passed path escaped, but the router may already have unescaped them
	if unescapedKey, err := url.PathUnescape(key); err == nil {
		key = unescapedKey
	}

	value, err := deps.GovernanceManager.Ledger().Value(key)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return nil, errors.WithMessagef(restapi.ErrNotFound, "entry not found: %s", key)
		}
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading entry %s failed, error: %s", key, err)
	}

	return newEntryResponse(key, value), nil
}

func getDeposit(c echo.Context) (*depositResponse, error) {

	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	amount, exists, err := deps.GovernanceManager.DepositOf(address.String())
	if err != nil {
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading deposit failed, error: %s", err)
	}
	if !exists {
		return nil, errors.WithMessagef(restapi.ErrNotFound, "no deposit of %s", address)
	}

	releaseTime, _, err := deps.GovernanceManager.ReleaseTimeOf(address.String())
	if err != nil {
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading release time failed, error: %s", err)
	}

	return &depositResponse{
		Address:     address.String(),
		Amount:      amount,
		ReleaseTime: releaseTime,
	}, nil
}

func proposal(proposalID int64) (*registry.Proposal, error) {
	p, err := deps.GovernanceManager.Proposal(proposalID)
	if err != nil {
		if errors.Is(err, registry.ErrMalformedProposalRecord) {
			return nil, errors.WithMessagef(restapi.ErrNotFound, "proposal %d not found: %s", proposalID, err)
		}
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading proposal %d failed, error: %s", proposalID, err)
	}
	return p, nil
}

func getProposalTallies(c echo.Context) (*talliesResponse, error) {

	proposalID, err := restapi.ParseProposalIDParam(c)
	if err != nil {
		return nil, err
	}

	p, err := proposal(proposalID)
	if err != nil {
		return nil, err
	}

	tallies, err := deps.GovernanceManager.ProposalTallies(proposalID)
	if err != nil {
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading tallies of proposal %d failed, error: %s", proposalID, err)
	}

	return &talliesResponse{
		ProposalID: proposalID,
		Status:     p.Status(deps.GovernanceManager.Now()),
		Choices:    p.Choices,
		Tallies:    tallies,
	}, nil
}

func getProposalVote(c echo.Context) (*voteResponse, error) {

	proposalID, err := restapi.ParseProposalIDParam(c)
	if err != nil {
		return nil, err
	}

	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	vote, err := deps.GovernanceManager.VoteOf(proposalID, address.String())
	if err != nil {
		return nil, errors.WithMessagef(echo.ErrInternalServerError, "reading vote failed, error: %s", err)
	}
	if vote == nil {
		return nil, errors.WithMessagef(restapi.ErrNotFound, "no vote of %s on proposal %d", address, proposalID)
	}

	return &voteResponse{
		ProposalID: proposalID,
		Address:    address.String(),
		Option:     vote.Option,
		Votes:      vote.Votes,
	}, nil
}

func putRegistryData(c echo.Context) error {

	request := &registryDataRequest{}
	if err := c.Bind(request); err != nil {
		return errors.WithMessagef(restapi.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	if len(request.Entries) == 0 {
		return errors.WithMessage(restapi.ErrInvalidParameter, "no entries given")
	}

	entries := make([]*ledger.Entry, 0, len(request.Entries))
	for _, entry := range request.Entries {
		if entry == nil || entry.Key == "" {
			return errors.WithMessage(restapi.ErrInvalidParameter, "entry without key")
		}
		entries = append(entries, ledger.NewStringEntry(entry.Key, entry.Value))
	}

	if err := deps.RegistryLedger.SetEntries(entries...); err != nil {
		return errors.WithMessagef(echo.ErrInternalServerError, "writing registry entries failed, error: %s", err)
	}
	return nil
}

func putReleaseTime(c echo.Context) error {

	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return err
	}

	request := &releaseTimeRequest{}
	if err := c.Bind(request); err != nil {
		return errors.WithMessagef(restapi.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	if request.ReleaseTime < 0 {
		return errors.WithMessagef(restapi.ErrInvalidParameter, "invalid release time: %d", request.ReleaseTime)
	}

	if err := deps.GovernanceManager.SeedReleaseTime(address.String(), request.ReleaseTime); err != nil {
		return errors.WithMessagef(echo.ErrInternalServerError, "seeding release time failed, error: %s", err)
	}
	return nil
}

func verify(c echo.Context) (*verifyResponse, error) {

	request := &verifyRequest{}
	if err := c.Bind(request); err != nil {
		return nil, errors.WithMessagef(restapi.ErrInvalidParameter, "invalid request, error: %s", err)
	}

	if err := deps.GovernanceManager.Verify(&governance.OutgoingTransaction{
		Sender:          request.Sender,
		ProofPublicKeys: request.ProofPublicKeys,
	}); err != nil {
		return &verifyResponse{Allowed: false, Reason: err.Error()}, nil
	}

	return &verifyResponse{Allowed: true}, nil
}
