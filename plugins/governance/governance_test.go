package governance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/governance/test"
	"github.com/snsbt/governance/pkg/model/registry"
	"github.com/snsbt/governance/pkg/restapi"
)

const basePath = "/api/plugins/governance"

func newTestServer(t *testing.T) (*test.GovernanceTestEnv, *echo.Echo) {
	env := test.NewGovernanceTestEnv(t)

	deps = dependencies{
		GovernanceManager: env.GovernanceManager(),
		RegistryLedger:    env.RegistryLedger(),
	}

	e := echo.New()
	e.HTTPErrorHandler = restapi.ErrorHandler()
	setupRoutes(e.Group(basePath), func(next echo.HandlerFunc) echo.HandlerFunc {
		return next
	})

	return env, e
}

func serve(t *testing.T, e *echo.Echo, method string, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, basePath+path, &reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func depositRequest(env *test.GovernanceTestEnv, caller *test.Account, amount int64) *invocationRequest {
	return &invocationRequest{
		Caller:   caller.Address,
		Function: governance.FunctionDeposit,
		Payments: []*paymentRequest{{AssetID: env.StakingAssetID, Amount: amount}},
	}
}

func castVoteRequest(caller *test.Account, proposalID int64, option int64) *invocationRequest {
	return &invocationRequest{
		Caller:   caller.Address,
		Function: governance.FunctionCastVote,
		Args: []*argumentRequest{
			{Type: "integer", Value: json.RawMessage(fmt.Sprint(proposalID))},
			{Type: "integer", Value: json.RawMessage(fmt.Sprint(option))},
		},
	}
}

func TestInvokeDeposit(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	rec := serve(t, e, http.MethodPost, RouteInvoke, depositRequest(env, env.Account1, 500))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := &transactionResponse{}
	decode(t, rec, resp)
	require.Equal(t, governance.FunctionDeposit, resp.Function)
	require.Equal(t, env.Account1.Address, resp.Caller)
	require.Equal(t, env.Now(), resp.Timestamp)
	require.False(t, resp.DryRun)
	require.Len(t, resp.Writes, 1)
	require.Equal(t, governance.DepositKey(env.Account1.Address), resp.Writes[0].Key)
	require.Equal(t, "integer", resp.Writes[0].Type)
	require.EqualValues(t, 500, resp.Writes[0].Value)
	require.Empty(t, resp.Transfers)

	env.AssertDeposit(env.Account1, 500)

	rec = serve(t, e, http.MethodGet, "/deposits/"+env.Account1.Address, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	deposit := &depositResponse{}
	decode(t, rec, deposit)
	require.Equal(t, env.Account1.Address, deposit.Address)
	require.Equal(t, int64(500), deposit.Amount)
	require.Zero(t, deposit.ReleaseTime)

	rec = serve(t, e, http.MethodGet, "/deposits/"+env.Account2.Address, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, e, http.MethodGet, "/deposits/notAnAddress", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvokeDryRun(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	snapshot := env.LedgerSnapshot()

	rec := serve(t, e, http.MethodPost, RouteInvoke+"?dryRun=true", depositRequest(env, env.Account1, 500))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := &transactionResponse{}
	decode(t, rec, resp)
	require.True(t, resp.DryRun)
	require.Len(t, resp.Writes, 1)

	env.AssertLedgerUnchanged(snapshot)

	rec = serve(t, e, http.MethodPost, RouteInvoke+"?dryRun=maybe", depositRequest(env, env.Account1, 500))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvokeRejections(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	// invalid caller address
	request := depositRequest(env, env.Account1, 500)
	request.Caller = "Account1"
	rec := serve(t, e, http.MethodPost, RouteInvoke, request)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid payment asset
	request = depositRequest(env, env.Account1, 500)
	request.Payments[0].AssetID = "WAVES"
	rec = serve(t, e, http.MethodPost, RouteInvoke, request)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// wrong asset is rejected by the governance account
	request = depositRequest(env, env.Account1, 500)
	request.Payments[0].AssetID = env.OtherAssetID
	rec = serve(t, e, http.MethodPost, RouteInvoke, request)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), governance.ErrWrongAsset.Error())

	// invalid argument type
	request = castVoteRequest(env.Account1, 1, 0)
	request.Args[0].Type = "boolean"
	rec = serve(t, e, http.MethodPost, RouteInvoke, request)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, e, http.MethodPost, RouteInvoke, &invocationRequest{Caller: env.Account1.Address, Function: "unknown"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env.AssertNoDeposit(env.Account1)
}

func TestInvokeVoteAndWithdraw(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	proposal := env.StoreOpenProposal(1, "yes", "no")

	rec := serve(t, e, http.MethodPost, RouteInvoke, depositRequest(env, env.Account1, 300))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, e, http.MethodPost, RouteInvoke, castVoteRequest(env.Account1, 1, 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, e, http.MethodGet, "/proposals/1/tallies", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tallies := &talliesResponse{}
	decode(t, rec, tallies)
	require.Equal(t, int64(1), tallies.ProposalID)
	require.Equal(t, "holding", tallies.Status)
	require.Equal(t, []string{"yes", "no"}, tallies.Choices)
	require.Equal(t, []int64{0, 300, 0}, tallies.Tallies)

	rec = serve(t, e, http.MethodGet, "/proposals/1/votes/"+env.Account1.Address, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	vote := &voteResponse{}
	decode(t, rec, vote)
	require.Equal(t, int64(1), vote.Option)
	require.Equal(t, int64(300), vote.Votes)

	rec = serve(t, e, http.MethodGet, "/proposals/1/votes/"+env.Account2.Address, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, e, http.MethodGet, "/proposals/2/tallies", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	withdraw := &invocationRequest{Caller: env.Account1.Address, Function: governance.FunctionWithdraw}

	rec = serve(t, e, http.MethodPost, RouteInvoke, withdraw)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), fmt.Sprintf("Withdrawal is locked until %d", proposal.End))

	env.SetNow(proposal.End)
	rec = serve(t, e, http.MethodPost, RouteInvoke, withdraw)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := &transactionResponse{}
	decode(t, rec, resp)
	require.Len(t, resp.Writes, 1)
	require.Equal(t, "delete", resp.Writes[0].Type)
	require.Nil(t, resp.Writes[0].Value)
	require.Len(t, resp.Transfers, 1)
	require.Equal(t, env.Account1.Address, resp.Transfers[0].Recipient)
	require.Equal(t, env.StakingAssetID, resp.Transfers[0].AssetID)
	require.Equal(t, int64(300), resp.Transfers[0].Amount)
}

func TestGetData(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	env.Deposit(env.Account1, 100)
	env.Deposit(env.Account2, 200)

	rec := serve(t, e, http.MethodGet, RouteData, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entries := &entriesResponse{}
	decode(t, rec, entries)
	require.Len(t, entries.Entries, 2)

	key := governance.DepositKey(env.Account2.Address)
	rec = serve(t, e, http.MethodGet, "/data/"+url.PathEscape(key), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entry := &entryResponse{}
	decode(t, rec, entry)
	require.Equal(t, key, entry.Key)
	require.Equal(t, "integer", entry.Type)
	require.EqualValues(t, 200, entry.Value)

	rec = serve(t, e, http.MethodGet, "/data/"+url.PathEscape(governance.DepositKey(env.Account3.Address)), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutRegistryData(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	proposal := &registry.Proposal{
		ID:        7,
		TxID:      "6iPF8FLp2X5jSCn74U6jrtHEPKAnvMnNFfbzzS7eUJEj",
		Type:      "IDEA",
		Author:    env.Admin.Address,
		CreatedAt: env.Now() - 1000,
		Start:     env.Now() + 1000,
		End:       env.Now() + 2000,
		Choices:   []string{"a", "b", "c"},
	}

	request := &registryDataRequest{}
	for _, entry := range proposal.Entries() {
		request.Entries = append(request.Entries, &registryEntryRequest{Key: entry.Key, Value: entry.Value.String})
	}

	rec := serve(t, e, http.MethodPut, RouteRegistryData, request)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = serve(t, e, http.MethodGet, "/proposals/7/tallies", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tallies := &talliesResponse{}
	decode(t, rec, tallies)
	require.Equal(t, "upcoming", tallies.Status)
	require.Equal(t, []int64{0, 0, 0, 0}, tallies.Tallies)

	rec = serve(t, e, http.MethodPut, RouteRegistryData, &registryDataRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutReleaseTime(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	releaseTime := env.Now() + 10

	rec := serve(t, e, http.MethodPut, "/releaseTimes/"+env.Account1.Address, &releaseTimeRequest{ReleaseTime: releaseTime})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	env.AssertReleaseTime(env.Account1, releaseTime)

	rec = serve(t, e, http.MethodPut, "/releaseTimes/"+env.Account1.Address, &releaseTimeRequest{ReleaseTime: -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify(t *testing.T) {
	env, e := newTestServer(t)
	defer env.Cleanup()

	rec := serve(t, e, http.MethodPost, RouteVerify, &verifyRequest{
		Sender:          env.Governance.Address,
		ProofPublicKeys: []string{env.Governance.PublicKey, env.Admin.PublicKey},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := &verifyResponse{}
	decode(t, rec, resp)
	require.True(t, resp.Allowed)

	rec = serve(t, e, http.MethodPost, RouteVerify, &verifyRequest{
		Sender:          env.Governance.Address,
		ProofPublicKeys: []string{env.Governance.PublicKey},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp = &verifyResponse{}
	decode(t, rec, resp)
	require.False(t, resp.Allowed)
	require.Equal(t, governance.ErrTransactionNotAllowed.Error(), resp.Reason)
}
