package governance

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/dig"

	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/node"
	"github.com/snsbt/governance/pkg/restapi"
)

const (
	// RouteInvoke is the route to invoke an entry point of the governance account.
	// POST commits the invocation, or only evaluates it if the query parameter dryRun is set.
	RouteInvoke = "/invoke"

	// RouteData is the route to list all entries of the governance ledger.
	// GET returns all entries.
	RouteData = "/data"

	// RouteDataEntry is the route to access a single entry of the governance ledger by its path escaped key.
	// GET returns the entry.
	RouteDataEntry = "/data/:" + restapi.ParameterKey

	// RouteDeposit is the route to get the custody balance of an address.
	// GET returns the deposit and the release time.
	RouteDeposit = "/deposits/:" + restapi.ParameterAddress

	// RouteProposalTallies is the route to get the tallies of a proposal.
	// GET returns the voting status and the tally of every choice and abstain.
	RouteProposalTallies = "/proposals/:" + restapi.ParameterProposalID + "/tallies"

	// RouteProposalVote is the route to get the vote of an address on a proposal.
	// GET returns the chosen option and the vote weight.
	RouteProposalVote = "/proposals/:" + restapi.ParameterProposalID + "/votes/:" + restapi.ParameterAddress

	// RouteRegistryData is the route to write entries of the proposal registry.
	// PUT stores the given string entries.
	RouteRegistryData = "/registry/data"

	// RouteReleaseTime is the route to seed the release time of an address.
	// PUT stores the given release time.
	RouteReleaseTime = "/releaseTimes/:" + restapi.ParameterAddress

	// RouteVerify is the route to run the account script on an outgoing transaction.
	// POST returns whether the transaction is allowed.
	RouteVerify = "/verify"
)

func init() {
	Plugin = &node.Plugin{
		Status: node.StatusEnabled,
		Pluggable: node.Pluggable{
			Name:      "Governance API",
			DepsFunc:  func(cDeps dependencies) { deps = cDeps },
			Configure: configure,
		},
	}
}

var (
	Plugin *node.Plugin
	deps   dependencies
)

type dependencies struct {
	dig.In
	GovernanceManager *governance.Manager
	RegistryLedger    *ledger.Ledger `name:"registryLedger"`
	Echo              *echo.Echo
	AdminMiddleware   echo.MiddlewareFunc `name:"adminMiddleware"`
}

func configure() {
	setupRoutes(deps.Echo.Group("/api/plugins/governance"), deps.AdminMiddleware)
}

func setupRoutes(routeGroup *echo.Group, adminMiddleware echo.MiddlewareFunc) {

	routeGroup.POST(RouteInvoke, func(c echo.Context) error {
		resp, err := invoke(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteData, func(c echo.Context) error {
		resp, err := getEntries(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteDataEntry, func(c echo.Context) error {
		resp, err := getEntry(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteDeposit, func(c echo.Context) error {
		resp, err := getDeposit(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteProposalTallies, func(c echo.Context) error {
		resp, err := getProposalTallies(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteProposalVote, func(c echo.Context) error {
		resp, err := getProposalVote(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.PUT(RouteRegistryData, func(c echo.Context) error {
		if err := putRegistryData(c); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}, adminMiddleware)

	routeGroup.PUT(RouteReleaseTime, func(c echo.Context) error {
		if err := putReleaseTime(c); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}, adminMiddleware)

	routeGroup.POST(RouteVerify, func(c echo.Context) error {
		resp, err := verify(c)
		if err != nil {
			return err
		}

		return restapi.JSONResponse(c, http.StatusOK, resp)
	})
}
