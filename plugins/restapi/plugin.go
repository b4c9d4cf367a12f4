package restapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"golang.org/x/time/rate"

	"github.com/iotaledger/hive.go/configuration"

	"github.com/snsbt/governance/pkg/basicauth"
	"github.com/snsbt/governance/pkg/metrics"
	"github.com/snsbt/governance/pkg/node"
	"github.com/snsbt/governance/pkg/restapi"
	"github.com/snsbt/governance/pkg/shutdown"
)

const (
	nodeAPIHealthRoute = "/health"
)

func init() {
	Plugin = &node.Plugin{
		Status: node.StatusEnabled,
		Pluggable: node.Pluggable{
			Name:      "RestAPI",
			DepsFunc:  func(cDeps dependencies) { deps = cDeps },
			Params:    params,
			Provide:   provide,
			Configure: configure,
			Run:       run,
		},
	}
}

var (
	Plugin *node.Plugin
	deps   dependencies
)

type dependencies struct {
	dig.In
	NodeConfig     *configuration.Configuration `name:"nodeConfig"`
	Echo           *echo.Echo
	RestAPIMetrics *metrics.RestAPIMetrics
}

func provide(c *dig.Container) {

	if err := c.Provide(func() *metrics.RestAPIMetrics {
		return &metrics.RestAPIMetrics{}
	}); err != nil {
		Plugin.LogPanic(err)
	}

	type echoDeps struct {
		dig.In
		NodeConfig *configuration.Configuration `name:"nodeConfig"`
	}

	type echoResult struct {
		dig.Out
		Echo            *echo.Echo
		AdminMiddleware echo.MiddlewareFunc `name:"adminMiddleware"`
	}

	if err := c.Provide(func(deps echoDeps) echoResult {
		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Recover())
		e.Use(middleware.CORS())
		e.Use(middleware.Gzip())
		e.Use(middleware.BodyLimit(deps.NodeConfig.String(CfgRestAPILimitsMaxBodyLength)))

		if requestsPerSecond := deps.NodeConfig.Int(CfgRestAPILimitsRequestsPerSecond); requestsPerSecond > 0 {
			e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(requestsPerSecond))))
		}

		return echoResult{
			Echo:            e,
			AdminMiddleware: adminMiddleware(deps.NodeConfig),
		}
	}); err != nil {
		Plugin.LogPanic(err)
	}
}

// adminMiddleware protects admin routes with basic auth if an admin user is configured.
func adminMiddleware(nodeConfig *configuration.Configuration) echo.MiddlewareFunc {

	username := nodeConfig.String(CfgRestAPIAdminUser)
	if username == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	auth, err := basicauth.NewBasicAuth(username, nodeConfig.String(CfgRestAPIAdminPasswordHash), nodeConfig.String(CfgRestAPIAdminPasswordSalt))
	if err != nil {
		Plugin.LogPanicf("invalid admin credentials: %s", err)
	}

	return auth.Middleware(nil)
}

func configure() {
	deps.Echo.HTTPErrorHandler = restapi.ErrorHandler(func(err error, _ echo.Context) {
		Plugin.LogDebugf("HTTP request failed: %s", err)
		deps.RestAPIMetrics.HTTPRequestErrorCounter.Inc()
	})

	deps.Echo.GET(nodeAPIHealthRoute, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func run() {

	Plugin.LogInfo("Starting REST-API server ...")

	if err := Plugin.Daemon().BackgroundWorker("REST-API server", func(ctx context.Context) {
		Plugin.LogInfo("Starting REST-API server ... done")

		bindAddr := deps.NodeConfig.String(CfgRestAPIBindAddress)

		go func() {
			Plugin.LogInfof("You can now access the API using: http://%s", bindAddr)
			if err := deps.Echo.Start(bindAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				Plugin.LogWarnf("Stopped REST-API server due to an error (%s)", err)
			}
		}()

		<-ctx.Done()
		Plugin.LogInfo("Stopping REST-API server ...")

		shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCtxCancel()

		if err := deps.Echo.Shutdown(shutdownCtx); err != nil {
			Plugin.LogWarn(err)
		}
		Plugin.LogInfo("Stopping REST-API server ... done")
	}, shutdown.PriorityRestAPI); err != nil {
		Plugin.LogPanicf("failed to start worker: %s", err)
	}
}
