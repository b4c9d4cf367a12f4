package main

import (
	"github.com/snsbt/governance/core/app"
	"github.com/snsbt/governance/core/database"
	"github.com/snsbt/governance/core/governance"
	"github.com/snsbt/governance/core/gracefulshutdown"
	"github.com/snsbt/governance/pkg/node"
	governanceapi "github.com/snsbt/governance/plugins/governance"
	"github.com/snsbt/governance/plugins/prometheus"
	"github.com/snsbt/governance/plugins/restapi"
)

func main() {
	node.Run(
		node.WithInitPlugin(app.InitPlugin),
		node.WithCorePlugins([]*node.CorePlugin{
			gracefulshutdown.CorePlugin,
			database.CorePlugin,
			governance.CorePlugin,
		}...),
		node.WithPlugins([]*node.Plugin{
			restapi.Plugin,
			governanceapi.Plugin,
			prometheus.Plugin,
		}...),
	)
}
