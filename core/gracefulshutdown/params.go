package gracefulshutdown

import (
	"time"

	flag "github.com/spf13/pflag"

	"github.com/snsbt/governance/pkg/node"
)

const (
	// the maximum amount of time to wait for background processes to terminate. After that the process is killed.
	CfgGracefulShutdownWaitToKillTime = "node.shutdownWaitToKillTime"
)

var params = &node.PluginParams{
	Params: map[string]*flag.FlagSet{
		"nodeConfig": func() *flag.FlagSet {
			fs := flag.NewFlagSet("", flag.ContinueOnError)
			fs.Duration(CfgGracefulShutdownWaitToKillTime, 60*time.Second, "the maximum amount of time to wait for background processes to terminate")
			return fs
		}(),
	},
}
