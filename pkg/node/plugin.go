package node

import (
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/logger"
)

// PluginParams defines the parameters configuration of a plugin.
type PluginParams struct {
	// The parameters of the plugin under for the defined configuration.
	Params map[string]*flag.FlagSet
	// The configuration values to mask.
	Masked []string
}

// Pluggable is something which extends the Node's capabilities.
type Pluggable struct {
	// A reference to the Node instance.
	Node *Node
	// The name of the plugin.
	Name string
	// The config parameters for this plugin.
	Params *PluginParams
	// The function to call to initialize the plugin dependencies.
	DepsFunc interface{}
	// Provide gets called in the provide stage of node initialization.
	Provide ProvideFunc
	// Configure gets called in the configure stage of node initialization.
	Configure Callback
	// Run gets called in the run stage of node initialization.
	Run Callback

	log *logger.Logger
}

func (p *Pluggable) Daemon() daemon.Daemon {
	return p.Node.Daemon()
}

// Logger returns the logger of the plugin. It is available once the global logger was initialized.
func (p *Pluggable) Logger() *logger.Logger {
	if p.log == nil {
		p.log = logger.NewLogger(p.Name)
	}
	return p.log
}

func (p *Pluggable) LogDebugf(template string, args ...interface{}) {
	p.Logger().Debugf(template, args...)
}

func (p *Pluggable) LogInfo(args ...interface{}) {
	p.Logger().Info(args...)
}

func (p *Pluggable) LogInfof(template string, args ...interface{}) {
	p.Logger().Infof(template, args...)
}

func (p *Pluggable) LogWarn(args ...interface{}) {
	p.Logger().Warn(args...)
}

func (p *Pluggable) LogWarnf(template string, args ...interface{}) {
	p.Logger().Warnf(template, args...)
}

func (p *Pluggable) LogErrorf(template string, args ...interface{}) {
	p.Logger().Errorf(template, args...)
}

func (p *Pluggable) LogPanic(args ...interface{}) {
	p.Logger().Panic(args...)
}

func (p *Pluggable) LogPanicf(template string, args ...interface{}) {
	p.Logger().Panicf(template, args...)
}

// InitPlugin is the module initializing configuration of the node.
// A Node can only have one of such modules.
type InitPlugin struct {
	Pluggable
	// Init gets called in the initialization stage of the node.
	Init InitFunc
	// The configs this InitPlugin brings to the node.
	Configs map[string]*configuration.Configuration
}

// CorePlugin is a plugin essential for node operation.
// It can not be disabled.
type CorePlugin struct {
	Pluggable
}

type PluginStatus int

const (
	StatusDisabled PluginStatus = iota
	StatusEnabled
)

// Plugin is an optional plugin which can be enabled or disabled by config.
type Plugin struct {
	Pluggable
	// The status of the plugin.
	Status PluginStatus
}

// Identifier returns the name used to enable or disable the plugin.
func (p *Plugin) Identifier() string {
	return strings.ToLower(strings.Replace(p.Name, " ", "", -1))
}
