package restapi

import (
	flag "github.com/spf13/pflag"

	"github.com/snsbt/governance/pkg/node"
)

const (
	// the bind address on which the REST API listens on
	CfgRestAPIBindAddress = "restAPI.bindAddress"
	// the username of the admin routes. admin routes are unprotected if empty
	CfgRestAPIAdminUser = "restAPI.adminUser"
	// the scrypt hash of the admin password (hex encoded)
	CfgRestAPIAdminPasswordHash = "restAPI.adminPasswordHash"
	// the salt of the admin password (hex encoded)
	CfgRestAPIAdminPasswordSalt = "restAPI.adminPasswordSalt"
	// the maximum number of characters that the body of an API call may contain
	CfgRestAPILimitsMaxBodyLength = "restAPI.limits.maxBodyLength"
	// the maximum number of requests per second and client. 0 disables the limit
	CfgRestAPILimitsRequestsPerSecond = "restAPI.limits.requestsPerSecond"
)

var params = &node.PluginParams{
	Params: map[string]*flag.FlagSet{
		"nodeConfig": func() *flag.FlagSet {
			fs := flag.NewFlagSet("", flag.ContinueOnError)
			fs.String(CfgRestAPIBindAddress, "localhost:14265", "the bind address on which the REST API listens on")
			fs.String(CfgRestAPIAdminUser, "", "the username of the admin routes. admin routes are unprotected if empty")
			fs.String(CfgRestAPIAdminPasswordHash, "", "the scrypt hash of the admin password (hex encoded)")
			fs.String(CfgRestAPIAdminPasswordSalt, "", "the salt of the admin password (hex encoded)")
			fs.String(CfgRestAPILimitsMaxBodyLength, "1M", "the maximum number of characters that the body of an API call may contain")
			fs.Int(CfgRestAPILimitsRequestsPerSecond, 0, "the maximum number of requests per second and client. 0 disables the limit")
			return fs
		}(),
	},
	Masked: []string{CfgRestAPIAdminPasswordHash, CfgRestAPIAdminPasswordSalt},
}
