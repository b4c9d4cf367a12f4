package governance

import (
	flag "github.com/spf13/pflag"

	"github.com/snsbt/governance/pkg/node"
)

const (
	// the address of the governance account holding the custody
	CfgGovernanceAddress = "governance.address"
	// the public key of the governance account
	CfgGovernancePublicKey = "governance.publicKey"
	// the asset id of the staking token accepted by deposits
	CfgGovernanceStakingAssetID = "governance.stakingAssetID"
	// the public keys allowed to co-sign outgoing transactions of the governance account
	CfgGovernanceAdminPublicKeys = "governance.adminPublicKeys"
)

var params = &node.PluginParams{
	Params: map[string]*flag.FlagSet{
		"nodeConfig": func() *flag.FlagSet {
			fs := flag.NewFlagSet("", flag.ContinueOnError)
			fs.String(CfgGovernanceAddress, "", "the address of the governance account holding the custody")
			fs.String(CfgGovernancePublicKey, "", "the public key of the governance account")
			fs.String(CfgGovernanceStakingAssetID, "", "the asset id of the staking token accepted by deposits")
			fs.StringSlice(CfgGovernanceAdminPublicKeys, []string{}, "the public keys allowed to co-sign outgoing transactions of the governance account")
			return fs
		}(),
	},
}
