package toolset

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/configuration"

	"github.com/snsbt/governance/pkg/model/account"
)

type addressInfo struct {
	PublicKey string `json:"publicKey"`
	ChainID   string `json:"chainId"`
	Address   string `json:"address"`
}

func newAddressInfo(publicKey string, chainID string) (*addressInfo, error) {
	if len(chainID) != 1 {
		return nil, fmt.Errorf("'%s' must be a single character, got '%s'", FlagToolChainID, chainID)
	}

	pubKey, err := account.ParsePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("can't decode '%s': %w", FlagToolPublicKey, err)
	}

	return &addressInfo{
		PublicKey: pubKey.String(),
		ChainID:   chainID,
		Address:   pubKey.Address(chainID[0]).String(),
	}, nil
}

func deriveAddress(_ *configuration.Configuration, args []string) error {

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	publicKeyFlag := fs.String(FlagToolPublicKey, "", "a base58 encoded public key")
	chainIDFlag := fs.String(FlagToolChainID, string(account.ChainIDMainNet), "the chain id byte of the address")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolAddress)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nexample: %s --%s %s --%s %s\n",
			ToolAddress,
			FlagToolPublicKey,
			"[PUB_KEY]",
			FlagToolChainID,
			string(account.ChainIDMainNet))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*publicKeyFlag) == 0 {
		return fmt.Errorf("'%s' not specified", FlagToolPublicKey)
	}

	info, err := newAddressInfo(*publicKeyFlag, *chainIDFlag)
	if err != nil {
		return err
	}

	if *outputJSONFlag {
		return printJSON(info)
	}

	fmt.Println("Your public key: ", info.PublicKey)
	fmt.Println("Your chain id:   ", info.ChainID)
	fmt.Println("Your address:    ", info.Address)

	return nil
}
