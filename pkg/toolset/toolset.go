package toolset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/configuration"
)

const (
	FlagToolDatabasePath = "databasePath"
	FlagToolPublicKey    = "publicKey"
	FlagToolChainID      = "chainID"
	FlagToolPassword     = "password"
	FlagToolOutputJSON   = "json"

	FlagToolDescriptionOutputJSON = "format output as JSON"
)

const (
	ToolPwdHash      = "pwd-hash"
	ToolAddress      = "address"
	ToolDatabaseInfo = "db-info"
)

type tool struct {
	description string
	handler     func(*configuration.Configuration, []string) error
}

var tools = map[string]tool{
	ToolPwdHash:      {"generates a scrypt hash from your password and salt", hashPasswordAndSalt},
	ToolAddress:      {"derives the account address of a public key", deriveAddress},
	ToolDatabaseInfo: {"outputs information about the governance databases", databaseInfo},
}

// toolArgs returns the command line arguments starting at the "tools" keyword.
func toolArgs() ([]string, bool) {
	args := os.Args[1:]

	for i, arg := range args {
		if strings.ToLower(arg) == "tool" || strings.ToLower(arg) == "tools" {
			return args[i:], true
		}
	}

	return nil, false
}

// ShouldHandleTools checks if tools were requested.
func ShouldHandleTools() bool {
	_, found := toolArgs()
	return found
}

// HandleTools handles available tools.
func HandleTools(nodeConfig *configuration.Configuration) {

	args, found := toolArgs()
	if !found {
		return
	}

	if len(args) == 1 {
		listTools()
		os.Exit(1)
	}

	t, exists := tools[strings.ToLower(args[1])]
	if !exists {
		fmt.Print("tool not found.\n\n")
		listTools()
		os.Exit(1)
	}

	if err := t.handler(nodeConfig, args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// help text was requested
			os.Exit(0)
		}

		fmt.Printf("\nerror: %s\n", err)
		os.Exit(1)
	}

	os.Exit(0)
}

func listTools() {
	for _, name := range []string{ToolPwdHash, ToolAddress, ToolDatabaseInfo} {
		fmt.Printf("%-15s %s\n", fmt.Sprintf("%s:", name), tools[name].description)
	}
}

func parseFlagSet(fs *flag.FlagSet, args []string) error {

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Check if all parameters were parsed
	if fs.NArg() != 0 {
		return errors.New("too much arguments")
	}

	return nil
}

func printJSON(obj interface{}) error {
	output, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(output))
	return nil
}
