package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/common/hexutil"

	ethcommon "github.com/status-im/ethfacade/common"
	"github.com/status-im/ethfacade/crypto"
	"github.com/status-im/ethfacade/units"
)

const HexFlag = "hex"

// offlineCommands never open a connection.
func offlineCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "keccak",
			Aliases:   []string{"sha3"},
			Usage:     "Keccak-256 of a string, or of hex bytes with --hex",
			ArgsUsage: "<value>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: HexFlag, Usage: "decode the value as 0x-prefixed hex"},
			},
			Action: func(cCtx *cli.Context) error {
				value, err := arg(cCtx, 0, "value")
				if err != nil {
					return err
				}
				var input interface{} = value
				if cCtx.Bool(HexFlag) {
					b, err := ethcommon.FromHex(value)
					if err != nil {
						return err
					}
					input = b
				}
				hash, err := crypto.Keccak256(input)
				if err != nil {
					return err
				}
				return printResult(cCtx.App.Writer, hash.Hex())
			},
		},
		{
			Name:      "namehash",
			Usage:     "ENS namehash of a name",
			ArgsUsage: "<name>",
			Action: func(cCtx *cli.Context) error {
				name, err := arg(cCtx, 0, "name")
				if err != nil {
					return err
				}
				hash, err := crypto.Namehash(name)
				if err != nil {
					return err
				}
				return printResult(cCtx.App.Writer, hash.Hex())
			},
		},
		{
			Name:      "convert",
			Usage:     "convert an amount between denominations, e.g. convert 1.5 ether gwei",
			ArgsUsage: "<value> <from> <to>",
			Action: func(cCtx *cli.Context) error {
				if cCtx.NArg() != 3 {
					return fmt.Errorf("expected <value> <from> <to>, got %d arguments", cCtx.NArg())
				}
				out, err := units.Convert(cCtx.Args().Get(0), cCtx.Args().Get(1), cCtx.Args().Get(2))
				if err != nil {
					return err
				}
				return printResult(cCtx.App.Writer, out)
			},
		},
		{
			Name:      "checksum",
			Usage:     "EIP-55 checksummed form of an address",
			ArgsUsage: "<address>",
			Action: func(cCtx *cli.Context) error {
				address, err := arg(cCtx, 0, "address")
				if err != nil {
					return err
				}
				out, err := ethcommon.Checksum(address)
				if err != nil {
					return err
				}
				return printResult(cCtx.App.Writer, out)
			},
		},
		{
			Name:      "recover",
			Usage:     "address that signed a message",
			ArgsUsage: "<message> <signature>",
			Action: func(cCtx *cli.Context) error {
				if cCtx.NArg() != 2 {
					return fmt.Errorf("expected <message> <signature>, got %d arguments", cCtx.NArg())
				}
				sig, err := hexutil.Decode(cCtx.Args().Get(1))
				if err != nil {
					return err
				}
				address, err := crypto.Recover([]byte(cCtx.Args().Get(0)), sig)
				if err != nil {
					return err
				}
				return printResult(cCtx.App.Writer, address.Hex())
			},
		},
	}
}

func arg(cCtx *cli.Context, i int, name string) (string, error) {
	if cCtx.NArg() <= i {
		return "", fmt.Errorf("missing <%s>", name)
	}
	return cCtx.Args().Get(i), nil
}
