package main

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/urfave/cli/v2"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/ethfacade/client"
	ethcommon "github.com/status-im/ethfacade/common"
	"github.com/status-im/ethfacade/transactions"
	"github.com/status-im/ethfacade/units"
)

func blockFlag() cli.Flag {
	return &cli.StringFlag{Name: BlockFlag, Usage: "block number or tag", Value: ethcommon.TagLatest}
}

func fromFlag() cli.Flag { return &cli.StringFlag{Name: FromFlag, Usage: "sender address"} }

func valueFlag() cli.Flag { return &cli.StringFlag{Name: ValueFlag, Usage: "amount in ether"} }

func dataFlag() cli.Flag { return &cli.StringFlag{Name: DataFlag, Usage: "0x-prefixed call data"} }

// chainCommands talk to the configured node.
func chainCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "block-number",
			Usage: "latest block number",
			Action: func(cCtx *cli.Context) error {
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					n, err := c.Find().BlockNumber(ctx)
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, fmt.Sprint(n))
				})
			},
		},
		{
			Name:      "balance",
			Usage:     "balance of an address in ether",
			ArgsUsage: "<address>",
			Flags:     []cli.Flag{blockFlag()},
			Action: func(cCtx *cli.Context) error {
				address, err := addressArg(cCtx, 0, "address")
				if err != nil {
					return err
				}
				block, err := parseBlock(cCtx.String(BlockFlag))
				if err != nil {
					return err
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					wei, err := c.Find().BalanceAt(ctx, address, block)
					if err != nil {
						return err
					}
					ether, err := units.FormatWei(wei, "ether")
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, ether)
				})
			},
		},
		{
			Name:      "call",
			Usage:     "execute a call without creating a transaction",
			ArgsUsage: "<to>",
			Flags:     []cli.Flag{blockFlag(), fromFlag(), valueFlag(), dataFlag()},
			Action: func(cCtx *cli.Context) error {
				msg, err := callMsg(cCtx)
				if err != nil {
					return err
				}
				block, err := parseBlock(cCtx.String(BlockFlag))
				if err != nil {
					return err
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					out, err := c.Call(ctx, msg, block)
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, out.String())
				})
			},
		},
		{
			Name:      "gas",
			Usage:     "estimate the gas of a call",
			ArgsUsage: "<to>",
			Flags:     []cli.Flag{fromFlag(), valueFlag(), dataFlag()},
			Action: func(cCtx *cli.Context) error {
				msg, err := callMsg(cCtx)
				if err != nil {
					return err
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					gas, err := c.Gas(ctx, msg)
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, fmt.Sprint(gas))
				})
			},
		},
		{
			Name:      "sign",
			Usage:     "sign a message with the current account",
			ArgsUsage: "<message>",
			Action: func(cCtx *cli.Context) error {
				message, err := arg(cCtx, 0, "message")
				if err != nil {
					return err
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					sig, err := c.Sign(ctx, []byte(message))
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, sig.String())
				})
			},
		},
		{
			Name:      "send",
			Usage:     "send a transaction from the current account",
			ArgsUsage: "<to>",
			Flags: []cli.Flag{
				valueFlag(), dataFlag(),
				&cli.BoolFlag{Name: WaitFlag, Usage: "wait for the receipt"},
			},
			Action: func(cCtx *cli.Context) error {
				msg, err := callMsg(cCtx)
				if err != nil {
					return err
				}
				args := transactions.SendTxArgs{
					To:    msg.To,
					Value: (*hexutil.Big)(msg.Value),
					Data:  msg.Data,
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					hash, err := c.Send(ctx, args)
					if err != nil {
						return err
					}
					if !cCtx.Bool(WaitFlag) {
						return printResult(cCtx.App.Writer, hash.Hex())
					}
					receipt, err := c.Tx().WaitMined(ctx, hash)
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, receipt)
				})
			},
		},
		{
			Name:      "receipt",
			Usage:     "receipt of a transaction",
			ArgsUsage: "<hash>",
			Action: func(cCtx *cli.Context) error {
				raw, err := arg(cCtx, 0, "hash")
				if err != nil {
					return err
				}
				return withClient(cCtx, func(ctx context.Context, c *client.Client) error {
					receipt, err := c.Find().TransactionReceipt(ctx, common.HexToHash(raw))
					if err != nil {
						return err
					}
					return printResult(cCtx.App.Writer, receipt)
				})
			},
		},
	}
}

func addressArg(cCtx *cli.Context, i int, name string) (common.Address, error) {
	raw, err := arg(cCtx, i, name)
	if err != nil {
		return common.Address{}, err
	}
	if !ethcommon.IsValidAddress(raw) {
		return common.Address{}, fmt.Errorf("%w: %s", ethcommon.ErrInvalidAddress, raw)
	}
	return common.HexToAddress(raw), nil
}

func callMsg(cCtx *cli.Context) (ethereum.CallMsg, error) {
	var msg ethereum.CallMsg

	to, err := addressArg(cCtx, 0, "to")
	if err != nil {
		return msg, err
	}
	msg.To = &to

	if from := cCtx.String(FromFlag); from != "" {
		if !ethcommon.IsValidAddress(from) {
			return msg, fmt.Errorf("%w: %s", ethcommon.ErrInvalidAddress, from)
		}
		msg.From = common.HexToAddress(from)
	}
	if value := cCtx.String(ValueFlag); value != "" {
		wei, err := units.ParseWei(value, "ether")
		if err != nil {
			return msg, err
		}
		msg.Value = wei
	}
	if data := cCtx.String(DataFlag); data != "" {
		b, err := ethcommon.FromHex(data)
		if err != nil {
			return msg, err
		}
		msg.Data = b
	}
	return msg, nil
}

// parseBlock turns a tag or a decimal/hex number into the block argument of
// the client: nil for latest, negative values for the other tags.
func parseBlock(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, ethcommon.TagLatest) {
		return nil, nil
	}
	if n, ok := new(big.Int).SetString(s, 0); ok {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("invalid block number %s", s)
		}
		return n, nil
	}
	var bn gethrpc.BlockNumber
	if err := bn.UnmarshalJSON([]byte(`"` + strings.ToLower(s) + `"`)); err != nil {
		return nil, err
	}
	return big.NewInt(bn.Int64()), nil
}
