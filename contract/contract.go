package contract

//go:generate mockgen -package=mock_contract -source=contract.go -destination=mock/contract.go

import (
	"context"
	"errors"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/status-im/ethfacade/abi"
	"github.com/status-im/ethfacade/transactions"
)

var ErrNoAddress = errors.New("contract address is not set")

// Backend runs contract invocations. The client facade implements it by routing
// to the current account and the explorer.
type Backend interface {
	Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error)
	Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

// Options are the construction options of a contract binding.
type Options struct {
	Address common.Address
}

// SendOptions override what the account would otherwise fill in.
type SendOptions struct {
	From                 common.Address
	Value                *big.Int
	Gas                  uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Nonce                *uint64
}

// Contract binds an ABI codec to an address.
type Contract struct {
	backend Backend
	codec   *abi.Codec
	address common.Address
}

func New(backend Backend, codec *abi.Codec, opts Options) *Contract {
	return &Contract{
		backend: backend,
		codec:   codec,
		address: opts.Address,
	}
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) Codec() *abi.Codec {
	return c.codec
}

// At returns a copy of the binding for another address.
func (c *Contract) At(address common.Address) *Contract {
	return &Contract{backend: c.backend, codec: c.codec, address: address}
}

// Method encodes a call of name with args.
func (c *Contract) Method(name string, args ...interface{}) (*Invocation, error) {
	data, err := c.codec.EncodeCall(name, args...)
	if err != nil {
		return nil, err
	}
	return &Invocation{contract: c, method: name, data: data}, nil
}

// Deploy sends the creation transaction and returns its hash. The contract
// address is known once the receipt is available.
func (c *Contract) Deploy(ctx context.Context, opts SendOptions, args ...interface{}) (common.Hash, error) {
	data, err := c.codec.EncodeDeploy(args...)
	if err != nil {
		return common.Hash{}, err
	}
	return c.backend.Send(ctx, opts.toSendTxArgs(nil, data))
}

// Event is a decoded log.
type Event struct {
	Log    types.Log
	Fields map[string]interface{}
}

// Logs returns the decoded logs of event emitted by the contract between from and to.
func (c *Contract) Logs(ctx context.Context, event string, from, to *big.Int) ([]Event, error) {
	if c.address == (common.Address{}) {
		return nil, ErrNoAddress
	}
	id, err := c.codec.EventID(event)
	if err != nil {
		return nil, err
	}
	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: from,
		ToBlock:   to,
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{id}},
	})
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(logs))
	for _, log := range logs {
		fields, err := c.codec.DecodeLog(event, log)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Log: log, Fields: fields})
	}
	return events, nil
}

// Invocation is an encoded method call ready to be simulated, estimated or sent.
type Invocation struct {
	contract *Contract
	method   string
	data     []byte
}

// Data returns the encoded call data.
func (i *Invocation) Data() []byte {
	return i.data
}

// Call executes the invocation at block and decodes the outputs.
func (i *Invocation) Call(ctx context.Context, block *big.Int) ([]interface{}, error) {
	out, err := i.call(ctx, block)
	if err != nil {
		return nil, err
	}
	return i.contract.codec.DecodeOutput(i.method, out)
}

// CallInto executes the invocation at block and decodes the outputs into result.
func (i *Invocation) CallInto(ctx context.Context, block *big.Int, result interface{}) error {
	out, err := i.call(ctx, block)
	if err != nil {
		return err
	}
	return i.contract.codec.DecodeOutputInto(result, i.method, out)
}

func (i *Invocation) Gas(ctx context.Context) (uint64, error) {
	if i.contract.address == (common.Address{}) {
		return 0, ErrNoAddress
	}
	return i.contract.backend.Gas(ctx, i.msg())
}

func (i *Invocation) Send(ctx context.Context, opts SendOptions) (common.Hash, error) {
	if i.contract.address == (common.Address{}) {
		return common.Hash{}, ErrNoAddress
	}
	to := i.contract.address
	return i.contract.backend.Send(ctx, opts.toSendTxArgs(&to, i.data))
}

func (i *Invocation) call(ctx context.Context, block *big.Int) (hexutil.Bytes, error) {
	if i.contract.address == (common.Address{}) {
		return nil, ErrNoAddress
	}
	return i.contract.backend.Call(ctx, i.msg(), block)
}

func (i *Invocation) msg() ethereum.CallMsg {
	to := i.contract.address
	return ethereum.CallMsg{To: &to, Data: i.data}
}

func (o SendOptions) toSendTxArgs(to *common.Address, data []byte) transactions.SendTxArgs {
	args := transactions.SendTxArgs{
		From:                 o.From,
		To:                   to,
		Value:                (*hexutil.Big)(o.Value),
		GasPrice:             (*hexutil.Big)(o.GasPrice),
		MaxFeePerGas:         (*hexutil.Big)(o.MaxFeePerGas),
		MaxPriorityFeePerGas: (*hexutil.Big)(o.MaxPriorityFeePerGas),
		Data:                 data,
	}
	if o.Gas != 0 {
		gas := hexutil.Uint64(o.Gas)
		args.Gas = &gas
	}
	if o.Nonce != nil {
		nonce := hexutil.Uint64(*o.Nonce)
		args.Nonce = &nonce
	}
	return args
}
