package transactions

import (
	"bytes"
	"errors"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrInvalidSendTxArgs is returned when the structure of SendTxArgs is ambigious.
	ErrInvalidSendTxArgs = errors.New("transaction arguments are invalid (are both 'input' and 'data' fields used?)")

	// ErrInvalidTxSender is returned when from does not match the signing account.
	ErrInvalidTxSender = errors.New("transaction can only be sent by its creator")
)

// SendTxArgs represents the arguments to submit a new transaction into the transaction pool.
// This struct is based on go-ethereum's type in internal/ethapi/api.go, but we have freedom
// over the exact layout of this struct.
type SendTxArgs struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to"`
	Gas                  *hexutil.Uint64 `json:"gas"`
	GasPrice             *hexutil.Big    `json:"gasPrice"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas"`
	Value                *hexutil.Big    `json:"value"`
	Nonce                *hexutil.Uint64 `json:"nonce"`
	// We keep both "input" and "data" for backward compatibility.
	// "input" is a preferred field.
	Input hexutil.Bytes `json:"input"`
	Data  hexutil.Bytes `json:"data"`
}

// Valid checks whether this structure is filled in correctly.
func (args SendTxArgs) Valid() bool {
	// if at least one of the fields is empty, it is a valid struct
	if isNilOrEmpty(args.Input) || isNilOrEmpty(args.Data) {
		return true
	}

	// we only allow both fields to present if they have the same data
	return bytes.Equal(args.Input, args.Data)
}

// IsDynamicFeeTx reports whether the caller asked for EIP-1559 fees.
func (args SendTxArgs) IsDynamicFeeTx() bool {
	return args.GasPrice == nil && (args.MaxFeePerGas != nil || args.MaxPriorityFeePerGas != nil)
}

// GetInput returns either Input or Data field's value dependent on what is filled.
func (args SendTxArgs) GetInput() hexutil.Bytes {
	if !isNilOrEmpty(args.Input) {
		return args.Input
	}

	return args.Data
}

// ToCallMsg converts the arguments into a message for eth_call and eth_estimateGas.
func (args SendTxArgs) ToCallMsg() ethereum.CallMsg {
	msg := ethereum.CallMsg{
		From:      args.From,
		To:        args.To,
		GasPrice:  (*big.Int)(args.GasPrice),
		GasFeeCap: (*big.Int)(args.MaxFeePerGas),
		GasTipCap: (*big.Int)(args.MaxPriorityFeePerGas),
		Value:     (*big.Int)(args.Value),
		Data:      args.GetInput(),
	}
	if args.Gas != nil {
		msg.Gas = uint64(*args.Gas)
	}
	return msg
}

func isNilOrEmpty(bytes hexutil.Bytes) bool {
	return len(bytes) == 0
}
