package account

//go:generate mockgen -package=mock_account -source=account.go -destination=mock/account.go

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/status-im/ethfacade/transactions"
)

// Operation is one of the requests the router dispatches.
type Operation string

const (
	OpSign Operation = "sign"
	OpSend Operation = "send"
	OpCall Operation = "call"
	OpGas  Operation = "gas"
)

// Capabilities is the set of operations an account supports.
type Capabilities uint8

const (
	CapCall Capabilities = 1 << iota
	CapGas
	CapSign
	CapSend

	readonlyCapabilities = CapCall | CapGas
	fullCapabilities     = CapCall | CapGas | CapSign | CapSend
)

// Has reports whether every capability of other is in c.
func (c Capabilities) Has(other Capabilities) bool {
	return c&other == other
}

// CanSign reports whether the account holds, or has access to, a key.
func (c Capabilities) CanSign() bool {
	return c.Has(CapSign)
}

// Capability returns the capability an operation requires.
func (op Operation) Capability() Capabilities {
	switch op {
	case OpSign:
		return CapSign
	case OpSend:
		return CapSend
	case OpCall:
		return CapCall
	case OpGas:
		return CapGas
	}
	return 0
}

// Account is something addressable that can answer sign, send, call and gas
// requests, or refuse the ones outside its capabilities.
type Account interface {
	// ID is the EIP-55 checksummed address. Accounts with equal ids are the same account.
	ID() string
	Address() common.Address
	Capabilities() Capabilities
	// Sign returns an EIP-191 personal message signature.
	Sign(ctx context.Context, message []byte) (hexutil.Bytes, error)
	Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error)
	// Call executes msg at block. Nil block means latest.
	Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error)
	Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
}

// ID derives the account identity from an address.
func ID(address common.Address) string {
	return address.Hex()
}

func notSupported(op Operation, id string) error {
	return fmt.Errorf("%w: %s on %s", ErrCapabilityNotSupported, op, id)
}
