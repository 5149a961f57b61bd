package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

const erc20 = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func TestEncodeCall(t *testing.T) {
	c, err := NewCodec(erc20, Options{})
	require.NoError(t, err)

	data, err := c.EncodeCall("transfer", bob, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb", hexutil.Encode(data[:4]))
	require.Len(t, data, 4+2*32)

	_, err = c.EncodeCall("approve", bob, big.NewInt(5))
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = c.EncodeCall("transfer", bob)
	require.Error(t, err)
}

func TestEncodeDeploy(t *testing.T) {
	c, err := NewCodec(erc20, Options{})
	require.NoError(t, err)
	_, err = c.EncodeDeploy(big.NewInt(1))
	require.ErrorIs(t, err, ErrNoBytecode)

	code := []byte{0x60, 0x80}
	c, err = NewCodec(erc20, Options{Bytecode: code})
	require.NoError(t, err)
	data, err := c.EncodeDeploy(big.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, code, data[:2])
	require.Equal(t, big.NewInt(1000), new(big.Int).SetBytes(data[2:]))
}

func TestDecodeOutput(t *testing.T) {
	c, err := NewCodec(erc20, Options{})
	require.NoError(t, err)

	ret := common.LeftPadBytes(big.NewInt(42).Bytes(), 32)
	out, err := c.DecodeOutput("balanceOf", ret)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, big.NewInt(42), out[0])

	var balance *big.Int
	require.NoError(t, c.DecodeOutputInto(&balance, "balanceOf", ret))
	require.Equal(t, big.NewInt(42), balance)
}

func TestDecodeLog(t *testing.T) {
	c, err := NewCodec(erc20, Options{})
	require.NoError(t, err)

	id, err := c.EventID("Transfer")
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), id)

	log := types.Log{
		Topics: []common.Hash{id, common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())},
		Data:   common.LeftPadBytes(big.NewInt(7).Bytes(), 32),
	}
	fields, err := c.DecodeLog("Transfer", log)
	require.NoError(t, err)
	require.Equal(t, alice, fields["from"])
	require.Equal(t, bob, fields["to"])
	require.Equal(t, big.NewInt(7), fields["value"])

	log.Topics[0] = common.Hash{}
	_, err = c.DecodeLog("Transfer", log)
	require.ErrorIs(t, err, ErrLogMismatch)

	_, err = c.DecodeLog("Approval", log)
	require.ErrorIs(t, err, ErrUnknownEvent)
}

func TestInvalidDefinition(t *testing.T) {
	_, err := NewCodec(`{"not": "an abi"`, Options{})
	require.Error(t, err)

	c, err := NewCodec(`[]`, Options{})
	require.NoError(t, err)
	require.Empty(t, c.ABI().Methods)
}
