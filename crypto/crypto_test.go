package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestKeccak256(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"empty bytes", []byte{}, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"empty string", "", "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"utf8 string", "hello", "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
		{"bytes", []byte("hello"), "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
		{"empty hexutil bytes", hexutil.Bytes{}, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"hexutil bytes", hexutil.Bytes("hello"), "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
		{"named string", label("hello"), "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
		{"byte array", [5]byte{'h', 'e', 'l', 'l', 'o'}, "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := Keccak256(tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.expected, hash.Hex())
		})
	}
}

type label string

func TestKeccak256RejectsOtherTypes(t *testing.T) {
	for _, value := range []interface{}{42, 3.14, struct{}{}, nil, map[string]int{}, []int{1}, [2]int{}} {
		_, err := Keccak256(value)
		require.ErrorIs(t, err, ErrInvalidHashInput)
	}
}

func TestAliases(t *testing.T) {
	expected, err := Keccak256("abc")
	require.NoError(t, err)
	for _, alias := range []func(interface{}) (common.Hash, error){Keccak, Sha3, Sha256} {
		hash, err := alias("abc")
		require.NoError(t, err)
		require.Equal(t, expected, hash)
	}
}

func TestTightlyPackedIsNotAvailable(t *testing.T) {
	for _, fn := range []func(...interface{}) (common.Hash, error){
		TightlyPackedKeccak256, TightlyPackedKeccak, TightlyPackedSha3, TightlyPackedSha256, SoliditySha3,
	} {
		_, err := fn("uint256", 1)
		require.ErrorIs(t, err, ErrNotAvailable)
	}
}

func TestNamehash(t *testing.T) {
	hash, err := Namehash("")
	require.NoError(t, err)
	require.Equal(t, common.Hash{}, hash)

	hash, err = Namehash("eth")
	require.NoError(t, err)
	require.Equal(t, "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae", hash.Hex())
}

func TestRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)
	message := []byte("sign me")

	sig, err := crypto.Sign(accounts.TextHash(message), key)
	require.NoError(t, err)

	recovered, err := Recover(message, sig)
	require.NoError(t, err)
	require.Equal(t, address, recovered)

	// wallets usually return v in 27/28
	sig[crypto.RecoveryIDOffset] += 27
	recovered, err = Recover(message, sig)
	require.NoError(t, err)
	require.Equal(t, address, recovered)

	_, err = Recover(message, sig[:64])
	require.ErrorIs(t, err, ErrInvalidSignature)

	sig[crypto.RecoveryIDOffset] = 5
	_, err = Recover(message, sig)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestRecoverTransaction(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	legacy, err := types.SignTx(types.NewTransaction(1, to, big.NewInt(1), 21000, big.NewInt(1), nil), types.HomesteadSigner{}, key)
	require.NoError(t, err)

	chainID := big.NewInt(5)
	dynamic, err := types.SignNewTx(key, types.LatestSignerForChainID(chainID), &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     2,
		To:        &to,
		Gas:       21000,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Value:     big.NewInt(3),
	})
	require.NoError(t, err)

	for _, tx := range []*types.Transaction{legacy, dynamic} {
		raw, err := tx.MarshalBinary()
		require.NoError(t, err)
		sender, err := RecoverTransaction(raw)
		require.NoError(t, err)
		require.Equal(t, address, sender)
	}

	_, err = RecoverTransaction([]byte{0x01, 0x02})
	require.Error(t, err)
}
