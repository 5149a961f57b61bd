package signer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	ethcrypto "github.com/status-im/ethfacade/crypto"
)

const testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func TestNewPrivateKeyFromHex(t *testing.T) {
	withPrefix, err := NewPrivateKeyFromHex("0x" + testKeyHex)
	require.NoError(t, err)
	withoutPrefix, err := NewPrivateKeyFromHex(testKeyHex)
	require.NoError(t, err)
	require.Equal(t, withPrefix.Address(), withoutPrefix.Address())

	_, err = NewPrivateKeyFromHex("0x1234")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid private key")
}

func TestSignMessageRecoverable(t *testing.T) {
	s, err := NewPrivateKeyFromHex(testKeyHex)
	require.NoError(t, err)

	message := []byte("hello")
	sig, err := SignMessage(s, message)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.Contains(t, []byte{27, 28}, sig[64])

	recovered, err := ethcrypto.Recover(message, sig)
	require.NoError(t, err)
	require.Equal(t, s.Address(), recovered)
}

func TestPrivateKeySignTx(t *testing.T) {
	s, err := NewPrivateKeyFromHex(testKeyHex)
	require.NoError(t, err)

	chainID := big.NewInt(1337)
	to := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	tx := types.NewTx(&types.DynamicFeeTx{ChainID: chainID, Nonce: 1, To: &to, Gas: 21000, GasTipCap: big.NewInt(1), GasFeeCap: big.NewInt(10)})

	signed, err := s.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	require.Equal(t, s.Address(), sender)
}

func TestKeystoreSigner(t *testing.T) {
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	account, err := ks.ImportECDSA(key, "secret")
	require.NoError(t, err)

	s, err := NewKeystore(ks, account.Address, "secret")
	require.NoError(t, err)
	require.Equal(t, account.Address, s.Address())

	message := []byte("keystore message")
	sig, err := SignMessage(s, message)
	require.NoError(t, err)
	recovered, err := ethcrypto.Recover(message, sig)
	require.NoError(t, err)
	require.Equal(t, account.Address, recovered)

	wrong, err := NewKeystore(ks, account.Address, "wrong")
	require.NoError(t, err)
	_, err = wrong.SignHash(crypto.Keccak256([]byte("x")))
	require.Error(t, err)

	_, err = NewKeystore(ks, common.HexToAddress("0x01"), "secret")
	require.Error(t, err)
}
