package signer

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Keystore signs with an encrypted key file. The key is decrypted for every
// signature and never kept unlocked.
type Keystore struct {
	keyStore   *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

// NewKeystore looks up address in the key store.
func NewKeystore(keyStore *keystore.KeyStore, address common.Address, passphrase string) (*Keystore, error) {
	account, err := keyStore.Find(accounts.Account{Address: address})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot find key for %s", address.Hex())
	}
	return &Keystore{
		keyStore:   keyStore,
		account:    account,
		passphrase: passphrase,
	}, nil
}

// NewKeystoreFromDir opens the key store directory with standard scrypt parameters.
func NewKeystoreFromDir(dir string, address common.Address, passphrase string) (*Keystore, error) {
	return NewKeystore(keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP), address, passphrase)
}

func (k *Keystore) Address() common.Address {
	return k.account.Address
}

func (k *Keystore) SignHash(hash []byte) ([]byte, error) {
	sig, err := k.keyStore.SignHashWithPassphrase(k.account, k.passphrase, hash)
	if err != nil {
		return nil, errors.Wrap(err, "keystore sign")
	}
	return sig, nil
}

func (k *Keystore) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := k.keyStore.SignTxWithPassphrase(k.account, k.passphrase, tx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "keystore sign transaction")
	}
	return signed, nil
}
