package signer

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// PrivateKey signs with an in-memory key.
type PrivateKey struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewPrivateKey(key *ecdsa.PrivateKey) *PrivateKey {
	return &PrivateKey{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// NewPrivateKeyFromHex parses a hex encoded key, with or without 0x prefix.
func NewPrivateKeyFromHex(hexKey string) (*PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}
	return NewPrivateKey(key), nil
}

func (p *PrivateKey) Address() common.Address {
	return p.address
}

func (p *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	return crypto.Sign(hash, p.key)
}

func (p *PrivateKey) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), p.key)
}
