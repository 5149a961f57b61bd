package signer

//go:generate mockgen -package=mock_signer -source=signer.go -destination=mock/signer.go

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer produces signatures for a single address.
type Signer interface {
	// Address returns the address whose key signs.
	Address() common.Address
	// SignHash signs a 32 byte digest and returns a 65 byte [R || S || V] signature, V in 0/1.
	SignHash(hash []byte) ([]byte, error)
	// SignTx returns a signed copy of tx for the given chain.
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// SignMessage signs an EIP-191 personal message. V is returned in 27/28
// as eth_sign does.
func SignMessage(s Signer, message []byte) ([]byte, error) {
	sig, err := s.SignHash(accounts.TextHash(message))
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
