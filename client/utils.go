package client

import (
	"github.com/ethereum/go-ethereum/common"

	ethcommon "github.com/status-im/ethfacade/common"
	"github.com/status-im/ethfacade/crypto"
	"github.com/status-im/ethfacade/units"
)

// Stateless helpers exposed on the client for convenience. They never touch
// the transport or the registry.

func (c *Client) Keccak256(value interface{}) (common.Hash, error) {
	return crypto.Keccak256(value)
}

func (c *Client) Keccak(value interface{}) (common.Hash, error) { return crypto.Keccak(value) }

func (c *Client) Sha3(value interface{}) (common.Hash, error) { return crypto.Sha3(value) }

func (c *Client) Sha256(value interface{}) (common.Hash, error) { return crypto.Sha256(value) }

// TightlyPackedKeccak256 always fails with crypto.ErrNotAvailable.
func (c *Client) TightlyPackedKeccak256(values ...interface{}) (common.Hash, error) {
	return crypto.TightlyPackedKeccak256(values...)
}

func (c *Client) TightlyPackedKeccak(values ...interface{}) (common.Hash, error) {
	return crypto.TightlyPackedKeccak(values...)
}

func (c *Client) TightlyPackedSha3(values ...interface{}) (common.Hash, error) {
	return crypto.TightlyPackedSha3(values...)
}

func (c *Client) TightlyPackedSha256(values ...interface{}) (common.Hash, error) {
	return crypto.TightlyPackedSha256(values...)
}

func (c *Client) SoliditySha3(values ...interface{}) (common.Hash, error) {
	return crypto.SoliditySha3(values...)
}

// Namehash computes the ENS node of name.
func (c *Client) Namehash(name string) (common.Hash, error) {
	return crypto.Namehash(name)
}

// Recover returns the address that produced signature over message.
func (c *Client) Recover(message, signature []byte) (common.Address, error) {
	return crypto.Recover(message, signature)
}

// RecoverTransaction returns the sender of a raw signed transaction.
func (c *Client) RecoverTransaction(raw []byte) (common.Address, error) {
	return crypto.RecoverTransaction(raw)
}

func (c *Client) Convert(value, from, to string) (string, error) { return units.Convert(value, from, to) }

func (c *Client) ToEther(value, unit string) (string, error) { return units.ToEther(value, unit) }

func (c *Client) ToWei(value, unit string) (string, error) { return units.ToWei(value, unit) }

func (c *Client) GweiToWei(value string) (string, error) { return units.GweiToWei(value) }

func (c *Client) EtherToWei(value string) (string, error) { return units.EtherToWei(value) }

func (c *Client) WeiToEther(value string) (string, error) { return units.WeiToEther(value) }

func (c *Client) Checksum(address string) (string, error) { return ethcommon.Checksum(address) }

func (c *Client) IsValidAddress(address string) bool { return ethcommon.IsValidAddress(address) }

func (c *Client) RLPEncode(value interface{}) ([]byte, error) { return ethcommon.RLPEncode(value) }

func (c *Client) RLPDecode(data []byte, into interface{}) error {
	return ethcommon.RLPDecode(data, into)
}

// Data, Quantity and Tag normalize JSON-RPC parameters.

func (c *Client) Data(value interface{}) (string, error) { return ethcommon.ToData(value) }

func (c *Client) Quantity(value interface{}) (string, error) { return ethcommon.ToQuantity(value) }

func (c *Client) Tag(value interface{}) (string, error) { return ethcommon.ToTag(value) }
