package common

import (
	"errors"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidAddress is returned for strings that are not 20 byte hex addresses.
var ErrInvalidAddress = errors.New("invalid address")

// Checksum returns the EIP-55 mixed-case form of a hex address.
func Checksum(address string) (string, error) {
	if !gethcommon.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return gethcommon.HexToAddress(address).Hex(), nil
}

// IsValidAddress reports whether address is a 20 byte hex string. Single-case
// addresses are accepted as is; mixed-case ones must carry a valid checksum.
func IsValidAddress(address string) bool {
	if !gethcommon.IsHexAddress(address) {
		return false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return gethcommon.HexToAddress(address).Hex()[2:] == body
}

// FromHex decodes a 0x-prefixed hex string, accepting an empty "0x".
func FromHex(s string) ([]byte, error) {
	if s == "0x" || s == "0X" {
		return []byte{}, nil
	}
	return hexutil.Decode(s)
}
