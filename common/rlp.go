package common

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// RLPEncode returns the RLP encoding of value.
func RLPEncode(value interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(value)
}

// RLPDecode parses RLP data into the value pointed to by into.
func RLPDecode(data []byte, into interface{}) error {
	return rlp.DecodeBytes(data, into)
}
