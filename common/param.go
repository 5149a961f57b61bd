package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Block tags understood by JSON-RPC nodes.
const (
	TagLatest    = "latest"
	TagEarliest  = "earliest"
	TagPending   = "pending"
	TagSafe      = "safe"
	TagFinalized = "finalized"
)

var (
	ErrInvalidData     = errors.New("invalid data")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ToData normalizes bytes or a hex string into a 0x-prefixed lowercase hex string.
func ToData(value interface{}) (string, error) {
	switch v := value.(type) {
	case []byte:
		return hexutil.Encode(v), nil
	case hexutil.Bytes:
		return hexutil.Encode(v), nil
	case gethcommon.Address:
		return hexutil.Encode(v.Bytes()), nil
	case gethcommon.Hash:
		return hexutil.Encode(v.Bytes()), nil
	case string:
		b, err := FromHex(strings.ToLower(v))
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidData, v, err)
		}
		return hexutil.Encode(b), nil
	}
	return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidData, value)
}

// ToQuantity normalizes a non-negative integer into its minimal 0x-prefixed hex form.
// Strings are parsed as hex when 0x-prefixed and as decimal otherwise.
func ToQuantity(value interface{}) (string, error) {
	n, err := toBig(value)
	if err != nil {
		return "", err
	}
	if n.Sign() < 0 {
		return "", fmt.Errorf("%w: negative value %s", ErrInvalidQuantity, n)
	}
	return hexutil.EncodeBig(n), nil
}

// ToTag normalizes a block reference: nil means latest, known tags pass through,
// everything else must be a quantity.
func ToTag(value interface{}) (string, error) {
	if value == nil {
		return TagLatest, nil
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(s) {
		case TagLatest, TagEarliest, TagPending, TagSafe, TagFinalized:
			return strings.ToLower(s), nil
		}
	}
	return ToQuantity(value)
}

// BlockNumArg encodes a block number the way go-ethereum's ethclient does: nil is
// latest and negative numbers are the rpc.BlockNumber tags.
func BlockNumArg(number *big.Int) string {
	if number == nil {
		return TagLatest
	}
	if number.Sign() >= 0 {
		return hexutil.EncodeBig(number)
	}
	// It's negative.
	if number.IsInt64() {
		return gethrpc.BlockNumber(number.Int64()).String()
	}
	// It's negative and large, which is invalid.
	return fmt.Sprintf("<invalid %d>", number)
}

func toBig(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case *big.Int:
		if v != nil {
			return new(big.Int).Set(v), nil
		}
	case *hexutil.Big:
		if v != nil {
			return new(big.Int).Set(v.ToInt()), nil
		}
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(v)), nil
	case string:
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			if n, ok := new(big.Int).SetString(v[2:], 16); ok {
				return n, nil
			}
		} else if n, ok := new(big.Int).SetString(v, 10); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuantity, v)
	}
	return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidQuantity, value)
}
