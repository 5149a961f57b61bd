package crypto

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	ens "github.com/wealdtech/go-ens/v3"
)

var (
	// ErrInvalidHashInput is returned when a value to hash is neither bytes nor a string.
	ErrInvalidHashInput = errors.New("value must be bytes or string")
	// ErrNotAvailable is returned by the tightly packed hashing family.
	ErrNotAvailable = errors.New("not available")
)

// Keccak256 hashes bytes as is and strings as their UTF-8 encoding. Bytes are
// any byte slice or array type, such as hexutil.Bytes or common.Hash.
// Any other type is rejected with ErrInvalidHashInput.
func Keccak256(value interface{}) (common.Hash, error) {
	switch v := value.(type) {
	case []byte:
		return crypto.Keccak256Hash(v), nil
	case hexutil.Bytes:
		return crypto.Keccak256Hash(v), nil
	case string:
		return crypto.Keccak256Hash([]byte(v)), nil
	}
	if b, ok := asBytes(value); ok {
		return crypto.Keccak256Hash(b), nil
	}
	return common.Hash{}, fmt.Errorf("%w, got %T", ErrInvalidHashInput, value)
}

// asBytes covers named byte slice, byte array and string types.
func asBytes(value interface{}) ([]byte, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return []byte(v.String()), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes(), true
		}
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return b, true
		}
	}
	return nil, false
}

// Aliases kept for the naming used across Ethereum libraries.
var (
	Keccak = Keccak256
	Sha3   = Keccak256
	Sha256 = Keccak256
)

// TightlyPackedKeccak256 would hash ABI tightly packed values. Packing is not implemented
// and the function always fails with ErrNotAvailable.
func TightlyPackedKeccak256(values ...interface{}) (common.Hash, error) {
	return common.Hash{}, ErrNotAvailable
}

var (
	TightlyPackedKeccak = TightlyPackedKeccak256
	TightlyPackedSha3   = TightlyPackedKeccak256
	TightlyPackedSha256 = TightlyPackedKeccak256
	SoliditySha3        = TightlyPackedKeccak256
)

// Namehash returns the ENS namehash of a domain name.
func Namehash(name string) (common.Hash, error) {
	hash, err := ens.NameHash(name)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(hash), nil
}
