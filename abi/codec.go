package abi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrUnknownMethod = errors.New("method not found in abi")
	ErrUnknownEvent  = errors.New("event not found in abi")
	ErrNoBytecode    = errors.New("no bytecode to deploy")
	ErrLogMismatch   = errors.New("log does not match event")
)

// Options are the construction options of a codec.
type Options struct {
	// Bytecode is the creation code used by EncodeDeploy.
	Bytecode []byte
}

// Codec encodes calls and decodes results and logs for one contract interface.
// It holds no state after construction.
type Codec struct {
	abi      gethabi.ABI
	bytecode []byte
}

// NewCodec parses a JSON interface definition.
func NewCodec(definition string, opts Options) (*Codec, error) {
	return NewCodecFromReader(strings.NewReader(definition), opts)
}

func NewCodecFromReader(r io.Reader, opts Options) (*Codec, error) {
	parsed, err := gethabi.JSON(r)
	if err != nil {
		return nil, fmt.Errorf("invalid abi: %w", err)
	}
	return &Codec{abi: parsed, bytecode: bytes.Clone(opts.Bytecode)}, nil
}

// ABI exposes the parsed definition.
func (c *Codec) ABI() gethabi.ABI {
	return c.abi
}

func (c *Codec) HasMethod(name string) bool {
	_, ok := c.abi.Methods[name]
	return ok
}

// EncodeCall returns the selector followed by the packed arguments.
func (c *Codec) EncodeCall(method string, args ...interface{}) ([]byte, error) {
	if !c.HasMethod(method) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return c.abi.Pack(method, args...)
}

// EncodeDeploy returns the creation code followed by the packed constructor arguments.
func (c *Codec) EncodeDeploy(args ...interface{}) ([]byte, error) {
	if len(c.bytecode) == 0 {
		return nil, ErrNoBytecode
	}
	packed, err := c.abi.Pack("", args...)
	if err != nil {
		return nil, err
	}
	return append(bytes.Clone(c.bytecode), packed...), nil
}

// DecodeOutput unpacks the return data of method.
func (c *Codec) DecodeOutput(method string, data []byte) ([]interface{}, error) {
	if !c.HasMethod(method) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return c.abi.Unpack(method, data)
}

// DecodeOutputInto unpacks the return data of method into out.
func (c *Codec) DecodeOutputInto(out interface{}, method string, data []byte) error {
	if !c.HasMethod(method) {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return c.abi.UnpackIntoInterface(out, method, data)
}

// EventID returns the topic hash of event.
func (c *Codec) EventID(event string) (common.Hash, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	return ev.ID, nil
}

// DecodeLog returns indexed and non-indexed fields of a log emitted as event, by name.
func (c *Codec) DecodeLog(event string, log types.Log) (map[string]interface{}, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	if ev.Anonymous {
		return nil, fmt.Errorf("%w: anonymous event %s", ErrLogMismatch, event)
	}
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return nil, fmt.Errorf("%w: %s", ErrLogMismatch, event)
	}

	fields := make(map[string]interface{})
	if len(log.Data) > 0 {
		if err := c.abi.UnpackIntoMap(fields, event, log.Data); err != nil {
			return nil, err
		}
	}

	var indexed gethabi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := gethabi.ParseTopicsIntoMap(fields, indexed, log.Topics[1:]); err != nil {
		return nil, err
	}
	return fields, nil
}
