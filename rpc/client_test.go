package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/vm"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/ethfacade/params"
)

var errProviderDown = errors.New("provider down")

type revertError struct{}

func (revertError) Error() string  { return "execution reverted" }
func (revertError) ErrorCode() int { return 3 }

type testService struct {
	blockNumber uint64
	down        bool
	failWith    error
	calls       int
}

func (s *testService) BlockNumber() (hexutil.Uint64, error) {
	s.calls++
	if s.failWith != nil {
		return 0, s.failWith
	}
	if s.down {
		return 0, errProviderDown
	}
	return hexutil.Uint64(s.blockNumber), nil
}

func (s *testService) Call(ctx context.Context, args map[string]interface{}, block string) (hexutil.Bytes, error) {
	s.calls++
	return nil, revertError{}
}

func newInProc(t *testing.T, svc *testService) *gethrpc.Client {
	server := gethrpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)
	return gethrpc.DialInProc(server)
}

type ClientSuite struct {
	suite.Suite

	main     *testService
	fallback *testService
	client   *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.main = &testService{blockNumber: 10}
	s.fallback = &testService{blockNumber: 20}

	config := params.NewClientConfig("")
	config.RequestsPerSecond = 0
	config.RPCCallTimeout = time.Second

	client, err := NewClientWithProviders(config, newInProc(s.T(), s.main), newInProc(s.T(), s.fallback))
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.client.Close()
}

func (s *ClientSuite) TestProvidersOrder() {
	providers := s.client.Providers()
	s.Require().Len(providers, 2)
	s.Equal(ProviderMain, providers[0].Key)
	s.Equal(ProviderFallback, providers[1].Key)
	s.Equal(0, providers[0].Priority)
}

func (s *ClientSuite) TestCallUsesMainProvider() {
	var result hexutil.Uint64
	s.Require().NoError(s.client.CallContext(context.Background(), &result, "eth_blockNumber"))
	s.Equal(hexutil.Uint64(10), result)
	s.Equal(0, s.fallback.calls)
}

func (s *ClientSuite) TestCallFallsBackWhenMainFails() {
	s.main.down = true

	var result hexutil.Uint64
	s.Require().NoError(s.client.CallContext(context.Background(), &result, "eth_blockNumber"))
	s.Equal(hexutil.Uint64(20), result)
	s.Equal(1, s.main.calls)
	s.Equal(1, s.fallback.calls)
}

func (s *ClientSuite) TestNodeFailureFallsBack() {
	s.main.failWith = errors.New("header not found")

	var result hexutil.Uint64
	s.Require().NoError(s.client.CallContext(context.Background(), &result, "eth_blockNumber"))
	s.Equal(hexutil.Uint64(20), result)
	s.Equal(1, s.main.calls)
	s.Equal(1, s.fallback.calls)
}

func (s *ClientSuite) TestOutOfGasIsNotRetried() {
	s.main.failWith = vm.ErrOutOfGas

	err := s.client.CallContext(context.Background(), nil, "eth_blockNumber")
	s.Require().Error(err)
	s.Contains(err.Error(), vm.ErrOutOfGas.Error())
	s.Equal(0, s.fallback.calls)
}

func (s *ClientSuite) TestNodeErrorIsNotRetried() {
	var result hexutil.Bytes
	err := s.client.CallContext(context.Background(), &result, "eth_call", map[string]interface{}{}, "latest")
	s.Require().Error(err)
	s.Contains(err.Error(), "execution reverted")

	var rpcErr gethrpc.Error
	s.Require().True(errors.As(err, &rpcErr))
	s.Equal(3, rpcErr.ErrorCode())
	s.Equal(0, s.fallback.calls)
}

func (s *ClientSuite) TestAllProvidersFail() {
	s.main.down = true
	s.fallback.down = true

	err := s.client.CallContext(context.Background(), nil, "eth_blockNumber")
	s.Require().Error(err)
	s.Contains(err.Error(), ProviderMain)
	s.Contains(err.Error(), ProviderFallback)
}

func (s *ClientSuite) TestRequestReturnsRawJSON() {
	raw, err := s.client.Request(context.Background(), "eth_blockNumber")
	s.Require().NoError(err)
	s.Equal(json.RawMessage(`"0xa"`), raw)
}

func (s *ClientSuite) TestLocalHandler() {
	s.client.RegisterHandler("eth_accounts", func(ctx context.Context, args ...interface{}) (interface{}, error) {
		return []string{"0x0000000000000000000000000000000000000001"}, nil
	})

	var accounts []string
	s.Require().NoError(s.client.CallContext(context.Background(), &accounts, "eth_accounts"))
	s.Equal([]string{"0x0000000000000000000000000000000000000001"}, accounts)
	s.Equal(0, s.main.calls)

	s.client.UnregisterHandler("eth_accounts")
	_, ok := s.client.handler("eth_accounts")
	s.False(ok)
}

func (s *ClientSuite) TestBatchCall() {
	var first, second hexutil.Uint64
	batch := []gethrpc.BatchElem{
		{Method: "eth_blockNumber", Result: &first},
		{Method: "eth_blockNumber", Result: &second},
	}
	s.Require().NoError(s.client.BatchCallContext(context.Background(), batch))
	s.NoError(batch[0].Error)
	s.Equal(hexutil.Uint64(10), first)
	s.Equal(hexutil.Uint64(10), second)
}

func (s *ClientSuite) TestClosedClient() {
	s.client.Close()
	s.client.Close()

	err := s.client.CallContext(context.Background(), nil, "eth_blockNumber")
	s.ErrorIs(err, ErrClientClosed)
}

type codeError struct {
	msg  string
	code int
}

func (e codeError) Error() string  { return e.msg }
func (e codeError) ErrorCode() int { return e.code }

func TestClassify(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"revert message", errors.New("execution reverted: not owner"), true},
		{"revert code", codeError{msg: "reverted", code: 3}, true},
		{"vm error", vm.ErrInsufficientBalance, true},
		{"vm error text", errors.New(vm.ErrInvalidJump.Error()), true},
		{"header not found", codeError{msg: "header not found", code: -32000}, false},
		{"rate limited", codeError{msg: "too many requests", code: -32005}, false},
		{"transport", errProviderDown, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if tc.permanent {
				require.ErrorIs(t, got, tc.err)
				require.NotEqual(t, tc.err, got)
			} else {
				require.Equal(t, tc.err, got)
			}
		})
	}
	require.NoError(t, classify(nil))
}

func TestNewClientWithoutProviders(t *testing.T) {
	_, err := NewClientWithProviders(params.NewClientConfig(""))
	require.ErrorIs(t, err, ErrNoProviders)
}

func TestRateLimiterRespectsContext(t *testing.T) {
	config := params.NewClientConfig("")
	config.RequestsPerSecond = 1

	client, err := NewClientWithProviders(config, newInProc(t, &testService{blockNumber: 1}))
	require.NoError(t, err)
	defer client.Close()

	// the first call consumes the only token
	require.NoError(t, client.CallContext(context.Background(), nil, "eth_blockNumber"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, client.CallContext(ctx, nil, "eth_blockNumber"))
}
