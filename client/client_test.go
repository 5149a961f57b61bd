package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/ethfacade/account"
	"github.com/status-im/ethfacade/client"
	"github.com/status-im/ethfacade/crypto"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/transactions"
	"github.com/status-im/ethfacade/transactions/fake"
)

const testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

const getterABI = `[{"type":"function","name":"get","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}]`

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

type ClientSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	server *gethrpc.Server
	eth    *fake.MockEthAPI
	client *client.Client
}

func (s *ClientSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.server, s.eth = fake.NewTestServer(s.ctrl)
	config := params.NewClientConfig("")
	config.ChainID = 1337
	transport, err := rpc.NewClientWithProviders(config, gethrpc.DialInProc(s.server))
	s.Require().NoError(err)
	s.client, err = client.NewWithTransport(transport, config)
	s.Require().NoError(err)
}

func (s *ClientSuite) TearDownTest() {
	_ = s.client.Cleanup()
	s.ctrl.Finish()
	s.server.Stop()
}

func (s *ClientSuite) TestSignWithoutAccount() {
	_, err := s.client.Sign(context.Background(), []byte("hello"))
	s.Require().Error(err)
	s.True(account.IsAccountRequired(err))
	s.Contains(err.Error(), "an account is required")

	_, err = s.client.Send(context.Background(), transactions.SendTxArgs{})
	s.True(account.IsAccountRequired(err))
}

func (s *ClientSuite) TestGasAndCallFallBackToReadonly() {
	to := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	s.eth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, args fake.CallArgs) (hexutil.Uint64, error) {
			s.Equal(common.Address{}, args.From)
			return hexutil.Uint64(21000), nil
		})
	gas, err := s.client.Simulate(context.Background(), ethereum.CallMsg{To: &to})
	s.Require().NoError(err)
	s.Equal(uint64(21000), gas)

	s.eth.EXPECT().Call(gomock.Any(), gomock.Any(), "latest").Return(hexutil.Bytes{0x01}, nil)
	out, err := s.client.VM(context.Background(), ethereum.CallMsg{To: &to}, nil)
	s.Require().NoError(err)
	s.Equal(hexutil.Bytes{0x01}, out)
}

func (s *ClientSuite) TestUsePrivateKeySigns() {
	id, err := s.client.UsePrivateKey(testKey)
	s.Require().NoError(err)

	current, ok := s.client.Account()
	s.Require().True(ok)
	s.Equal(id, current.ID())

	sig, err := s.client.Sign(context.Background(), []byte("hello"))
	s.Require().NoError(err)
	recovered, err := s.client.Recover([]byte("hello"), sig)
	s.Require().NoError(err)
	s.Equal(id, recovered.Hex())
}

func (s *ClientSuite) TestUseOrdering() {
	a := account.NewReadonly(s.client.Transport(), common.HexToAddress("0x0a"))
	b := account.NewReadonly(s.client.Transport(), common.HexToAddress("0x0b"))
	c := account.NewReadonly(s.client.Transport(), common.HexToAddress("0x0c"))

	s.client.UseAccount(a)
	s.client.UseAccount(b)
	s.client.UseAccount(c)
	s.client.UseAccount(a)

	ids := make([]string, 0, 3)
	for _, acc := range s.client.Accounts() {
		ids = append(ids, acc.ID())
	}
	s.Equal([]string{a.ID(), c.ID(), b.ID()}, ids)

	id, ok := s.client.UseAccountID(b.ID())
	s.True(ok)
	s.Equal(b.ID(), id)
	current, _ := s.client.Account()
	s.Equal(b.ID(), current.ID())

	_, ok = s.client.UseAccountID("0xmissing")
	s.False(ok)
}

func (s *ClientSuite) TestUseOnlineAccountOnSameTransport() {
	remote := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.eth.EXPECT().Accounts(gomock.Any()).Return([]common.Address{remote}, nil)

	id, err := s.client.UseOnlineAccount(context.Background(), client.OnlineOptions{})
	s.Require().NoError(err)
	s.Equal(remote.Hex(), id)

	s.eth.EXPECT().Sign(gomock.Any(), remote, hexutil.Bytes("hi")).Return(hexutil.Bytes{0x02}, nil)
	sig, err := s.client.Sign(context.Background(), []byte("hi"))
	s.Require().NoError(err)
	s.Equal(hexutil.Bytes{0x02}, sig)
}

func (s *ClientSuite) TestUseOnlineAccountByURLTwice() {
	node := httptest.NewServer(s.server)
	defer node.Close()

	remote := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.eth.EXPECT().Accounts(gomock.Any()).Return([]common.Address{remote}, nil).Times(2)

	id, err := s.client.UseOnlineAccount(context.Background(), client.OnlineOptions{URL: node.URL})
	s.Require().NoError(err)
	s.Equal(remote.Hex(), id)
	s.Equal(1, s.client.OnlineTransports())

	id, err = s.client.AddOnlineAccount(context.Background(), client.OnlineOptions{URL: node.URL})
	s.Require().NoError(err)
	s.Equal(remote.Hex(), id)
	s.Equal(1, s.client.OnlineTransports())
	s.Len(s.client.Accounts(), 1)
}

func (s *ClientSuite) TestAccountsAnsweredFromRegistry() {
	raw, err := s.client.Request(context.Background(), client.AccountsMethodName)
	s.Require().NoError(err)
	var addresses []common.Address
	s.Require().NoError(json.Unmarshal(raw, &addresses))
	s.Empty(addresses)

	id, err := s.client.UsePrivateKey(testKey)
	s.Require().NoError(err)

	raw, err = s.client.Request(context.Background(), client.AccountsMethodName)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, &addresses))
	s.Equal([]common.Address{common.HexToAddress(id)}, addresses)
}

func (s *ClientSuite) TestContractCallUsesFallback() {
	address := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	c, err := s.client.Contract(getterABI, client.ContractOptions{Address: address})
	s.Require().NoError(err)

	s.eth.EXPECT().Call(gomock.Any(), gomock.Any(), "latest").DoAndReturn(
		func(_ context.Context, args fake.CallArgs, _ string) (hexutil.Bytes, error) {
			s.Equal(address, *args.To)
			return common.LeftPadBytes([]byte{42}, 32), nil
		})

	inv, err := c.Method("get")
	s.Require().NoError(err)
	out, err := inv.Call(context.Background(), nil)
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(0, big.NewInt(42).Cmp(out[0].(*big.Int)))
}

func (s *ClientSuite) TestCleanup() {
	closing := &closingAccount{
		Readonly: account.NewReadonly(s.client.Transport(), common.HexToAddress("0x0d")),
		err:      errors.New("boom"),
	}
	s.client.AddAccount(closing)

	err := s.client.Cleanup()
	s.Require().Error(err)
	s.Contains(err.Error(), "boom")
	s.True(closing.closed)

	s.ErrorIs(s.client.Cleanup(), client.ErrAlreadyCleanedUp)

	_, err = s.client.Request(context.Background(), "eth_blockNumber")
	s.ErrorIs(err, rpc.ErrClientClosed)
}

type closingAccount struct {
	*account.Readonly
	err    error
	closed bool
}

func (a *closingAccount) Close() error {
	a.closed = true
	return a.err
}

func TestNewWithTransportValidatesConfig(t *testing.T) {
	server := gethrpc.NewServer()
	t.Cleanup(server.Stop)
	transport, err := rpc.NewClientWithProviders(params.NewClientConfig(""), gethrpc.DialInProc(server))
	require.NoError(t, err)
	t.Cleanup(transport.Close)

	_, err = client.NewWithTransport(transport, &params.ClientConfig{})
	require.Error(t, err)

	config := params.NewClientConfig("")
	config.BlockPollInterval = 0
	_, err = client.NewWithTransport(transport, config)
	require.Error(t, err)
	require.Contains(t, err.Error(), "BlockPollInterval")
}

func TestHashing(t *testing.T) {
	c := newOfflineClient(t)

	hash, err := c.Keccak256("")
	require.NoError(t, err)
	require.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hash.Hex())

	for _, alias := range []func(interface{}) (common.Hash, error){c.Keccak, c.Sha3, c.Sha256} {
		h, err := alias([]byte{})
		require.NoError(t, err)
		require.Equal(t, hash, h)
	}

	signatureLike, err := c.Keccak256(hexutil.Bytes{})
	require.NoError(t, err)
	require.Equal(t, hash, signatureLike)

	_, err = c.Keccak256(42)
	require.ErrorIs(t, err, crypto.ErrInvalidHashInput)

	for _, packed := range []func(...interface{}) (common.Hash, error){
		c.TightlyPackedKeccak256, c.TightlyPackedKeccak, c.TightlyPackedSha3, c.TightlyPackedSha256, c.SoliditySha3,
	} {
		_, err := packed("a", 1)
		require.ErrorIs(t, err, crypto.ErrNotAvailable)
		require.Contains(t, err.Error(), "not available")
	}
}

func TestUnitsAndAddresses(t *testing.T) {
	c := newOfflineClient(t)

	wei, err := c.EtherToWei("1.5")
	require.NoError(t, err)
	require.Equal(t, "1500000000000000000", wei)

	checksummed, err := c.Checksum("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	require.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", checksummed)
	require.True(t, c.IsValidAddress(checksummed))

	q, err := c.Quantity(255)
	require.NoError(t, err)
	require.Equal(t, "0xff", q)
}

func newOfflineClient(t *testing.T) *client.Client {
	server := gethrpc.NewServer()
	t.Cleanup(server.Stop)
	config := params.NewClientConfig("")
	transport, err := rpc.NewClientWithProviders(config, gethrpc.DialInProc(server))
	require.NoError(t, err)
	c, err := client.NewWithTransport(transport, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Cleanup() })
	return c
}
