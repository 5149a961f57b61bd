package params_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/ethfacade/params"
)

func TestNewClientConfigDefaults(t *testing.T) {
	c := params.NewClientConfig("")
	require.Equal(t, params.LocalRPCURL, c.UpstreamConfig.URL)
	require.Equal(t, params.DefaultRPCCallTimeout, c.RPCCallTimeout)
	require.NoError(t, c.Validate())
}

func TestNewConfigFromJSON(t *testing.T) {
	c, err := params.NewConfigFromJSON(`{
		"UpstreamConfig": {"URL": "https://mainnet.example.org", "FallbackURLs": ["https://backup.example.org"]},
		"ChainID": 1,
		"RequestsPerSecond": 10
	}`)
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.ChainID)
	require.Equal(t, 10, c.RequestsPerSecond)
	require.Equal(t, []string{"https://mainnet.example.org", "https://backup.example.org"}, c.UpstreamConfig.URLs())
	// untouched fields keep defaults
	require.Equal(t, params.DefaultBlockPollInterval, c.BlockPollInterval)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		update func(*params.ClientConfig)
		err    string
	}{
		{
			name:   "missing URL",
			update: func(c *params.ClientConfig) { c.UpstreamConfig.URL = "" },
			err:    "'required' tag",
		},
		{
			name:   "invalid fallback URL",
			update: func(c *params.ClientConfig) { c.UpstreamConfig.FallbackURLs = []string{"not a url"} },
			err:    "is invalid",
		},
		{
			name:   "invalid log level",
			update: func(c *params.ClientConfig) { c.LogSettings.Level = "LOUD" },
			err:    "Level",
		},
		{
			name:   "negative rate",
			update: func(c *params.ClientConfig) { c.RequestsPerSecond = -1 },
			err:    "RequestsPerSecond",
		},
		{
			name:   "zero poll interval",
			update: func(c *params.ClientConfig) { c.BlockPollInterval = 0 },
			err:    "BlockPollInterval",
		},
		{
			name:   "error percent out of range",
			update: func(c *params.ClientConfig) { c.CircuitBreaker.ErrorPercentThreshold = 101 },
			err:    "ErrorPercentThreshold",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := params.NewClientConfig("http://localhost:8545")
			tc.update(c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestLoadClientConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"UpstreamConfig": {"URL": "http://127.0.0.1:8545"}, "BlockPollInterval": 1000000000}`), 0600))

	c, err := params.LoadClientConfigFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8545", c.UpstreamConfig.URL)
	require.Equal(t, time.Second, c.BlockPollInterval)

	_, err = params.LoadClientConfigFromFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
