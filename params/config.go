package params

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	validator "gopkg.in/go-playground/validator.v9"
)

const (
	// DefaultRPCCallTimeout bounds a single JSON-RPC round trip.
	DefaultRPCCallTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the transport rate limit. Zero disables limiting.
	DefaultRequestsPerSecond = 50

	// DefaultBlockPollInterval is how often the block tracker asks for the head.
	DefaultBlockPollInterval = 4 * time.Second

	// DefaultReceiptPollInterval is the initial delay between receipt lookups.
	DefaultReceiptPollInterval = time.Second

	// DefaultExplorerCacheSize is the number of headers kept by hash.
	DefaultExplorerCacheSize = 256

	// DefaultGasPriceTTL is how long a suggested gas price is reused.
	DefaultGasPriceTTL = 10 * time.Second

	// LocalRPCURL is used when no upstream URL is given.
	LocalRPCURL = "http://localhost:8545"
)

// ----------
// UpstreamRPCConfig
// ----------

// UpstreamRPCConfig stores configuration for the JSON-RPC node the client talks to.
type UpstreamRPCConfig struct {
	// URL sets the rpc upstream host address for communication with
	// a non-local node.
	URL string `validate:"required"`

	// FallbackURLs are tried in order when the main URL fails or its circuit is open.
	FallbackURLs []string
}

// ----------
// CircuitBreakerConfig
// ----------

// CircuitBreakerConfig holds the hystrix settings shared by every provider circuit.
// Durations are in milliseconds, as hystrix expects.
type CircuitBreakerConfig struct {
	Timeout                int `validate:"gte=0"`
	MaxConcurrentRequests  int `validate:"gte=0"`
	RequestVolumeThreshold int `validate:"gte=0"`
	SleepWindow            int `validate:"gte=0"`
	ErrorPercentThreshold  int `validate:"gte=0,lte=100"`
}

// ----------
// LogSettings
// ----------

// LogSettings configures the zap logger.
type LogSettings struct {
	// Level defines minimum log level. Valid names are "ERROR", "WARN", "INFO" and "DEBUG".
	Level string `validate:"omitempty,eq=ERROR|eq=WARN|eq=INFO|eq=DEBUG"`

	// File is filename where logs get written to. Empty means stderr.
	File string

	// MaxSize is the size in megabytes before the log file is rotated.
	MaxSize int `validate:"gte=0"`

	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `validate:"gte=0"`

	// CompressRotated gzips rotated log files.
	CompressRotated bool

	// JSON switches the encoder from console to JSON.
	JSON bool
}

// ----------
// ClientConfig
// ----------

// ClientConfig is the configuration of the facade and its collaborators.
type ClientConfig struct {
	// UpstreamConfig describes the JSON-RPC node.
	UpstreamConfig UpstreamRPCConfig `json:"UpstreamConfig"`

	// ChainID is used to sign transactions. Zero means "ask the node".
	ChainID uint64

	// RPCCallTimeout bounds a single call when the caller context has no deadline.
	RPCCallTimeout time.Duration

	// RequestsPerSecond limits outgoing calls. Zero disables the limiter.
	RequestsPerSecond int `validate:"gte=0"`

	// CircuitBreaker configures provider failover.
	CircuitBreaker CircuitBreakerConfig `json:"CircuitBreaker"`

	// BlockPollInterval is the block tracker polling period.
	BlockPollInterval time.Duration

	// ReceiptPollInterval is the first backoff step when waiting for receipts.
	ReceiptPollInterval time.Duration

	// ExplorerCacheSize is the number of headers cached by the explorer.
	ExplorerCacheSize int `validate:"gte=0"`

	// GasPriceTTL is how long a suggested gas price is reused.
	GasPriceTTL time.Duration

	// LogSettings configures logging.
	LogSettings LogSettings `json:"LogSettings"`
}

// NewClientConfig creates a configuration with defaults pointing at the given URL.
// Important: the returned config is not validated.
func NewClientConfig(upstreamURL string) *ClientConfig {
	if upstreamURL == "" {
		upstreamURL = LocalRPCURL
	}
	return &ClientConfig{
		UpstreamConfig: UpstreamRPCConfig{
			URL: upstreamURL,
		},
		RPCCallTimeout:    DefaultRPCCallTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		CircuitBreaker: CircuitBreakerConfig{
			Timeout:                int(DefaultRPCCallTimeout / time.Millisecond),
			MaxConcurrentRequests:  100,
			RequestVolumeThreshold: 20,
			SleepWindow:            5000,
			ErrorPercentThreshold:  50,
		},
		BlockPollInterval:   DefaultBlockPollInterval,
		ReceiptPollInterval: DefaultReceiptPollInterval,
		ExplorerCacheSize:   DefaultExplorerCacheSize,
		GasPriceTTL:         DefaultGasPriceTTL,
		LogSettings: LogSettings{
			Level:      "INFO",
			MaxSize:    100,
			MaxBackups: 3,
		},
	}
}

// NewConfigFromJSON parses incoming JSON on top of the defaults and validates the result.
func NewConfigFromJSON(configJSON string) (*ClientConfig, error) {
	config := NewClientConfig("")

	if err := loadConfigFromJSON(configJSON, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadClientConfigFromFile reads a JSON file on top of the defaults and validates the result.
func LoadClientConfigFromFile(path string) (*ClientConfig, error) {
	config := NewClientConfig("")

	if err := loadConfigFromFile(path, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadConfigFromJSON(configJSON string, config *ClientConfig) error {
	decoder := json.NewDecoder(strings.NewReader(configJSON))
	// override default configuration with values by JSON input
	return decoder.Decode(&config)
}

func loadConfigFromFile(path string, config *ClientConfig) error {
	jsonConfig, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return loadConfigFromJSON(string(jsonConfig), config)
}

// NewValidator returns the validator used for every config struct.
func NewValidator() *validator.Validate {
	return validator.New()
}

// Validate checks if ClientConfig fields have valid values.
//
// A single error for a struct has the following format:
//
//	Key: 'ClientConfig.UpstreamConfig.URL' Error:Field validation for 'URL' failed on the 'required' tag
func (c *ClientConfig) Validate() error {
	validate := NewValidator()

	if err := validate.Struct(c); err != nil {
		return err
	}

	if err := c.UpstreamConfig.Validate(validate); err != nil {
		return err
	}

	if c.RPCCallTimeout < 0 {
		return fmt.Errorf("RPCCallTimeout must not be negative, got %s", c.RPCCallTimeout)
	}

	if c.BlockPollInterval <= 0 {
		return fmt.Errorf("BlockPollInterval must be positive, got %s", c.BlockPollInterval)
	}

	if c.ReceiptPollInterval <= 0 {
		return fmt.Errorf("ReceiptPollInterval must be positive, got %s", c.ReceiptPollInterval)
	}

	return nil
}

// Validate validates the UpstreamRPCConfig struct and returns an error if inconsistent values are found
func (c *UpstreamRPCConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	for _, raw := range append([]string{c.URL}, c.FallbackURLs...) {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("UpstreamRPCConfig URL '%s' is invalid: %v", raw, err.Error())
		}
	}

	return nil
}

// URLs returns the main URL followed by the fallbacks.
func (c UpstreamRPCConfig) URLs() []string {
	urls := make([]string, 0, len(c.FallbackURLs)+1)
	urls = append(urls, c.URL)
	return append(urls, c.FallbackURLs...)
}

// String dumps configuration as JSON.
func (c *ClientConfig) String() string {
	data, _ := json.MarshalIndent(c, "", "    ")
	return string(data)
}
