package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/status-im/ethfacade/client"
	"github.com/status-im/ethfacade/errors"
	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/metrics"
	"github.com/status-im/ethfacade/params"
)

const (
	RPCFlag         = "rpc"
	ConfigFlag      = "config"
	LogLevelFlag    = "log-level"
	PrivateKeyFlag  = "private-key"
	MetricsAddrFlag = "metrics-addr"
	BlockFlag       = "block"
	FromFlag        = "from"
	ValueFlag       = "value"
	DataFlag        = "data"
	WaitFlag        = "wait"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		printError(app.ErrWriter, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ethfacade",
		Usage: "Ethereum JSON-RPC client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    RPCFlag,
				Usage:   "JSON-RPC endpoint",
				Value:   params.LocalRPCURL,
				EnvVars: []string{"ETHFACADE_RPC"},
			},
			&cli.StringFlag{
				Name:  ConfigFlag,
				Usage: "JSON config file, overrides --rpc",
			},
			&cli.StringFlag{
				Name:  LogLevelFlag,
				Usage: "ERROR, WARN, INFO or DEBUG",
				Value: "WARN",
			},
			&cli.StringFlag{
				Name:    PrivateKeyFlag,
				Usage:   "hex private key used to sign",
				EnvVars: []string{"ETHFACADE_PRIVATE_KEY"},
			},
			&cli.StringFlag{
				Name:  MetricsAddrFlag,
				Usage: "serve prometheus metrics on this address",
			},
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Commands:  append(offlineCommands(), chainCommands()...),
	}
}

// withClient builds a client from the global flags, runs fn and cleans up.
func withClient(cCtx *cli.Context, fn func(ctx context.Context, c *client.Client) error) error {
	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	if err := logutils.OverrideWithSettings(config.LogSettings); err != nil {
		return err
	}
	logger := logutils.ZapLogger().Named("ethfacade")

	if addr := cCtx.String(MetricsAddrFlag); addr != "" {
		server := metrics.NewMetricsServer(addr)
		go server.Listen()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(ctx); err != nil {
				logger.Warn("failed to stop metrics server", zap.Error(err))
			}
		}()
	}

	ctx := cCtx.Context
	c, err := client.New(ctx, config)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Cleanup(); err != nil {
			logger.Warn("cleanup failed", zap.Error(err))
		}
	}()

	if key := cCtx.String(PrivateKeyFlag); key != "" {
		id, err := c.UsePrivateKey(key)
		if err != nil {
			return err
		}
		logger.Debug("using local account", zap.String("id", id))
	}

	return fn(ctx, c)
}

func loadConfig(cCtx *cli.Context) (*params.ClientConfig, error) {
	var config *params.ClientConfig
	if path := cCtx.String(ConfigFlag); path != "" {
		loaded, err := params.LoadClientConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	} else {
		config = params.NewClientConfig(cCtx.String(RPCFlag))
	}
	if cCtx.IsSet(LogLevelFlag) || cCtx.String(ConfigFlag) == "" {
		config.LogSettings.Level = cCtx.String(LogLevelFlag)
	}
	return config, config.Validate()
}

func printResult(w io.Writer, v interface{}) error {
	switch r := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, r)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, r.String())
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errors.CreateErrorResponseFromError(err).Error())
}
