package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/app"
	cascaded "github.com/cascadefund/cascade/cmd/cascaded/app"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/x/cash"
	"github.com/cascadefund/cascade/x/distribution"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"
)

func genesisCommand() *cli.Command {
	return &cli.Command{
		Name:      "genesis",
		Usage:     "load the genesis file into an empty database",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.Wrap(errors.ErrInput, "genesis file path required")
			}
			gen, err := app.LoadGenesis(c.Args().First())
			if err != nil {
				return err
			}
			return withHost(c, func(host *app.Host) error {
				if err := host.InitChain(gen, cascaded.Initializers()); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "genesis %q loaded\n", gen.Name)
				return nil
			})
		},
	}
}

func approveCommand() *cli.Command {
	return &cli.Command{
		Name:  "approve",
		Usage: "allow a node to collect donations from the signer account",
		Flags: []cli.Flag{
			newSignerFlag(),
			newTickerFlag(),
			newNodeFlag(),
			newAmountFlag(),
		},
		Action: func(c *cli.Context) error {
			signers, err := parseSigners(c)
			if err != nil {
				return err
			}
			owner := signers[0].Address()
			return withHost(c, func(host *app.Host) error {
				nonce, err := walletNonce(host, c.String(tickerFlag), owner)
				if err != nil {
					return err
				}
				msg := &cash.ApproveMsg{
					Metadata: &cascade.Metadata{Schema: 1},
					Ticker:   c.String(tickerFlag),
					Nonce:    nonce,
					Owner:    owner,
					Spender:  parseNode(c.String(nodeFlag)),
					Amount:   c.Int64(amountFlag),
				}
				if _, err := host.Deliver(context.Background(), app.NewTx(msg, signers...)); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s may collect %d %s from %s\n", msg.Spender, msg.Amount, msg.Ticker, owner)
				return nil
			})
		},
	}
}

func donateCommand() *cli.Command {
	return &cli.Command{
		Name:  "donate",
		Usage: "donate to a node and distribute the donation through the cascade",
		Flags: []cli.Flag{
			newSignerFlag(),
			newNodeFlag(),
			newAmountFlag(),
			&cli.BoolFlag{
				Name:  dryRunFlag,
				Usage: "only check the donation, do not modify the state",
			},
		},
		Action: func(c *cli.Context) error {
			signers, err := parseSigners(c)
			if err != nil {
				return err
			}
			msg := &distribution.DonateMsg{
				Metadata: &cascade.Metadata{Schema: 1},
				Node:     parseNode(c.String(nodeFlag)),
				Donor:    signers[0].Address(),
				Amount:   c.Int64(amountFlag),
			}
			return withHost(c, func(host *app.Host) error {
				tx := app.NewTx(msg, signers...)
				if c.Bool(dryRunFlag) {
					if _, err := host.Check(context.Background(), tx); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "donation is valid")
					return nil
				}
				res, err := host.Deliver(context.Background(), tx)
				if err != nil {
					return err
				}
				var rec distribution.Receipt
				if err := cascade.Unmarshal(res.Data, &rec); err != nil {
					return err
				}
				return printJSON(c, &rec)
			})
		},
	}
}

func childrenCommand() *cli.Command {
	return &cli.Command{
		Name:  "children",
		Usage: "manage the recipients of a node",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "print the recipients of a node",
				Flags: []cli.Flag{newNodeFlag()},
				Action: func(c *cli.Context) error {
					node := parseNode(c.String(nodeFlag))
					return withHost(c, func(host *app.Host) error {
						models, err := host.Query("/recipients", node)
						if err != nil {
							return err
						}
						recipients := []*distribution.Recipient{}
						if len(models) != 0 {
							var list distribution.RecipientList
							if err := cascade.Unmarshal(models[0].Value, &list); err != nil {
								return errors.Wrap(errors.ErrRegistryRead, err.Error())
							}
							recipients = list.Recipients
						}
						return printJSON(c, recipients)
					})
				},
			},
			{
				Name:      "set",
				Usage:     "replace the recipients of a node with the ones listed in the JSON file",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{newSignerFlag(), newNodeFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.Wrap(errors.ErrInput, "recipients file path required")
					}
					signers, err := parseSigners(c)
					if err != nil {
						return err
					}
					recipients, err := loadRecipients(c.Args().First())
					if err != nil {
						return err
					}
					msg := &distribution.SetChildrenMsg{
						Metadata:   &cascade.Metadata{Schema: 1},
						Node:       parseNode(c.String(nodeFlag)),
						Recipients: recipients,
					}
					return withHost(c, func(host *app.Host) error {
						if _, err := host.Deliver(context.Background(), app.NewTx(msg, signers...)); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%d recipients set\n", len(recipients))
						return nil
					})
				},
			},
		},
	}
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "print the balance of an account or a node",
		ArgsUsage: "ADDRESS|NODE",
		Flags:     []cli.Flag{newTickerFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.Wrap(errors.ErrInput, "address required")
			}
			owner := parseNode(c.Args().First())
			return withHost(c, func(host *app.Host) error {
				w, err := wallet(host, c.String(tickerFlag), owner)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%d %s\n", w.Balance, c.String(tickerFlag))
				return nil
			})
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, cascade.Version())
			return nil
		},
	}
}

// withHost opens the configured database, calls fn and commits the state.
// Nothing is committed if fn fails.
func withHost(c *cli.Context, fn func(*app.Host) error) error {
	conf, err := LoadConfig(c.String(configFlag))
	if err != nil {
		return err
	}
	if c.IsSet(dbFlag) {
		conf.Store.Path = c.String(dbFlag)
	}
	if c.IsSet(logLevelFlag) {
		conf.Log.Level = c.String(logLevelFlag)
	}
	if c.IsSet(logFormatFlag) {
		conf.Log.Format = c.String(logFormatFlag)
	}
	if c.IsSet(debugFlag) {
		conf.Debug = c.Bool(debugFlag)
	}
	logger, err := conf.Logger(c.App.ErrWriter)
	if err != nil {
		return err
	}

	opts := cascaded.Options{
		DBPath: conf.Store.Path,
		Logger: logger.With("module", "cascaded"),
		Debug:  conf.Debug,
	}
	var registry *prometheus.Registry
	if c.Bool(metricsFlag) {
		registry = prometheus.NewRegistry()
		opts.Registry = registry
	}

	host, db, err := cascaded.Application(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(host); err != nil {
		return err
	}
	if _, err := host.Commit(); err != nil {
		return err
	}
	if registry != nil {
		return dumpMetrics(c.App.ErrWriter, registry)
	}
	return nil
}

// dumpMetrics writes all collected metrics in the prometheus text format.
func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}

func parseSigners(c *cli.Context) ([]cascade.Condition, error) {
	raw := c.StringSlice(signerFlag)
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "at least one signer required")
	}
	signers := make([]cascade.Condition, 0, len(raw))
	for _, s := range raw {
		cond, err := cascade.ParseCondition(s)
		if err != nil {
			return nil, errors.Wrapf(err, "signer %q", s)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// parseNode accepts either an address or a node name.
func parseNode(s string) cascade.Address {
	if addr, err := cascade.ParseAddress(s); err == nil && addr != nil {
		return addr
	}
	return distribution.NodeAddress(s)
}

func wallet(host *app.Host, ticker string, owner cascade.Address) (*cash.Wallet, error) {
	models, err := host.Query("/wallets", cash.WalletKey(ticker, owner))
	if err != nil {
		return nil, err
	}
	var w cash.Wallet
	if len(models) == 0 {
		return &w, nil
	}
	if err := cascade.Unmarshal(models[0].Value, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func walletNonce(host *app.Host, ticker string, owner cascade.Address) (int64, error) {
	w, err := wallet(host, ticker, owner)
	if err != nil {
		return 0, err
	}
	return w.Nonce, nil
}

// loadRecipients reads a JSON list of recipients in the genesis format.
func loadRecipients(path string) ([]*distribution.Recipient, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var declared []distribution.GenesisRecipient
	if err := json.Unmarshal(raw, &declared); err != nil {
		return nil, errors.Wrapf(errors.ErrEncoding, "recipients file: %s", err)
	}
	recipients := make([]*distribution.Recipient, 0, len(declared))
	for i, d := range declared {
		r, err := d.Recipient()
		if err != nil {
			return nil, errors.Wrapf(err, "recipient %d", i)
		}
		recipients = append(recipients, r)
	}
	return recipients, nil
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
