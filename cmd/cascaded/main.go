/*
Command cascaded manages a local cascade: it loads the genesis, accepts
donations and prints the resulting payouts.

The state is kept in a leveldb database. Each command opens the database,
executes a single transaction and commits it.
*/
package main

import (
	"fmt"
	"os"

	"github.com/cascadefund/cascade"
	"github.com/urfave/cli/v2"
)

// Flag names. Every app gets its own flag instances because parsed values
// are stored in the flag.
const (
	configFlag    = "config"
	dbFlag        = "db"
	logLevelFlag  = "log-level"
	logFormatFlag = "log-format"
	debugFlag     = "debug"
	metricsFlag   = "metrics"

	signerFlag = "signer"
	tickerFlag = "ticker"
	nodeFlag   = "node"
	amountFlag = "amount"
	dryRunFlag = "dry-run"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "Specify config `FILE`",
			EnvVars: []string{"CASCADE_CONFIG"},
		},
		&cli.StringFlag{
			Name:  dbFlag,
			Usage: "database `DIR`, overrides the config file",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "log `LEVEL` (debug, info, error, none), overrides the config file",
		},
		&cli.StringFlag{
			Name:  logFormatFlag,
			Usage: "log `FORMAT` (plain, json), overrides the config file",
		},
		&cli.BoolFlag{
			Name:  debugFlag,
			Usage: "return full error messages",
		},
		&cli.BoolFlag{
			Name:  metricsFlag,
			Usage: "print collected metrics to stderr after the command",
		},
	}
}

func newSignerFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    signerFlag,
		Aliases: []string{"s"},
		Usage:   "`CONDITION` (ext/type/HEXDATA) authorizing the transaction, can be repeated",
	}
}

func newTickerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  tickerFlag,
		Usage: "token `TICKER`",
		Value: "IOV",
	}
}

func newNodeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     nodeFlag,
		Aliases:  []string{"n"},
		Usage:    "node `NAME` or address",
		Required: true,
	}
}

func newAmountFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     amountFlag,
		Aliases:  []string{"a"},
		Usage:    "token `AMOUNT`",
		Required: true,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cascaded"
	app.Usage = "recursive cascading donations"
	app.Version = cascade.Version()
	app.HideVersion = true
	app.Flags = globalFlags()
	app.Commands = []*cli.Command{
		genesisCommand(),
		approveCommand(),
		donateCommand(),
		childrenCommand(),
		balanceCommand(),
		versionCommand(),
	}
	return app
}
