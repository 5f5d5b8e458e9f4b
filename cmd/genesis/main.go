// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// genesis builds a staking contract and its genesis block from a
// declarative JSON genesis file and prints the derived genesis block, its
// hash, and the accounts.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/albatross-pos/staking/genesis"
)

var (
	version   string
	gitCommit string
	gitTag    string

	flags = []cli.Flag{}
)

func run(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one argument: path to a genesis JSON file")
	}

	f, err := os.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open genesis file")
	}
	defer f.Close()

	cfg, err := genesis.Load(f)
	if err != nil {
		return err
	}

	block, _, accounts, err := cfg.BuildGenesis()
	if err != nil {
		return err
	}

	fmt.Printf("Genesis Block: %x\n", block.Hash())
	spew.Dump(block)
	fmt.Println()
	fmt.Println("Genesis Accounts:")
	spew.Dump(accounts)
	return nil
}

func main() {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	app := cli.App{
		Version:   fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta),
		Name:      "genesis",
		Usage:     "build a staking contract genesis block from a JSON config",
		Copyright: "2025 The Albatross developers",
		Flags:     flags,
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
