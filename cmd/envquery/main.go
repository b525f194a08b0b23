//go:build !rp2040 && !rp2350

// Command envquery sends one request frame to an envnode and prints the
// decoded answer.
//
//	envquery --if can0 methane co2 pressure
//	envquery --if vcan0 all
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"envcan-go/canbus"
)

var FLAGS = []cli.Flag{
	cli.StringFlag{
		Name:  "if",
		Value: "can0",
		Usage: "SocketCAN interface the node is attached to",
	},
	cli.DurationFlag{
		Name:  "timeout",
		Value: 500 * time.Millisecond,
		Usage: "How long to wait for the response frames",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "envquery"
	app.Usage = "Query an environmental CAN node"
	app.ArgsUsage = "[methane|co2|co|temperature|humidity|pressure|all ...]"
	app.Flags = FLAGS
	app.Action = queryCommand

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "envquery:", err)
		os.Exit(1)
	}
}

func queryCommand(context *cli.Context) error {
	req, err := parseRequest(context.Args())
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	tx, err := canbus.OpenSocketCAN(context.String("if"), 16)
	if err != nil {
		return err
	}
	defer tx.Close()

	r, err := query(tx, req, context.Duration("timeout"))
	if err != nil {
		return err
	}
	printReading(os.Stdout, req, r)
	return nil
}
