// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"github.com/usedbytes/log"
)

func main() {
	app := &cli.App{
		Name:  "lbrc",
		Usage: "A tool for inspecting and editing light controller firmware images",
		// Just ignore errors - we'll handle them ourselves in main()
		ExitErrHandler: func(c *cli.Context, e error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "verbose",
				Aliases:  []string{"v"},
				Usage:    "Enable more output",
				Required: false,
				Value:    false,
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Load tool settings from a TOML file",
				Required: false,
			},
		},
	}

	outputFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Output file. A .bin extension writes a raw image, anything else Intel HEX",
			Required: true,
		}
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "List the sections found in an image",
			ArgsUsage: "IMAGE",
			Action:    infoAction,
		},
		{
			Name:      "decode",
			Usage:     "Decode an image's configuration into a JSON snapshot",
			ArgsUsage: "IMAGE",
			Action:    decodeAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "Snapshot file to write (default stdout)",
					Required: false,
				},
			},
		},
		{
			Name:      "encode",
			Usage:     "Write a JSON snapshot into an image",
			ArgsUsage: "IMAGE SNAPSHOT",
			Action:    encodeAction,
			Flags:     []cli.Flag{outputFlag()},
		},
		{
			Name:      "programs",
			Usage:     "Disassemble the light programs in an image",
			ArgsUsage: "IMAGE",
			Action:    programsAction,
		},
		{
			Name:      "watch",
			Usage:     "Re-encode whenever the snapshot changes",
			ArgsUsage: "IMAGE SNAPSHOT",
			Action:    watchAction,
			Flags:     []cli.Flag{outputFlag()},
		},
	}

	app.Before = func(ctx *cli.Context) error {
		log.SetUseLog(false)

		log.SetVerbose(ctx.Bool("verbose"))
		log.Verboseln("Extra output enabled.")
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Println("ERROR:", err)
		if v, ok := err.(cli.ExitCoder); ok {
			os.Exit(v.ExitCode())
		} else {
			os.Exit(1)
		}
	}
}
