// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"github.com/usedbytes/lbrc-tools/lib/codec"
	"github.com/usedbytes/lbrc-tools/lib/config"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/ihex"
	"github.com/usedbytes/lbrc-tools/lib/snapshot"
	"github.com/usedbytes/lbrc-tools/lib/watch"
	"github.com/usedbytes/log"
)

func loadConfig(fs afero.Fs, ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(fs, ctx.String("config"))
	if err != nil {
		return nil, err
	}
	log.Verbose(cfg)

	return cfg, nil
}

func loadImage(fs afero.Fs, cfg *config.Config, path string) (*ihex.Container, *firmware.Image, error) {
	c, err := ihex.Load(fs, path, cfg.Hex.Fill)
	if err != nil {
		return nil, nil, err
	}

	img, err := firmware.NewImage(c.Data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "scanning '%s'", path)
	}

	for _, s := range img.Skipped() {
		log.Println("WARNING: skipped", s)
	}

	return c, img, nil
}

func args(ctx *cli.Context, names ...string) error {
	if ctx.Args().Len() != len(names) {
		return fmt.Errorf("expected arguments: %v", names)
	}
	return nil
}

func decodeFile(fs afero.Fs, cfg *config.Config, imagePath string) (*codec.Snapshot, error) {
	_, img, err := loadImage(fs, cfg, imagePath)
	if err != nil {
		return nil, err
	}

	return codec.DecodeAll(img)
}

// encodeFiles applies the snapshot at snapPath to the image at imagePath
// and writes the result to outPath.
func encodeFiles(fs afero.Fs, cfg *config.Config, imagePath, snapPath, outPath string) error {
	c, img, err := loadImage(fs, cfg, imagePath)
	if err != nil {
		return err
	}

	snap, err := snapshot.Load(fs, snapPath)
	if err != nil {
		return err
	}

	if len(snap.Gamma.GammaValue) == 0 {
		if len(cfg.Gamma.Default) != 0 {
			snap.Gamma.GammaValue = cfg.Gamma.Default
		} else {
			cur, err := codec.DecodeGamma(img)
			if err != nil {
				return err
			}
			snap.Gamma = cur
		}
		log.Verbosef("No gamma in snapshot, using '%s'\n", snap.Gamma.GammaValue)
	}

	err = snap.Config.Validate()
	if err != nil {
		return err
	}

	err = codec.EncodeAll(img, snap)
	if err != nil {
		return err
	}

	// img shares its buffer with the container
	err = ihex.Save(fs, outPath, c, cfg.Hex.RecordLength)
	if err != nil {
		return err
	}

	log.Printf("Wrote %s (CRC16 0x%04x)\n", outPath, img.Checksum())

	return nil
}

func infoAction(ctx *cli.Context) error {
	if err := args(ctx, "IMAGE"); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, ctx)
	if err != nil {
		return err
	}

	c, img, err := loadImage(fs, cfg, ctx.Args().First())
	if err != nil {
		return err
	}

	for _, s := range c.Spans {
		log.Verbosef("Span:     0x%08x +%d\n", s.Address, s.Length)
	}
	if c.HasStart {
		log.Verbosef("Start:    0x%08x\n", c.Start)
	}
	log.Println(img)

	return nil
}

func decodeAction(ctx *cli.Context) error {
	if err := args(ctx, "IMAGE"); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, ctx)
	if err != nil {
		return err
	}

	snap, err := decodeFile(fs, cfg, ctx.Args().First())
	if err != nil {
		return err
	}
	log.Verboseln(snap)

	out := ctx.String("output")
	if len(out) == 0 {
		return snapshot.Write(os.Stdout, snap)
	}

	err = snapshot.Save(fs, out, snap)
	if err != nil {
		return err
	}
	log.Println("Wrote", out)

	return nil
}

func encodeAction(ctx *cli.Context) error {
	if err := args(ctx, "IMAGE", "SNAPSHOT"); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, ctx)
	if err != nil {
		return err
	}

	return encodeFiles(fs, cfg, ctx.Args().Get(0), ctx.Args().Get(1), ctx.String("output"))
}

func programsAction(ctx *cli.Context) error {
	if err := args(ctx, "IMAGE"); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, ctx)
	if err != nil {
		return err
	}

	_, img, err := loadImage(fs, cfg, ctx.Args().First())
	if err != nil {
		return err
	}

	text, err := codec.DecodeLightPrograms(img)
	if err != nil {
		return err
	}

	if len(text) == 0 {
		log.Println("No light programs")
		return nil
	}
	fmt.Print(text)

	return nil
}

func watchAction(ctx *cli.Context) error {
	if err := args(ctx, "IMAGE", "SNAPSHOT"); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, ctx)
	if err != nil {
		return err
	}

	imagePath, snapPath := ctx.Args().Get(0), ctx.Args().Get(1)
	out := ctx.String("output")

	encode := func() error {
		return encodeFiles(fs, cfg, imagePath, snapPath, out)
	}

	// Don't bail out on a bad snapshot, it might be mid-edit
	if err := encode(); err != nil {
		log.Println("ERROR:", err)
	}

	fw, err := watch.NewFileWatcher(snapPath)
	if err != nil {
		return err
	}
	defer fw.Stop()

	err = fw.Start(cfg.Watch.Backoff.Duration, encode)
	if err != nil {
		return err
	}

	log.Printf("Watching %s, interrupt to stop\n", fw.Path())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	return nil
}
