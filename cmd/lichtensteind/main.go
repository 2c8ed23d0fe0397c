// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.lichtenstein.dev/lichtenstein/config"
	"go.lichtenstein.dev/lichtenstein/logging"

	log "github.com/sirupsen/logrus"
)

type options struct {
	Config          string  `short:"c" long:"config" description:"path to the TOML configuration file"`
	LogLevel        string  `long:"log-level" default:"info" description:"log level"`
	Listen          string  `long:"listen" description:"command API address, overrides command.listen"`
	FPS             float64 `long:"fps" description:"target frame rate, overrides render.pipeline.fps"`
	Threads         int     `long:"threads" description:"render threads, overrides render.pipeline.threads"`
	FramebufferSize int     `long:"framebuffer-size" description:"framebuffer size in pixels, overrides render.framebuffer.size"`
}

func main() {
	opts := getCLIArgs()
	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Invalid log level")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Apply(config.Overrides{
		FPS:             opts.FPS,
		Threads:         opts.Threads,
		Listen:          opts.Listen,
		FramebufferSize: opts.FramebufferSize,
	}); err != nil {
		log.WithError(err).Fatal("Invalid command line overrides")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("lichtensteind exited with error")
	}
	log.Info("lichtensteind stopped")
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}

	return opts
}
