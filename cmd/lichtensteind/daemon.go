// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"

	"go.lichtenstein.dev/lichtenstein/capi"
	"go.lichtenstein.dev/lichtenstein/config"
	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/render"
	"go.lichtenstein.dev/lichtenstein/store"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

type daemon struct {
	groups   *store.Store
	fb       *framebuffer.Framebuffer
	pipeline *render.Pipeline
	server   *capi.Server
}

func newDaemon(cfg *config.Config) (*daemon, error) {
	groups, err := store.NewStore(cfg.Groups)
	if err != nil {
		return nil, err
	}

	size, err := cfg.FramebufferSize(groups)
	if err != nil {
		return nil, err
	}
	log.WithField("groups", groups.Size()).WithField("pixels", size).Info("Allocating framebuffer")

	fb := framebuffer.New(size)
	pipeline := render.NewPipeline(fb, cfg.PipelineConfig())

	server := capi.NewServer(cfg.Command.Listen, capi.Services{
		Pipeline:    pipeline,
		Groups:      groups,
		Framebuffer: fb,
	})

	return &daemon{groups: groups, fb: fb, pipeline: pipeline, server: server}, nil
}

// run serves the command API and renders until ctx is cancelled or the API
// server fails, then stops the render loop.
func run(ctx context.Context, cfg *config.Config) error {
	d, err := newDaemon(cfg)
	if err != nil {
		return err
	}

	if err := d.server.Listen(); err != nil {
		return err
	}
	if err := d.pipeline.Start(); err != nil {
		d.server.Close()
		return err
	}
	log.WithField("listen", d.server.Addr()).Info("lichtensteind started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.server.Serve(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		d.pipeline.Terminate()
		d.pipeline.Close()
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
