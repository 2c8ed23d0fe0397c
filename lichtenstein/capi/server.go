// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package capi serves the command API used to inspect and change the render
// pipeline's mappings at runtime.
package capi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Server is a command API server
type Server struct {
	addr     string
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new command API server.
//
// Unlike net/http server's ListenAndServe, Listen() and Serve() are separate
// so the address is bound before the render loop starts. A port of 0 makes
// the OS allocate one.
func NewServer(addr string, services Services) *Server {
	return &Server{
		addr:   addr,
		server: &http.Server{Handler: NewRouter(services)},
	}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	log.Debugf("Command API server listening on %s", s.addr)

	return nil
}

func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests until the server fails or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()

	if s.listener == nil {
		return errors.New("command API server is not listening")
	}

	select {
	case err := <-s.serveAsync():
		return err

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveAsync() chan error {
	errors := make(chan error, 1)
	go func() {
		errors <- s.server.Serve(s.listener)
	}()

	return errors
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// URL is the full server url for endpoint.
func (s *Server) URL(endpoint string) string {
	return fmt.Sprintf("http://%s%s", s.addr, endpoint)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Info("Command API server closed")
	}
	return err
}

// Shutdown gracefully shuts down server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
