// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server serves metrics over HTTP.
type Server struct {
	addr   string
	server *http.Server
	// Address actually bound, once started
	bound net.Addr
}

// NewServer constructs a metrics server for a given address.
func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// Handler returns the handler serving metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	//
	return mux
}

// Start binds the server's address and serves metrics in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	//
	s.bound = listener.Addr()
	s.server = &http.Server{Handler: Handler()}
	//
	log.Infof("serving metrics on http://%s/metrics", s.bound)
	//
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server failed: %v", err)
		}
	}()
	//
	return nil
}

// Addr returns the address to which the server is bound, or nil if it has not
// been started.
func (s *Server) Addr() net.Addr {
	return s.bound
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	//
	return nil
}
