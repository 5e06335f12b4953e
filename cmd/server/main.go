/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for starting the Conduit server.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/asgardeo/conduit/internal/delivery"
	"github.com/asgardeo/conduit/internal/system/cert"
	"github.com/asgardeo/conduit/internal/system/config"
	"github.com/asgardeo/conduit/internal/system/log"
)

func main() {
	logger := log.GetLogger()
	defer log.Sync()

	conduitHome := getConduitHome(logger)

	cfg := initConduitConfigurations(logger, conduitHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	journal := initDeliveryJournal(logger, cfg, conduitHome)
	if journal != nil {
		defer func() {
			if err := journal.Close(); err != nil {
				logger.Error("Failed to close the delivery journal", log.Error(err))
			}
		}()
	}

	mux := http.NewServeMux()
	registerServices(logger, mux, cfg, journal)

	startServer(logger, cfg, mux, conduitHome)
}

// getConduitHome retrieves and returns the Conduit home directory.
func getConduitHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("conduitHome", "", "Path to Conduit home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using conduitHome from command line argument", log.String("conduitHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initConduitConfigurations loads the configurations and initializes the runtime.
func initConduitConfigurations(logger *log.Logger, conduitHome string) *config.Config {
	configFilePath := path.Join(conduitHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeConduitRuntime(conduitHome, cfg); err != nil {
		logger.Fatal("Failed to initialize conduit runtime", log.Error(err))
	}
	return cfg
}

// initDeliveryJournal opens the delivery journal. It returns nil when the journal is disabled.
func initDeliveryJournal(logger *log.Logger, cfg *config.Config, conduitHome string) *delivery.Journal {
	journal, err := delivery.Initialize(cfg.Delivery, conduitHome)
	if err != nil {
		logger.Fatal("Failed to initialize the delivery journal", log.Error(err))
	}
	return journal
}

// startServer serves the multiplexer, over TLS when a certificate is configured.
func startServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, conduitHome string) {
	tlsConfig, err := cert.GetTLSConfig(cfg.Security, conduitHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	if tlsConfig == nil {
		logger.Info("TLS is not enabled, starting server without TLS")
		logger.Info("Conduit server started (HTTP)...", log.String("address", serverAddr))
		if err := server.ListenAndServe(); err != nil {
			logger.Fatal("Failed to serve HTTP requests", log.Error(err))
		}
		return
	}

	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}
	logger.Info("Conduit server started (HTTPS)...", log.String("address", serverAddr))
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		// Invocations may issue several outbound calls.
		WriteTimeout: 2*cfg.HTTPClientTimeout() + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server, serverAddr
}
