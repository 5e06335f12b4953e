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

// Package cert loads the TLS configuration of the server.
package cert

import (
	"crypto/tls"
	"errors"
	"os"
	"path/filepath"

	"github.com/asgardeo/conduit/internal/system/config"
)

// GetTLSConfig loads the TLS configuration from the certificate and key files. It returns
// nil when no certificate is configured.
func GetTLSConfig(security config.SecurityConfig, home string) (*tls.Config, error) {
	if security.CertFile == "" && security.KeyFile == "" {
		return nil, nil
	}
	if security.CertFile == "" || security.KeyFile == "" {
		return nil, errors.New("both the certificate file and the key file must be set")
	}

	certFilePath := resolve(home, security.CertFile)
	keyFilePath := resolve(home, security.KeyFile)

	if _, err := os.Stat(certFilePath); os.IsNotExist(err) {
		return nil, errors.New("certificate file not found at " + certFilePath)
	}
	if _, err := os.Stat(keyFilePath); os.IsNotExist(err) {
		return nil, errors.New("key file not found at " + keyFilePath)
	}

	cert, err := tls.LoadX509KeyPair(certFilePath, keyFilePath)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func resolve(home, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(home, p)
}
