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

// Package provider opens database clients for configured data sources.
package provider

import (
	"database/sql"
	"fmt"
	"path"
	"time"

	"github.com/asgardeo/conduit/internal/system/config"
	"github.com/asgardeo/conduit/internal/system/database/client"
	"github.com/asgardeo/conduit/internal/system/database/model"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// dbConfig represents the resolved driver settings of a data source.
type dbConfig struct {
	dsn        string
	driverName string
}

// OpenDBClient opens and pings a connection pool for the data source. Relative SQLite paths
// are resolved against home. The caller closes the returned client.
func OpenDBClient(dataSource config.DataSource, home string) (client.DBClientInterface, error) {
	dbConfig, err := getDBConfig(dataSource, home)
	if err != nil {
		return nil, err
	}
	dbName := dataSource.Name
	if dbName == "" {
		dbName = dataSource.Path
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	return client.NewDBClient(model.NewDB(db), dbConfig.driverName), nil
}

// getDBConfig returns the driver name and DSN of the data source.
func getDBConfig(dataSource config.DataSource, home string) (dbConfig, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		sslMode := dataSource.SSLMode
		if sslMode == "" {
			sslMode = "require"
		}
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, sslMode),
		}, nil
	case dataSourceTypeSQLite:
		if dataSource.Path == "" {
			return dbConfig{}, fmt.Errorf("sqlite data source requires a path")
		}
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := dataSource.Path
		if !path.IsAbs(dbPath) && dbPath != ":memory:" {
			dbPath = path.Join(home, dbPath)
		}
		return dbConfig{driverName: dataSourceTypeSQLite, dsn: dbPath + options}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported data source type: %q", dataSource.Type)
	}
}
