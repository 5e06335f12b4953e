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

package delivery

import (
	"fmt"

	"github.com/asgardeo/conduit/internal/system/config"
	"github.com/asgardeo/conduit/internal/system/database/client"
	"github.com/asgardeo/conduit/internal/system/database/provider"
	"github.com/asgardeo/conduit/internal/system/log"
	"github.com/asgardeo/conduit/internal/system/utils"
)

const (
	journalLoggerComponentName = "DeliveryJournal"
	// DefaultListLimit is the number of records returned when no limit is given.
	DefaultListLimit = 20
	// MaxListLimit bounds the number of records returned by a list.
	MaxListLimit = 100
)

// JournalInterface records invocation outcomes.
type JournalInterface interface {
	// Record stores the record and returns its id. An id is generated when the record has none.
	Record(record Record) (string, error)
	// ListByDestination returns the latest records of a destination, newest first.
	ListByDestination(destinationID string, limit int) ([]Record, error)
}

// Journal is the database backed JournalInterface.
type Journal struct {
	store    deliveryStoreInterface
	dbClient client.DBClientInterface
}

// Initialize opens the journal data source when the journal is enabled. It returns nil
// when the journal is disabled.
func Initialize(cfg config.DeliveryConfig, home string) (*Journal, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, journalLoggerComponentName))
	if !cfg.Enabled {
		logger.Debug("Delivery journal is disabled")
		return nil, nil
	}

	dbClient, err := provider.OpenDBClient(cfg.DataSource, home)
	if err != nil {
		return nil, fmt.Errorf("failed to open the delivery data source: %w", err)
	}
	journal, err := NewJournal(dbClient)
	if err != nil {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Error closing the delivery data source", log.Error(closeErr))
		}
		return nil, err
	}

	logger.Info("Delivery journal initialized", log.String("type", cfg.DataSource.Type))
	return journal, nil
}

// NewJournal creates a journal on the database client and creates its table if needed.
func NewJournal(dbClient client.DBClientInterface) (*Journal, error) {
	store := newDeliveryStore(dbClient)
	if err := store.Initialize(); err != nil {
		return nil, err
	}
	return &Journal{store: store, dbClient: dbClient}, nil
}

// Record implements JournalInterface.
func (j *Journal) Record(record Record) (string, error) {
	if record.ID == "" {
		record.ID = utils.GenerateUUID()
	}
	if err := j.store.CreateDelivery(record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListByDestination implements JournalInterface.
func (j *Journal) ListByDestination(destinationID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return j.store.GetDeliveries(destinationID, limit)
}

// Ping checks that the journal table can be queried.
func (j *Journal) Ping() error {
	if _, err := j.dbClient.Query(queryCheckDeliveryTable); err != nil {
		return fmt.Errorf("delivery journal is unreachable: %w", err)
	}
	return nil
}

// Close closes the journal data source.
func (j *Journal) Close() error {
	return j.dbClient.Close()
}
