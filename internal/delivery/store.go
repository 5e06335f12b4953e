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
	"time"

	"github.com/asgardeo/conduit/internal/system/database/client"
)

const sqliteTimestampLayout = "2006-01-02 15:04:05.999999999-07:00"

// deliveryStoreInterface defines the persistence operations of the journal.
type deliveryStoreInterface interface {
	Initialize() error
	CreateDelivery(record Record) error
	GetDeliveries(destinationID string, limit int) ([]Record, error)
}

// deliveryStore is the database backed implementation of deliveryStoreInterface.
type deliveryStore struct {
	dbClient client.DBClientInterface
}

func newDeliveryStore(dbClient client.DBClientInterface) deliveryStoreInterface {
	return &deliveryStore{dbClient: dbClient}
}

// Initialize creates the journal table if it does not exist.
func (s *deliveryStore) Initialize() error {
	if _, err := s.dbClient.Execute(queryCreateDeliveryTable); err != nil {
		return fmt.Errorf("failed to create delivery table: %w", err)
	}
	return nil
}

// CreateDelivery inserts a journal record.
func (s *deliveryStore) CreateDelivery(record Record) error {
	_, err := s.dbClient.Execute(queryInsertDelivery, record.ID, record.DestinationID, record.Action,
		string(record.Outcome), record.ErrorKind, record.ErrorCode, record.CallCount,
		record.StartedAt.UTC(), record.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert delivery record: %w", err)
	}
	return nil
}

// GetDeliveries returns the latest records of a destination, newest first.
func (s *deliveryStore) GetDeliveries(destinationID string, limit int) ([]Record, error) {
	results, err := s.dbClient.Query(queryGetDeliveriesByDestination, destinationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery records: %w", err)
	}

	records := make([]Record, 0, len(results))
	for _, row := range results {
		record, err := buildRecordFromResultRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func buildRecordFromResultRow(row map[string]interface{}) (Record, error) {
	var record Record
	var ok bool

	if record.ID, ok = row["id"].(string); !ok {
		return Record{}, fmt.Errorf("failed to parse id as string")
	}
	if record.DestinationID, ok = row["destination_id"].(string); !ok {
		return Record{}, fmt.Errorf("failed to parse destination_id as string")
	}
	if record.Action, ok = row["action"].(string); !ok {
		return Record{}, fmt.Errorf("failed to parse action as string")
	}
	outcome, ok := row["outcome"].(string)
	if !ok {
		return Record{}, fmt.Errorf("failed to parse outcome as string")
	}
	record.Outcome = Outcome(outcome)
	record.ErrorKind, _ = row["error_kind"].(string)
	record.ErrorCode, _ = row["error_code"].(string)

	count, ok := row["call_count"].(int64)
	if !ok {
		return Record{}, fmt.Errorf("failed to parse call_count as integer")
	}
	record.CallCount = int(count)

	var err error
	if record.StartedAt, err = parseTimestamp(row["started_at"]); err != nil {
		return Record{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if record.CompletedAt, err = parseTimestamp(row["completed_at"]); err != nil {
		return Record{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	return record, nil
}

func parseTimestamp(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, nil
		}
		return time.Parse(sqliteTimestampLayout, v)
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", value)
	}
}
