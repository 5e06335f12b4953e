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
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/conduit/internal/system/config"
	"github.com/asgardeo/conduit/internal/system/database/client"
	"github.com/asgardeo/conduit/internal/system/database/model"
)

var deliveryColumns = []string{"ID", "DESTINATION_ID", "ACTION", "OUTCOME", "ERROR_KIND", "ERROR_CODE",
	"CALL_COUNT", "STARTED_AT", "COMPLETED_AT"}

type JournalTestSuite struct {
	suite.Suite
	mockDB  *sql.DB
	mock    sqlmock.Sqlmock
	journal *Journal
}

func TestJournalSuite(t *testing.T) {
	suite.Run(t, new(JournalTestSuite))
}

func (suite *JournalTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(suite.T(), err)

	suite.mock.ExpectExec(queryCreateDeliveryTable.Query).WillReturnResult(sqlmock.NewResult(0, 0))
	suite.journal, err = NewJournal(client.NewDBClient(model.NewDB(suite.mockDB), "sqlite"))
	require.NoError(suite.T(), err)
}

func (suite *JournalTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *JournalTestSuite) TestRecordGeneratesID() {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(250 * time.Millisecond)
	suite.mock.ExpectExec(queryInsertDelivery.SQLiteQuery).
		WithArgs(sqlmock.AnyArg(), "G4", "refund", "FAILED", "validation", "PAYLOAD_VALIDATION_FAILED", 0,
			started, completed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := suite.journal.Record(Record{
		DestinationID: "G4",
		Action:        "refund",
		Outcome:       OutcomeFailed,
		ErrorKind:     "validation",
		ErrorCode:     "PAYLOAD_VALIDATION_FAILED",
		StartedAt:     started,
		CompletedAt:   completed,
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), id, 36)
}

func (suite *JournalTestSuite) TestRecordKeepsGivenID() {
	suite.mock.ExpectExec(queryInsertDelivery.SQLiteQuery).
		WithArgs("inv-1", "G4", "customEvent", "SUCCEEDED", "", "", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := suite.journal.Record(Record{ID: "inv-1", DestinationID: "G4", Action: "customEvent",
		Outcome: OutcomeSucceeded, CallCount: 1, StartedAt: time.Now(), CompletedAt: time.Now()})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "inv-1", id)
}

func (suite *JournalTestSuite) TestRecordStoreError() {
	suite.mock.ExpectExec(queryInsertDelivery.SQLiteQuery).WillReturnError(errors.New("database is locked"))

	id, err := suite.journal.Record(Record{DestinationID: "G4", Action: "refund", Outcome: OutcomeSucceeded})

	assert.ErrorContains(suite.T(), err, "database is locked")
	assert.Empty(suite.T(), id)
}

func (suite *JournalTestSuite) TestPing() {
	suite.mock.ExpectQuery(queryCheckDeliveryTable.Query).WillReturnRows(sqlmock.NewRows([]string{"ID"}))
	assert.NoError(suite.T(), suite.journal.Ping())

	suite.mock.ExpectQuery(queryCheckDeliveryTable.Query).WillReturnError(errors.New("connection refused"))
	err := suite.journal.Ping()
	assert.ErrorContains(suite.T(), err, "delivery journal is unreachable")
}

func (suite *JournalTestSuite) TestListByDestination() {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(deliveryColumns).
		AddRow("d-2", "G4", "refund", "FAILED", "transport", "RESPONSE_ERROR", int64(1), started.Add(time.Minute),
			started.Add(time.Minute+time.Second)).
		AddRow("d-1", "G4", "customEvent", "SUCCEEDED", nil, nil, int64(1),
			"2024-05-01 10:00:00+00:00", "2024-05-01T10:00:01Z")
	suite.mock.ExpectQuery(queryGetDeliveriesByDestination.SQLiteQuery).WithArgs("G4", 5).WillReturnRows(rows)

	records, err := suite.journal.ListByDestination("G4", 5)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), records, 2)
	assert.Equal(suite.T(), OutcomeFailed, records[0].Outcome)
	assert.Equal(suite.T(), "RESPONSE_ERROR", records[0].ErrorCode)
	assert.Equal(suite.T(), "", records[1].ErrorKind)
	assert.True(suite.T(), records[1].StartedAt.Equal(started))
	assert.True(suite.T(), records[1].CompletedAt.Equal(started.Add(time.Second)))
}

func (suite *JournalTestSuite) TestListByDestinationClampsLimit() {
	suite.mock.ExpectQuery(queryGetDeliveriesByDestination.SQLiteQuery).WithArgs("G4", DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(deliveryColumns))
	suite.mock.ExpectQuery(queryGetDeliveriesByDestination.SQLiteQuery).WithArgs("G4", MaxListLimit).
		WillReturnRows(sqlmock.NewRows(deliveryColumns))

	records, err := suite.journal.ListByDestination("G4", 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), records)

	_, err = suite.journal.ListByDestination("G4", 1000)
	assert.NoError(suite.T(), err)
}

func (suite *JournalTestSuite) TestListByDestinationRejectsMalformedRow() {
	rows := sqlmock.NewRows(deliveryColumns).
		AddRow("d-1", "G4", "refund", "FAILED", nil, nil, "one", time.Now(), time.Now())
	suite.mock.ExpectQuery(queryGetDeliveriesByDestination.SQLiteQuery).WithArgs("G4", 5).WillReturnRows(rows)

	_, err := suite.journal.ListByDestination("G4", 5)

	assert.ErrorContains(suite.T(), err, "call_count")
}

func TestNewJournalInitializeError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	mock.ExpectExec(queryCreateDeliveryTable.Query).WillReturnError(errors.New("permission denied"))

	journal, err := NewJournal(client.NewDBClient(model.NewDB(db), "postgres"))

	assert.Nil(t, journal)
	assert.ErrorContains(t, err, "failed to create delivery table")
}

func TestInitializeDisabled(t *testing.T) {
	journal, err := Initialize(config.DeliveryConfig{Enabled: false}, t.TempDir())

	assert.NoError(t, err)
	assert.Nil(t, journal)
}

func TestInitializeSQLiteRoundTrip(t *testing.T) {
	journal, err := Initialize(config.DeliveryConfig{
		Enabled:    true,
		DataSource: config.DataSource{Type: "sqlite", Path: "delivery.db", MaxOpenConns: 1},
	}, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, journal)
	defer func() {
		assert.NoError(t, journal.Close())
	}()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, action := range []string{"customEvent", "refund"} {
		_, err := journal.Record(Record{
			DestinationID: "G4",
			Action:        action,
			Outcome:       OutcomeSucceeded,
			CallCount:     1,
			StartedAt:     started.Add(time.Duration(i) * time.Minute),
			CompletedAt:   started.Add(time.Duration(i)*time.Minute + time.Second),
		})
		require.NoError(t, err)
	}

	records, err := journal.ListByDestination("G4", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "refund", records[0].Action)
	assert.Equal(t, 1, records[0].CallCount)
	assert.True(t, records[1].StartedAt.Equal(started))
}
