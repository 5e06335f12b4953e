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

import "github.com/asgardeo/conduit/internal/system/database/model"

var (
	// queryCreateDeliveryTable creates the journal table when it does not exist.
	queryCreateDeliveryTable = model.DBQuery{
		ID: "DLQ-DELIVERY_MGT-01",
		Query: `CREATE TABLE IF NOT EXISTS DELIVERY (
			ID VARCHAR(36) PRIMARY KEY,
			DESTINATION_ID VARCHAR(255) NOT NULL,
			ACTION VARCHAR(255) NOT NULL,
			OUTCOME VARCHAR(16) NOT NULL,
			ERROR_KIND VARCHAR(32),
			ERROR_CODE VARCHAR(64),
			CALL_COUNT INTEGER NOT NULL,
			STARTED_AT TIMESTAMP NOT NULL,
			COMPLETED_AT TIMESTAMP NOT NULL
		)`,
	}
	// queryInsertDelivery inserts a journal record.
	queryInsertDelivery = model.DBQuery{
		ID: "DLQ-DELIVERY_MGT-02",
		Query: "INSERT INTO DELIVERY (ID, DESTINATION_ID, ACTION, OUTCOME, ERROR_KIND, ERROR_CODE, CALL_COUNT, " +
			"STARTED_AT, COMPLETED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		SQLiteQuery: "INSERT INTO DELIVERY (ID, DESTINATION_ID, ACTION, OUTCOME, ERROR_KIND, ERROR_CODE, CALL_COUNT, " +
			"STARTED_AT, COMPLETED_AT) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}
	// queryGetDeliveriesByDestination lists the latest journal records of a destination.
	queryGetDeliveriesByDestination = model.DBQuery{
		ID: "DLQ-DELIVERY_MGT-03",
		Query: "SELECT ID, DESTINATION_ID, ACTION, OUTCOME, ERROR_KIND, ERROR_CODE, CALL_COUNT, STARTED_AT, " +
			"COMPLETED_AT FROM DELIVERY WHERE DESTINATION_ID = $1 ORDER BY STARTED_AT DESC LIMIT $2",
		SQLiteQuery: "SELECT ID, DESTINATION_ID, ACTION, OUTCOME, ERROR_KIND, ERROR_CODE, CALL_COUNT, STARTED_AT, " +
			"COMPLETED_AT FROM DELIVERY WHERE DESTINATION_ID = ? ORDER BY STARTED_AT DESC LIMIT ?",
	}
	// queryCheckDeliveryTable verifies that the journal table is reachable.
	queryCheckDeliveryTable = model.DBQuery{
		ID:    "DLQ-DELIVERY_MGT-04",
		Query: "SELECT ID FROM DELIVERY LIMIT 1",
	}
)
