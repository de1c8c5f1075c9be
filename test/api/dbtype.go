/*
Copyright 2026 the Spoolman Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"os"
)

// DBType is the database backend the service under test runs against.
type DBType string

const (
	DBTypeSQLite      DBType = "sqlite"
	DBTypePostgres    DBType = "postgres"
	DBTypeMySQL       DBType = "mysql"
	DBTypeCockroachDB DBType = "cockroachdb"
)

// DBTypeEnv selects the database backend.
const DBTypeEnv = "DB_TYPE"

var (
	// ErrDBTypeUnset is returned when DB_TYPE is not set.
	ErrDBTypeUnset = errors.New(DBTypeEnv + " environment variable not set")

	// ErrUnknownDBType is returned for an unrecognised DB_TYPE.
	ErrUnknownDBType = errors.New("unknown database type")
)

// ParseDBType validates a database type name.
func ParseDBType(value string) (DBType, error) {
	switch t := DBType(value); t {
	case DBTypeSQLite, DBTypePostgres, DBTypeMySQL, DBTypeCockroachDB:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDBType, value)
	}
}

// DBTypeFromEnv reads and validates DB_TYPE.
func DBTypeFromEnv() (DBType, error) {
	value, ok := os.LookupEnv(DBTypeEnv)
	if !ok {
		return "", ErrDBTypeUnset
	}

	return ParseDBType(value)
}
