// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockConfigReader struct {
	settings map[string]string
}

func NewMockConfigReader(settings map[string]string) *MockConfigReader {
	return &MockConfigReader{settings: settings}
}

func (m *MockConfigReader) Get(key string) interface{}                      { return nil }
func (m *MockConfigReader) GetBool(key string) bool                         { return false }
func (m *MockConfigReader) GetFloat64(key string) float64                   { return 1.1 }
func (m *MockConfigReader) GetInt(key string) int                           { return 1 }
func (m *MockConfigReader) GetStringMap(key string) map[string]interface{}  { return nil }
func (m *MockConfigReader) GetStringMapString(key string) map[string]string { return nil }
func (m *MockConfigReader) GetStringSlice(key string) []string              { return []string{} }
func (m *MockConfigReader) GetTime(key string) time.Time                    { return time.Now() }
func (m *MockConfigReader) GetDuration(key string) time.Duration            { return time.Second }

func (m *MockConfigReader) GetString(key string) string {
	return m.settings[key]
}

func (m *MockConfigReader) IsSet(key string) bool {
	_, found := m.settings[key]
	return found
}

func TestValidateMongoURL(t *testing.T) {
	testCases := map[string]struct {
		URL   string
		Error string
	}{
		"ok": {
			URL: "mongodb://mongo:27017",
		},
		"ok, srv": {
			URL: "mongodb+srv://cluster0.example.com",
		},
		"error, empty": {
			Error: "Required option: 'mongo-url'",
		},
		"error, no schema": {
			URL:   "localhost:27017",
			Error: `option "mongo-url": missing schema in "localhost:27017"`,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := NewMockConfigReader(map[string]string{SettingMongo: tc.URL})
			err := ValidateMongoURL(c)
			if tc.Error != "" {
				assert.EqualError(t, err, tc.Error)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDbName(t *testing.T) {
	testCases := map[string]struct {
		Name  string
		Error bool
	}{
		"ok":             {Name: "mongokit"},
		"ok, dashes":     {Name: "mongokit-tenant1"},
		"error, empty":   {Error: true},
		"error, dot":     {Name: "mongo.kit", Error: true},
		"error, slashes": {Name: "a/b", Error: true},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := NewMockConfigReader(map[string]string{SettingDbName: tc.Name})
			err := ValidateDbName(c)
			if tc.Error {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
