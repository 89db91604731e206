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
	"strings"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
)

const (
	EnvPrefix = "MONGOKIT"

	SettingMongo        = "mongo-url"
	SettingMongoDefault = "mongodb://localhost:27017"

	SettingDbName        = "mongo-dbname"
	SettingDbNameDefault = "mongokit"

	SettingDbSSL        = "mongo_ssl"
	SettingDbSSLDefault = false

	SettingDbSSLSkipVerify        = "mongo_ssl_skipverify"
	SettingDbSSLSkipVerifyDefault = false

	SettingDbUsername = "mongo-username"
	SettingDbPassword = "mongo-password"

	SettingDebugLog        = "debug_log"
	SettingDebugLogDefault = false
)

var (
	Defaults = []config.Default{
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
	}

	Validators = []config.Validator{
		ValidateMongoURL,
		ValidateDbName,
	}
)

// Setup loads the configuration file (if any) into the global config,
// applies defaults and environment overrides and validates the result.
func Setup(configPath string) error {
	// map settings such as foo.bar and foo-bar to FOO_BAR environment keys
	config.Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.Config.SetEnvPrefix(EnvPrefix)
	config.Config.AutomaticEnv()

	return config.FromConfigFile(configPath, Defaults, Validators...)
}

func ValidateMongoURL(c config.Reader) error {
	url := c.GetString(SettingMongo)
	if url == "" {
		return MissingOptionError(SettingMongo)
	}
	if !strings.Contains(url, "://") {
		return errors.Errorf("option %q: missing schema in %q", SettingMongo, url)
	}
	return nil
}

func ValidateDbName(c config.Reader) error {
	name := c.GetString(SettingDbName)
	if name == "" {
		return MissingOptionError(SettingDbName)
	}
	if strings.ContainsAny(name, "/\\. \"$") {
		return errors.Errorf("option %q: invalid database name %q", SettingDbName, name)
	}
	return nil
}

// Generate error with missing required option message.
func MissingOptionError(option string) error {
	return errors.Errorf("Required option: '%s'", option)
}
