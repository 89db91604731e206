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
package main

import (
	"context"
	"os"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	dconfig "github.com/mendersoftware/mongokit/config"
	"github.com/mendersoftware/mongokit/store/mongo"
)

func main() {
	if err := doMain(os.Args); err != nil {
		log.NewEmpty().Error(err.Error())
		os.Exit(1)
	}
}

func doMain(args []string) error {
	app := newApp()
	return app.Run(args)
}

func newApp() *cli.App {
	var (
		configPath string
		logLevel   string
	)

	app := cli.NewApp()
	app.Name = "mongokit"
	app.Usage = "Query MongoDB collections as documents"
	app.Version = CreateVersionString()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config",
			Usage:       "Configuration `FILE`. Supports JSON, TOML, YAML and HCL formatted configs.",
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log `LEVEL` (panic, fatal, error, warn, info, debug, trace).",
			Value:       logrus.InfoLevel.String(),
			Destination: &logLevel,
		},
	}
	app.Commands = commands()

	app.Before = func(args *cli.Context) error {
		err := dconfig.Setup(configPath)
		if err != nil {
			return cli.NewExitError(
				errors.Wrap(err, "error loading configuration"),
				1)
		}
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if config.Config.GetBool(dconfig.SettingDebugLog) {
			lvl = logrus.DebugLevel
		}
		log.Log.SetLevel(lvl)
		return nil
	}
	return app
}

// withDataStore connects to the configured database for the duration of
// a single command.
func withDataStore(
	c *cli.Context,
	action func(ctx context.Context, ds *mongo.DataStoreMongo) error,
) error {
	l := log.NewEmpty()
	ctx := log.WithContext(context.Background(), l)

	client, err := mongo.NewMongoClient(ctx, config.Config)
	if err != nil {
		return cli.NewExitError(err, 3)
	}
	ds := mongo.NewDataStoreMongoWithClient(client,
		config.Config.GetString(dconfig.SettingDbName))
	defer func() {
		if err := ds.Disconnect(ctx); err != nil {
			l.Warnf("failed to disconnect: %s", err)
		}
	}()

	if err := action(ctx, ds); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}
