// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"numdash-server/commons"
	"numdash-server/db"
	"numdash-server/docstore"
	"numdash-server/gateway"
	"numdash-server/handlers"
	"numdash-server/rabbitmq"
	"numdash-server/routes"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	if commons.HasFlag("--debug") {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
		commons.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	commons.InitNumbering()

	db.InitDB()
	if commons.HasFlag("--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}

	store := docstore.Default()
	seedFile := commons.FlagValue("--seed-file")
	if seedFile == "" {
		seedFile = commons.GetEnv("CATALOG_SEED_FILE")
	}
	if seedFile != "" {
		n, err := docstore.LoadSeedFile(context.Background(), store, seedFile)
		if err != nil {
			commons.Logger.Errorf("Failed to load seed file %s: %v", seedFile, err)
			os.Exit(1)
		}
		commons.Logger.Infof("Seeded %d documents from %s", n, seedFile)
	}

	if err := rabbitmq.InitPublisher(); err != nil {
		commons.Logger.Errorf("Failed to connect to RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer rabbitmq.Events.Close()

	upstream, err := gateway.NewClient(gateway.Config{})
	if err != nil {
		os.Exit(1)
	}
	if upstream.SendURL == nil || upstream.PurchaseURL == nil {
		commons.Logger.Warn("SEND_API_URL or PURCHASE_API_URL is not set, sends and purchases will be refused")
	}
	handlers.Configure(store, upstream)

	routes.RegisterRoutes(e)

	port := commons.GetEnv("PORT", ":8080")
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
