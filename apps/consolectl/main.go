package main

import (
	"log"
	"os"

	"github.com/darasa/console/core"
	"github.com/darasa/console/core/session"
	gatewaysvc "github.com/darasa/console/services/gateway"
	logsvc "github.com/darasa/console/services/logger"
	filestore "github.com/darasa/console/storage/sessionstore/file"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "CONSOLECTL : ", log.LstdFlags)

	conf := core.LoadConfig()
	if conf.Gateway.BaseURL == "" {
		logger.Fatal("gateway base URL is required (set DEV_GATEWAY_BASEURL)")
	}

	store, err := filestore.Open(conf.Session.Dir)
	errAndDie(err)

	gw := gatewaysvc.NewHTTPService(conf.Gateway.BaseURL, conf.Gateway.Timeout)
	provider := session.NewProvider(store, gw, logsvc.NewConsoleLogger(logger))

	cli := commandLine{
		provider: provider,
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
