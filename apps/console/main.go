package main

import (
	"fmt"
	"log"
	"os"

	"github.com/darasa/console/apps/console/echo"
	"github.com/darasa/console/core"
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
	apisvc "github.com/darasa/console/services/api"
	gatewaysvc "github.com/darasa/console/services/gateway"
	dummygateway "github.com/darasa/console/services/gateway/dummy"
	logsvc "github.com/darasa/console/services/logger"
	filestore "github.com/darasa/console/storage/sessionstore/file"
	inmemstore "github.com/darasa/console/storage/sessionstore/inmem"
	redisstore "github.com/darasa/console/storage/sessionstore/redis"
	sqlxstore "github.com/darasa/console/storage/sessionstore/sqlx"
)

func main() {
	conf := core.LoadConfig()
	std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	// set up logger
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	// set up session store
	store, err := openStore(conf)
	errAndDie(std, err)

	// set up gateway
	gw, err := openGateway(conf, std)
	errAndDie(std, err)

	// hydrate the session and start the API
	provider := session.NewProvider(store, gw, logger)

	var client *apisvc.Client
	if conf.Gateway.BaseURL != "" {
		client = apisvc.NewClient(conf.Gateway.BaseURL, conf.Gateway.Timeout, provider)
	}

	app := echoapi.NewServer(&echoapi.Options{
		Address:  fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Provider: provider,
		Client:   client,
		Logger:   logger,
	})
	errAndDie(std, app.Start())
}

func openStore(conf *core.Config) (session.Store, error) {
	switch conf.Session.Backend {
	case "file":
		return filestore.Open(conf.Session.Dir)
	case "memory":
		return inmemstore.Open(), nil
	case "redis":
		return redisstore.Open(conf.Session.RedisURL, conf.AppName)
	case "postgres":
		return sqlxstore.Open(conf.Session.DatabaseURL, conf.AppName)
	default:
		return nil, fmt.Errorf("unknown session backend %q", conf.Session.Backend)
	}
}

func openGateway(conf *core.Config, std *log.Logger) (identity.Gateway, error) {
	if conf.Gateway.BaseURL != "" {
		return gatewaysvc.NewHTTPService(conf.Gateway.BaseURL, conf.Gateway.Timeout), nil
	}
	if !conf.Debug {
		return nil, fmt.Errorf("gateway base URL is required outside DEV")
	}

	// DEV without a platform API: run against the in-memory gateway
	std.Println("no gateway configured; using the in-memory dev gateway")
	gw := dummygateway.NewService(conf.AppName, []byte(conf.SecretKey))
	seedDevAccounts(gw, std)
	return gw, nil
}

func seedDevAccounts(gw *dummygateway.Service, std *log.Logger) {
	schoolID := "school-001"
	accounts := []struct {
		ident identity.Identity
		pwd   string
	}{
		{identity.Identity{Username: "root", Email: "root@darasa.dev", FirstName: "Ada", LastName: "Root", Role: identity.RoleSuperAdmin, IsActive: true}, "admin"},
		{identity.Identity{Username: "principal.okoro", Email: "okoro@darasa.dev", FirstName: "Ngozi", LastName: "Okoro", Role: identity.RolePrincipal, SchoolID: &schoolID, IsActive: true}, "principal"},
		{identity.Identity{Username: "teacher.smith", Email: "smith@darasa.dev", FirstName: "Jo", LastName: "Smith", Role: identity.RoleTeacher, SchoolID: &schoolID, IsActive: true}, "teacher"},
		{identity.Identity{Username: "student.banda", Email: "banda@darasa.dev", FirstName: "Lusungu", LastName: "Banda", Role: identity.RoleStudent, SchoolID: &schoolID, IsActive: true}, "student"},
	}
	for _, acct := range accounts {
		if err := gw.Seed(acct.ident, acct.pwd); err != nil {
			std.Printf("seeding %s failed: %v", acct.ident.Username, err)
		}
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
