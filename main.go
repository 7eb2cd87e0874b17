package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose

	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/importer"
	"github.com/aron/nikeplus-to-runkeeper/migrations"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
	"github.com/aron/nikeplus-to-runkeeper/server"
	"github.com/aron/nikeplus-to-runkeeper/store"
)

type Config struct {
	Addr                  string `default:":9292" envconfig:"ADDR"`
	AppDomain             string `default:"http://localhost:9292" envconfig:"APP_DOMAIN"`
	PostgresConnectionURL string `required:"true" envconfig:"POSTGRES_CONNECTION_URL"`
	RunkeeperClientID     string `required:"true" envconfig:"RUNKEEPER_CLIENT_ID"`
	RunkeeperClientSecret string `required:"true" envconfig:"RUNKEEPER_CLIENT_SECRET"`
}

func main() {
	config := Config{}
	err := envconfig.Process("", &config)
	if err != nil {
		log.Fatal(err)
	}

	err = migrate(config.PostgresConnectionURL)
	if err != nil {
		log.Fatal(err)
	}

	store, err := store.New(config.PostgresConnectionURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Cleanup()

	healthGraph := healthgraph.NewAPI(
		config.RunkeeperClientID,
		config.RunkeeperClientSecret,
		config.AppDomain+"/auth/runkeeper/callback",
	)
	imp := importer.New(healthGraph)

	newSource := func(email, password string) importer.Source {
		return nikeplus.NewClient(email, password)
	}

	srv := server.New(config.Addr, store, healthGraph, imp, newSource)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		log.Println("sigint received")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := srv.Shutdown(ctx)
		if err != nil {
			log.Fatal(err)
		}
	}()

	log.Println("starting server")
	err = srv.Serve()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Println("shut down")
}

func migrate(connectionURL string) error {
	db, err := sql.Open("pgx", connectionURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
