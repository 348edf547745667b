package main

import (
	"log"
	"os"

	"service-market/internal/config"
	"service-market/internal/db"
	"service-market/internal/delivery/http/route"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDB(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	mongoClient, err := db.InitMongo(cfg)
	if err != nil {
		log.Fatalf("error initializing mongo: %v", err)
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Fatalf("error creating media dir: %v", err)
	}

	app := gin.Default()
	route.SetupRoute(app, dbPool, mongoClient, cfg.MediaDir)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := app.Run(cfg.ServerAddress); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance:", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
