package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rentora/config"
	"rentora/pkg/database"
)

const usage = `
Rentora - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply the schema
  seed        Seed the database with initial data
  status      Show database connection status
  clear-conns Drop all connection registry rows

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch flag.Arg(0) {
	case "up":
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed")
	case "seed":
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if err := database.Seed(database.DB); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed")
	case "status":
		sqlDB, err := database.DB.DB()
		if err != nil {
			log.Fatalf("Database handle unavailable: %v", err)
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		log.Println("Database connection: OK")
	case "clear-conns":
		if err := database.ClearConnections(database.DB); err != nil {
			log.Fatalf("Clearing connections failed: %v", err)
		}
		log.Println("Connection registry cleared")
	default:
		fmt.Printf("Unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
