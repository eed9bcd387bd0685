package main

import (
	"context"
	"flag"
	"log"

	"employee-system/pkg/config"
	"employee-system/pkg/database/postgresql"
	applogger "employee-system/pkg/logger"
	"employee-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("                  Database seeders                    ")
	log.Println("======================================================")

	empNo := flag.String("empno", "ADMIN001", "employee number of the bootstrap admin")
	email := flag.String("email", "admin@example.com", "login email of the bootstrap admin")
	password := flag.String("password", "", "initial password of the bootstrap admin")
	flag.Parse()

	if *password == "" {
		log.Println("A password is required.")
		flag.PrintDefaults()
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)

	dbPool := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seed := seeders.AdminSeed{
		EmpNo:     *empNo,
		FirstName: "System",
		LastName:  "Admin",
		Email:     *email,
		Password:  *password,
	}
	if err := seeders.SeedAdmin(ctx, dbPool, seed, logger); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}
	log.Println("Seeding finished.")
}
