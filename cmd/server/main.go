package main

import (
	"fmt"
	"net/http"

	"lrlcargo/config"
	"lrlcargo/db"
	"lrlcargo/db/mongo"
	"lrlcargo/db/postgres"
	"lrlcargo/handlers"
	"lrlcargo/invoice"
	"lrlcargo/repository"
	"lrlcargo/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	// Run migrations (for Postgres)
	if cfg.DBType == "postgres" {
		db.RunMigrations(cfg.PostgresURL)
	}

	var cargoRepo repository.CargoRepository
	var partyRepo repository.PartyRepository
	var branchRepo repository.BranchRepository
	var userRepo repository.UserRepository

	switch cfg.DBType {
	case "postgres":
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		cargoRepo = repository.NewPostgresCargoRepo(pg.Conn)
		partyRepo = repository.NewPostgresPartyRepo(pg.Conn)
		branchRepo = repository.NewPostgresBranchRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		cargoRepo = repository.NewMongoCargoRepo(mg.Client)
		partyRepo = repository.NewMongoPartyRepo(mg.Client)
		branchRepo = repository.NewMongoBranchRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// Invoice repository combines cargo, party and branch access
	invoiceRepo := repository.NewInvoiceRepository(cargoRepo, partyRepo, branchRepo)

	// Party lookups go to the external directory when one is configured,
	// otherwise to the local party table.
	var partySrc invoice.PartySource
	if cfg.PartyAPIURL != "" {
		partySrc = invoice.NewDirectoryClient(cfg.PartyAPIURL)
	} else {
		partySrc = invoiceRepo.PartySource()
	}

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	cargoHandler := &handlers.CargoHandler{Repo: cargoRepo}
	partyHandler := &handlers.PartyHandler{Repo: partyRepo}
	branchHandler := &handlers.BranchHandler{Repo: branchRepo}
	invoiceHandler := &handlers.InvoiceHandler{Repo: invoiceRepo, PartySrc: partySrc}
	pdfHandler := &handlers.PDFHandler{Repo: invoiceRepo, PartySrc: partySrc, SavePath: cfg.PDFSavePath}

	// Setup routes including PDF
	routes.SetupRoutes(userHandler, cargoHandler, partyHandler, branchHandler, invoiceHandler, pdfHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
