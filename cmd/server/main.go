package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"water-distribution-service/internal/adapters/proofstore"
	"water-distribution-service/internal/adapters/region"
	"water-distribution-service/internal/adapters/repositories"
	"water-distribution-service/internal/api"
	"water-distribution-service/internal/config"
	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
	"water-distribution-service/internal/services"
)

// main is the application composition root.
// Catalog data (products, stores) lives in SQLite; hot mutable aggregates
// (orders, trips, visits) live in memory and are rebuilt per run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/catalog.json")
	port := config.Get("PORT", "8080")

	depot, err := depotFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	seeded, err := initAndSeed(db, seedPath)
	if err != nil {
		log.Fatal(err)
	}

	products := repositories.NewSqliteProductRepository(db)
	stores := repositories.NewSqliteStoreRepository(db)
	users := repositories.NewMemoryUserRepository(seeded.Users)
	vehicles := repositories.NewMemoryVehicleRepository(seeded.Vehicles)
	orders := repositories.NewMemoryOrderRepository()
	routes := repositories.NewMemoryRoutePlanRepository()
	visits := repositories.NewMemoryVisitRepository()
	visitRoutes := repositories.NewMemoryVisitRouteRepository()

	proofs := newProofStore()
	classifier := region.NewStaticClassifier(regionCentroids())
	sequencer := &services.SavingsSequencer{}

	inventory := services.NewInventory(products)
	orderSvc := services.NewOrders(orders, products, stores, vehicles, inventory)
	dispatch := services.NewDispatch(orderSvc, stores, users, vehicles, routes, classifier, sequencer, depot)
	stops := services.NewStops(routes, orderSvc, dispatch, proofs)
	visitSvc := services.NewVisits(visits, visitRoutes, stores, proofs, sequencer, depot)
	catalog := services.NewCatalog(products, stores, users, orders, visits)

	router := api.NewRouter(api.Deps{
		Orders:   orderSvc,
		Dispatch: dispatch,
		Stops:    stops,
		Visits:   visitSvc,
		Catalog:  catalog,
		Vehicles: vehicles,
		Routes:   routes,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// depotFromEnv reads the depot coordinate, falling back to the
// Kulon Progo plant location.
func depotFromEnv() (domain.Coordinate, error) {
	depot := domain.Coordinate{Lat: -7.8664161, Lng: 110.1486773}

	if v := os.Getenv("DEPOT_LAT"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("parse DEPOT_LAT %q: %w", v, err)
		}
		depot.Lat = lat
	}
	if v := os.Getenv("DEPOT_LNG"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("parse DEPOT_LNG %q: %w", v, err)
		}
		depot.Lng = lng
	}
	return depot, nil
}

// newProofStore prefers Redis when REDIS_ADDR is set; proofs otherwise
// stay in process memory, which is fine for single-node runs.
func newProofStore() ports.ProofStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return proofstore.NewMemoryProofStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return proofstore.NewRedisProofStore(client)
}

// regionCentroids maps delivery regions to their rough centers around the
// Yogyakarta service area.
func regionCentroids() map[string]domain.Coordinate {
	return map[string]domain.Coordinate{
		"Kulon Progo": {Lat: -7.8664, Lng: 110.1486},
		"Bantul":      {Lat: -7.8880, Lng: 110.3289},
		"Sleman":      {Lat: -7.7162, Lng: 110.3529},
		"Yogyakarta":  {Lat: -7.7956, Lng: 110.3695},
	}
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) (repositories.SeedResult, error) {
	if err := repositories.InitSchema(db); err != nil {
		return repositories.SeedResult{}, fmt.Errorf("init and seed: %w", err)
	}

	seeded, err := repositories.SeedFromJSON(db, seedPath)
	if err != nil {
		return repositories.SeedResult{}, fmt.Errorf("init and seed: %w", err)
	}

	return seeded, nil
}
