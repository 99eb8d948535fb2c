package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"water-distribution-service/internal/domain"
)

// Initialize the catalog database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		sku TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		stock INTEGER NOT NULL,
		reserved_stock INTEGER NOT NULL DEFAULT 0,
		capacity_unit REAL NOT NULL
	);
	`

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		store_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		region TEXT NOT NULL,
		owner TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_partner INTEGER NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stores_region ON stores(region);
	`

	statements := []string{
		createProductsQuery,
		createStoresQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

type productSeed struct {
	ProductID    string  `json:"product_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	CapacityUnit float64 `json:"capacity_unit"`
}

type storeSeed struct {
	StoreID   string  `json:"store_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Region    string  `json:"region"`
	Owner     string  `json:"owner"`
	Phone     string  `json:"phone"`
	IsPartner bool    `json:"is_partner"`
}

type vehicleSeed struct {
	VehicleID   string  `json:"vehicle_id"`
	PlateNumber string  `json:"plate_number"`
	Model       string  `json:"model"`
	Capacity    float64 `json:"capacity"`
	Region      string  `json:"region"`
}

type userSeed struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

type catalogSeed struct {
	Products []productSeed `json:"products"`
	Stores   []storeSeed   `json:"stores"`
	Vehicles []vehicleSeed `json:"vehicles"`
	Users    []userSeed    `json:"users"`
}

// SeedResult carries the fleet and user records from the seed file; they
// live in memory rather than in the catalog tables.
type SeedResult struct {
	Vehicles []domain.Vehicle
	Users    []domain.User
}

// Populate the catalog tables from a JSON file. Existing rows are kept so
// reserved stock survives restarts; only missing products/stores are added.
func SeedFromJSON(db *sql.DB, jsonPath string) (SeedResult, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data catalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return SeedResult{}, fmt.Errorf("seed catalog: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	productQuery := `
	INSERT OR IGNORE INTO products (
		product_id, sku, name, price, stock, reserved_stock, capacity_unit
	)
	VALUES (?, ?, ?, ?, ?, 0, ?);
	`
	for i, p := range data.Products {
		if strings.TrimSpace(p.ProductID) == "" {
			return SeedResult{}, fmt.Errorf("seed catalog: product at index %d: empty product_id", i+1)
		}
		if p.Stock < 0 {
			return SeedResult{}, fmt.Errorf("seed catalog: product %s: negative stock %d", p.ProductID, p.Stock)
		}
		if _, err := tx.Exec(productQuery, p.ProductID, p.SKU, p.Name, p.Price, p.Stock, p.CapacityUnit); err != nil {
			return SeedResult{}, fmt.Errorf("seed catalog: insert product_id=%s: %w", p.ProductID, err)
		}
	}

	storeQuery := `
	INSERT OR IGNORE INTO stores (
		store_id, name, address, lat, lng, region, owner, phone, is_partner
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for i, s := range data.Stores {
		if strings.TrimSpace(s.StoreID) == "" {
			return SeedResult{}, fmt.Errorf("seed catalog: store at index %d: empty store_id", i+1)
		}
		if _, err := tx.Exec(storeQuery, s.StoreID, s.Name, s.Address, s.Lat, s.Lng, s.Region, s.Owner, s.Phone, s.IsPartner); err != nil {
			return SeedResult{}, fmt.Errorf("seed catalog: insert store_id=%s: %w", s.StoreID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	res := SeedResult{
		Vehicles: make([]domain.Vehicle, 0, len(data.Vehicles)),
		Users:    make([]domain.User, 0, len(data.Users)),
	}
	for _, v := range data.Vehicles {
		res.Vehicles = append(res.Vehicles, domain.Vehicle{
			ID:          v.VehicleID,
			PlateNumber: v.PlateNumber,
			Model:       v.Model,
			Capacity:    v.Capacity,
			Status:      domain.VehicleIdle,
			Region:      v.Region,
		})
	}
	for _, u := range data.Users {
		res.Users = append(res.Users, domain.User{
			ID:    u.UserID,
			Name:  u.Name,
			Role:  domain.Role(u.Role),
			Email: u.Email,
		})
	}
	return res, nil
}
