package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// SQLite-backed implementation of the ProductRepository port.
// Stock columns are mutated only through the inventory ledger.
type SqliteProductRepository struct{ DB *sql.DB }

func NewSqliteProductRepository(db *sql.DB) *SqliteProductRepository {
	return &SqliteProductRepository{DB: db}
}

func (s *SqliteProductRepository) GetProduct(id string) (domain.Product, error) {
	if s.DB == nil {
		return domain.Product{}, errors.New("sqlite product repository: DB is nil")
	}

	query := `
	SELECT
		product_id, sku, name, price, stock, reserved_stock, capacity_unit
	FROM products
	WHERE product_id = ?;
	`
	var p domain.Product
	err := s.DB.QueryRow(query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.ReservedStock, &p.CapacityUnit,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: query %q: %w", id, err)
	}
	return p, nil
}

func (s *SqliteProductRepository) ListProducts() ([]domain.Product, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite product repository: DB is nil")
	}

	query := `
	SELECT
		product_id, sku, name, price, stock, reserved_stock, capacity_unit
	FROM products
	ORDER BY product_id;
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 16)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.ReservedStock, &p.CapacityUnit)
		if err != nil {
			return nil, fmt.Errorf("list products: scan row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}
	return products, nil
}

func (s *SqliteProductRepository) SaveProduct(p domain.Product) error {
	if s.DB == nil {
		return errors.New("sqlite product repository: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO products (
		product_id, sku, name, price, stock, reserved_stock, capacity_unit
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.Exec(query, p.ID, p.SKU, p.Name, p.Price, p.Stock, p.ReservedStock, p.CapacityUnit)
	if err != nil {
		return fmt.Errorf("save product: product_id=%s: %w", p.ID, err)
	}
	return nil
}

// SQLite-backed implementation of the StoreRepository port.
type SqliteStoreRepository struct{ DB *sql.DB }

func NewSqliteStoreRepository(db *sql.DB) *SqliteStoreRepository {
	return &SqliteStoreRepository{DB: db}
}

func (s *SqliteStoreRepository) GetStore(id string) (domain.Store, error) {
	if s.DB == nil {
		return domain.Store{}, errors.New("sqlite store repository: DB is nil")
	}

	query := `
	SELECT
		store_id, name, address, lat, lng, region, owner, phone, is_partner
	FROM stores
	WHERE store_id = ?;
	`
	var st domain.Store
	err := s.DB.QueryRow(query, id).Scan(
		&st.ID, &st.Name, &st.Address, &st.Location.Lat, &st.Location.Lng,
		&st.Region, &st.Owner, &st.Phone, &st.IsPartner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Store{}, fmt.Errorf("get store: query %q: %w", id, err)
	}
	return st, nil
}

func (s *SqliteStoreRepository) ListStores() ([]domain.Store, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store repository: DB is nil")
	}

	query := `
	SELECT
		store_id, name, address, lat, lng, region, owner, phone, is_partner
	FROM stores
	ORDER BY store_id;
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0, 32)
	for rows.Next() {
		var st domain.Store
		err := rows.Scan(
			&st.ID, &st.Name, &st.Address, &st.Location.Lat, &st.Location.Lng,
			&st.Region, &st.Owner, &st.Phone, &st.IsPartner,
		)
		if err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		stores = append(stores, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}
	return stores, nil
}

func (s *SqliteStoreRepository) SaveStore(st domain.Store) error {
	if s.DB == nil {
		return errors.New("sqlite store repository: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO stores (
		store_id, name, address, lat, lng, region, owner, phone, is_partner
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.Exec(query,
		st.ID, st.Name, st.Address, st.Location.Lat, st.Location.Lng,
		st.Region, st.Owner, st.Phone, st.IsPartner,
	)
	if err != nil {
		return fmt.Errorf("save store: store_id=%s: %w", st.ID, err)
	}
	return nil
}

func (s *SqliteStoreRepository) DeleteStore(id string) error {
	if s.DB == nil {
		return errors.New("sqlite store repository: DB is nil")
	}

	res, err := s.DB.Exec(`DELETE FROM stores WHERE store_id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete store: store_id=%s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store: rows affected: %w", err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}
