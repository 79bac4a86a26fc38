package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/storefront-be/internal/models"
)

// ErrProductNotFound is returned when no product matches the given ID.
var ErrProductNotFound = errors.New("product not found")

// ProductServiceProvider defines the interface for catalog services.
type ProductServiceProvider interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id string) (models.Product, error)
	GetProductsByCategory(category string) ([]models.Product, error)
	GetCategories() ([]models.Category, error)
	CreateProduct(product models.Product) (models.Product, error)
	UpdateProduct(id string, product models.Product) (models.Product, error)
	DeleteProduct(id string) error
}

// ProductService provides business logic for catalog management.
type ProductService struct {
	db *sql.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

const productColumns = "id, title, price, description, category, image, in_stock, rating_json, created_at"

// scanProduct is a helper to scan a product from a row or rows object.
func scanProduct(scanner interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	var desc, image, rating sql.NullString
	var createdAt int64

	err := scanner.Scan(&p.ID, &p.Title, &p.Price, &desc, &p.Category, &image, &p.InStock, &rating, &createdAt)
	if err != nil {
		return p, err
	}

	p.Description = desc.String
	p.Image = image.String
	p.RatingJSON = rating.String
	p.CreatedAt = time.Unix(createdAt, 0)

	p.PrepareForAPI()
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetAllProducts retrieves the full catalog.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	rows, err := s.db.Query("SELECT " + productColumns + " FROM products ORDER BY created_at DESC, title")
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (models.Product, error) {
	row := s.db.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

// GetProductsByCategory retrieves all products in the given category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	rows, err := s.db.Query("SELECT "+productColumns+" FROM products WHERE category = ? ORDER BY title", category)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// GetCategories enumerates the catalog categories: curated rows from the
// categories table plus any category referenced by a product but not yet
// curated.
func (s *ProductService) GetCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name, description, image, is_active FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	known := make(map[string]bool)
	for rows.Next() {
		var c models.Category
		var desc, image sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc, &image, &c.IsActive); err != nil {
			return nil, err
		}
		c.Description = desc.String
		c.Image = image.String
		categories = append(categories, c)
		known[c.Name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nameRows, err := s.db.Query("SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer nameRows.Close()

	for nameRows.Next() {
		var name string
		if err := nameRows.Scan(&name); err != nil {
			return nil, err
		}
		if !known[name] {
			categories = append(categories, models.Category{Name: name, IsActive: true})
		}
	}
	return categories, nameRows.Err()
}

// CreateProduct adds a new product to the catalog.
func (s *ProductService) CreateProduct(product models.Product) (models.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.PrepareForSave()

	stmt, err := s.db.Prepare("INSERT INTO products(id, title, price, description, category, image, in_stock, rating_json, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		product.ID, product.Title, product.Price, product.Description,
		product.Category, product.Image, product.InStock, product.RatingJSON,
		product.CreatedAt.Unix(),
	)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to execute statement: %w", err)
	}

	return s.GetProductByID(product.ID)
}

// UpdateProduct updates an existing product in the catalog.
func (s *ProductService) UpdateProduct(id string, product models.Product) (models.Product, error) {
	product.PrepareForSave()

	stmt, err := s.db.Prepare("UPDATE products SET title = ?, price = ?, description = ?, category = ?, image = ?, in_stock = ?, rating_json = ? WHERE id = ?")
	if err != nil {
		return models.Product{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(
		product.Title, product.Price, product.Description, product.Category,
		product.Image, product.InStock, product.RatingJSON, id,
	)
	if err != nil {
		return models.Product{}, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	return s.GetProductByID(id)
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(id string) error {
	res, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
