package repository

import (
	"errors"
	"strings"

	"pharmastock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows FindAll. Empty fields do not filter.
type ProductFilter struct {
	Query    string
	Category model.Category
}

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// WithTx returns a repository bound to tx.
func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	products := []model.Product{}
	query := r.db.Model(&model.Product{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		query = query.Where(
			`LOWER(commercial_name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(inn, '')) LIKE ? ESCAPE '\' `+
				`OR LOWER(COALESCE(dosage, '')) LIKE ? ESCAPE '\' OR LOWER(lot_number) LIKE ? ESCAPE '\'`,
			like, like, like, like,
		)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	err := query.Order("commercial_name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
