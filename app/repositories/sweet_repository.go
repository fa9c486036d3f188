// Package repositories is the persistence layer: each repository owns the
// gorm access for one model and is handed its *gorm.DB explicitly.
package repositories

import (
	"errors"

	"github.com/shashiranjanraj/mithai/app/models"
	"gorm.io/gorm"
)

// ErrNoStock is returned by PurchaseOne when the sweet exists but its
// quantity is already zero.
var ErrNoStock = errors.New("repositories: no stock")

// SweetRepository handles database operations for Sweet.
type SweetRepository struct {
	db *gorm.DB
}

func NewSweetRepository(db *gorm.DB) *SweetRepository {
	return &SweetRepository{db: db}
}

// Create persists a new sweet.
func (r *SweetRepository) Create(sweet *models.Sweet) error {
	return r.db.Create(sweet).Error
}

// All returns every sweet in insertion order.
func (r *SweetRepository) All() ([]models.Sweet, error) {
	var sweets []models.Sweet
	err := r.db.Order("id").Find(&sweets).Error
	return sweets, err
}

// SearchByName returns sweets whose name contains the given substring.
// The match is case-sensitive; an empty substring matches everything.
func (r *SweetRepository) SearchByName(substring string) ([]models.Sweet, error) {
	var sweets []models.Sweet
	q := r.db.Order("id")
	if substring != "" {
		// sqlite's LIKE case-folds ASCII, so use instr there; other
		// drivers get a plain LIKE, which is case-sensitive under their
		// default binary collations.
		if r.db.Dialector.Name() == "sqlite" {
			q = q.Where("instr(name, ?) > 0", substring)
		} else {
			q = q.Where("name LIKE ?", "%"+substring+"%")
		}
	}
	err := q.Find(&sweets).Error
	return sweets, err
}

// FindByID looks up a sweet by primary key.
func (r *SweetRepository) FindByID(id uint) (models.Sweet, error) {
	var sweet models.Sweet
	err := r.db.First(&sweet, id).Error
	return sweet, err
}

// Save persists all fields of an existing sweet.
func (r *SweetRepository) Save(sweet *models.Sweet) error {
	return r.db.Save(sweet).Error
}

// Delete removes a sweet permanently. Returns gorm.ErrRecordNotFound when
// the id does not exist.
func (r *SweetRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Sweet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PurchaseOne atomically decrements the sweet's quantity by one and returns
// the updated record. The decrement is a single guarded UPDATE inside a
// transaction, so two concurrent purchases of the last unit cannot both
// succeed: the WHERE quantity > 0 clause serialises the race at the store.
func (r *SweetRepository) PurchaseOne(id uint) (models.Sweet, error) {
	var sweet models.Sweet

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sweet, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Sweet{}).
			Where("id = ? AND quantity > 0", id).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoStock
		}

		return tx.First(&sweet, id).Error
	})

	return sweet, err
}
