package banners

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Banner
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(b *Banner) error {
	return r.DB.Create(b).Error
}

func (r *Repository) FindByID(id uint) (*Banner, error) {
	var b Banner
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Update(b *Banner) error {
	return r.DB.Save(b).Error
}

func (r *Repository) Delete(b *Banner) error {
	return r.DB.Delete(b).Error
}

func (r *Repository) ListAll() ([]Banner, error) {
	var bs []Banner
	err := r.DB.Order("ordem ASC").Find(&bs).Error
	return bs, err
}

// ListarAtivos devolve os banners visíveis agora (ativos e dentro da janela).
func (r *Repository) ListarAtivos() ([]Banner, error) {
	now := time.Now()
	var bs []Banner
	err := r.DB.
		Where("ativo = ?", true).
		Where("inicio_em IS NULL OR inicio_em <= ?", now).
		Where("fim_em IS NULL OR fim_em >= ?", now).
		Order("ordem ASC").
		Find(&bs).Error
	return bs, err
}
