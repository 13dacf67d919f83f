package presets

import "gorm.io/gorm"

// Repository encapsula operações de banco para PresetFinanciamento
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *PresetFinanciamento) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*PresetFinanciamento, error) {
	var p PresetFinanciamento
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *PresetFinanciamento) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(p *PresetFinanciamento) error {
	return r.DB.Delete(p).Error
}

func (r *Repository) ListAll() ([]PresetFinanciamento, error) {
	var ps []PresetFinanciamento
	err := r.DB.Order("parcelas ASC").Find(&ps).Error
	return ps, err
}

// ListarAtivos devolve os presets usados na tabela pública de financiamento.
func (r *Repository) ListarAtivos() ([]PresetFinanciamento, error) {
	var ps []PresetFinanciamento
	err := r.DB.Where("ativo = ?", true).Order("parcelas ASC").Find(&ps).Error
	return ps, err
}
