package produtos

import (
	"strings"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Produto
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Produto) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindBySlug(slug string) (*Produto, error) {
	var p Produto
	if err := r.DB.Where("slug = ? AND ativo = ?", slug, true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *Produto) error {
	return r.DB.Save(p).Error
}

// Delete remove o produto (soft delete via gorm.DeletedAt).
func (r *Repository) Delete(p *Produto) error {
	return r.DB.Delete(p).Error
}

func (r *Repository) ListAll() ([]Produto, error) {
	var produtos []Produto
	err := r.DB.Order("created_at DESC").Find(&produtos).Error
	return produtos, err
}

// ListarCatalogo aplica os filtros do catálogo público e pagina o resultado.
func (r *Repository) ListarCatalogo(f Filtro) (*ListagemDTO, error) {
	q := r.DB.Model(&Produto{}).Where("ativo = ?", true)

	if f.Condicao != "" {
		q = q.Where("condicao = ?", f.Condicao)
	}
	if f.PrecoMin > 0 {
		q = q.Where("preco >= ?", f.PrecoMin)
	}
	if f.PrecoMax > 0 {
		q = q.Where("preco <= ?", f.PrecoMax)
	}
	if f.BateriaMin > 0 {
		q = q.Where("nivel_bateria >= ?", f.BateriaMin)
	}
	if f.Cor != "" {
		// cores é JSONB; busca textual simples cobre o filtro de cor
		q = q.Where("cores::text ILIKE ?", "%"+f.Cor+"%")
	}
	if f.Busca != "" {
		termo := "%" + strings.TrimSpace(f.Busca) + "%"
		q = q.Where("nome ILIKE ? OR descricao ILIKE ? OR codigo ILIKE ?", termo, termo, termo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	switch f.Ordenar {
	case "preco_asc":
		q = q.Order("preco ASC")
	case "preco_desc":
		q = q.Order("preco DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if f.PorPagina <= 0 || f.PorPagina > 100 {
		f.PorPagina = 24
	}
	if f.Pagina <= 0 {
		f.Pagina = 1
	}
	q = q.Offset((f.Pagina - 1) * f.PorPagina).Limit(f.PorPagina)

	var produtos []Produto
	if err := q.Find(&produtos).Error; err != nil {
		return nil, err
	}

	return &ListagemDTO{
		Produtos:  produtos,
		Total:     total,
		Pagina:    f.Pagina,
		PorPagina: f.PorPagina,
	}, nil
}
