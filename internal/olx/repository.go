package olx

import (
	"errors"

	"gorm.io/gorm"
)

// Migrate cria as tabelas da integração e o índice parcial que garante
// um único anúncio ativo por produto.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Config{}, &Anuncio{}, &SyncLog{}); err != nil {
		return err
	}
	// O pré-check de "já anunciado" no serviço continua existindo para dar a
	// mensagem amigável; o índice fecha a corrida entre duas requisições.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_anuncio_ativo_por_produto
		ON olx_anuncios (produto_id) WHERE status <> 'removido'`).Error
}

// Repository encapsula operações de banco para Anuncio
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Anuncio) error {
	return r.DB.Create(a).Error
}

func (r *Repository) FindByID(id uint) (*Anuncio, error) {
	var a Anuncio
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAtivoPorProduto devolve o anúncio não-removido do produto, se existir.
func (r *Repository) FindAtivoPorProduto(produtoID uint) (*Anuncio, error) {
	var a Anuncio
	err := r.DB.Where("produto_id = ? AND status <> ?", produtoID, StatusRemovido).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Update(a *Anuncio) error {
	return r.DB.Save(a).Error
}

// Delete remove o registro local definitivamente. A remoção remota é
// best-effort e acontece no serviço; o registro local nunca fica para trás.
func (r *Repository) Delete(a *Anuncio) error {
	return r.DB.Delete(a).Error
}

func (r *Repository) ListAll() ([]Anuncio, error) {
	var as []Anuncio
	err := r.DB.Order("created_at DESC").Find(&as).Error
	return as, err
}

// ListSemOlxID devolve anúncios sem id remoto resolvido ou presos em
// "processando" — os candidatos da migração.
func (r *Repository) ListSemOlxID() ([]Anuncio, error) {
	var as []Anuncio
	err := r.DB.
		Where("(olx_id = '' OR olx_id IS NULL OR status = ?) AND status <> ?", StatusProcessando, StatusRemovido).
		Order("id ASC").
		Find(&as).Error
	return as, err
}

// ListProcessando devolve anúncios aguardando resolução de token de importação.
func (r *Repository) ListProcessando() ([]Anuncio, error) {
	var as []Anuncio
	err := r.DB.Where("status = ?", StatusProcessando).Find(&as).Error
	return as, err
}

// DeleteAll apaga todos os anúncios locais (limpeza em massa do operador).
func (r *Repository) DeleteAll() error {
	return r.DB.Where("1 = 1").Delete(&Anuncio{}).Error
}

// SyncLogRepository encapsula o log de sincronização (append-only).
type SyncLogRepository struct {
	DB *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) *SyncLogRepository {
	return &SyncLogRepository{DB: db}
}

func (r *SyncLogRepository) Append(entry *SyncLog) error {
	return r.DB.Create(entry).Error
}

func (r *SyncLogRepository) List(limit int) ([]SyncLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []SyncLog
	err := r.DB.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// DeleteAll apaga todo o log (limpeza em massa do operador).
func (r *SyncLogRepository) DeleteAll() error {
	return r.DB.Where("1 = 1").Delete(&SyncLog{}).Error
}
