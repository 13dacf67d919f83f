package produtos

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Condições aceitas no catálogo.
const (
	CondicaoNovo     = "novo"
	CondicaoSeminovo = "seminovo"
)

// Produto representa um aparelho do catálogo da loja.
type Produto struct {
	gorm.Model
	Codigo       string  `gorm:"size:50;uniqueIndex" json:"codigo"`
	Nome         string  `gorm:"size:255;not null" json:"nome"`
	Slug         string  `gorm:"size:255;uniqueIndex" json:"slug"`
	Descricao    string  `gorm:"type:text" json:"descricao"`
	Preco        float64 `gorm:"not null;default:0" json:"preco"`
	PrecoAntigo  float64 `gorm:"not null;default:0" json:"precoAntigo"`
	NivelBateria int     `gorm:"not null;default:100" json:"nivelBateria"` // 0-100, só relevante em seminovos
	Condicao     string  `gorm:"size:20;not null;default:'seminovo';index" json:"condicao"`
	Garantia     string  `gorm:"size:10;not null;default:'3m'" json:"garantia"` // "3m", "6m", "12m"

	// Acessórios inclusos
	Cabo       bool `gorm:"not null;default:false" json:"cabo"`
	Carregador bool `gorm:"not null;default:false" json:"carregador"`
	Caixa      bool `gorm:"not null;default:false" json:"caixa"`

	// Suporta múltiplas cores e fotos em JSONB
	Cores []string `gorm:"type:jsonb;serializer:json" json:"cores"`
	Fotos []string `gorm:"type:jsonb;serializer:json" json:"fotos"`

	Estoque int `gorm:"not null;default:0" json:"estoque"`

	// Ponteiro para que `false` sobreviva ao Create: o GORM omite campos
	// zero-value com tag default no INSERT, e a coluna teria voltado a true.
	Ativo *bool `gorm:"not null;default:true;index" json:"ativo"`
}

// EstaAtivo trata nil como ativo (o default da coluna).
func (p Produto) EstaAtivo() bool { return p.Ativo == nil || *p.Ativo }

// BeforeCreate gera um código único quando o operador não informa um; o
// índice único em codigo rejeitaria dois cadastros com o campo vazio.
func (p *Produto) BeforeCreate(tx *gorm.DB) error {
	if p.Codigo == "" {
		p.Codigo = "SKU-" + strings.ToUpper(uuid.NewString()[:8])
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Produto{})
}
