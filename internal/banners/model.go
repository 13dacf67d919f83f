package banners

import (
	"time"

	"gorm.io/gorm"
)

// Banner representa um destaque da vitrine da loja.
type Banner struct {
	gorm.Model
	Titulo    string     `gorm:"size:255;not null" json:"titulo"`
	Subtitulo string     `gorm:"size:255" json:"subtitulo"`
	Imagem    string     `gorm:"not null" json:"imagem"` // URL da imagem no CDN
	Link      string     `json:"link"`
	Ordem     int        `gorm:"not null;default:0" json:"ordem"`
	// Ponteiro: com tag default o GORM omitiria `false` no INSERT.
	Ativo     *bool      `gorm:"not null;default:true" json:"ativo"`
	InicioEm  *time.Time `json:"inicioEm"` // janela de exibição opcional
	FimEm     *time.Time `json:"fimEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Banner{})
}
