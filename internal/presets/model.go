package presets

import (
	"gorm.io/gorm"
)

// PresetFinanciamento define um plano de parcelamento da loja.
// O coeficiente é o multiplicador aplicado sobre o preço à vista
// (ex.: 12x com coeficiente 1.18 = 18% de acréscimo no total).
type PresetFinanciamento struct {
	gorm.Model
	Nome        string  `gorm:"size:100;not null" json:"nome"`
	Parcelas    int     `gorm:"not null" json:"parcelas"`
	Coeficiente float64 `gorm:"not null;default:1" json:"coeficiente"`
	// Ponteiro: com tag default o GORM omitiria `false` no INSERT.
	Ativo *bool `gorm:"not null;default:true" json:"ativo"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PresetFinanciamento{})
}
