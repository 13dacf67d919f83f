package auth

import (
	"time"

	"gorm.io/gorm"
)

// Usuario representa um operador do painel administrativo da loja.
type Usuario struct {
	gorm.Model
	Nome  string `json:"nome"`
	Email string `json:"email" gorm:"unique"`
	Senha string `json:"-"`
	Admin bool   `json:"admin" gorm:"not null;default:false"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	FamilyID  string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Migrate cria as tabelas de autenticação.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{}, &RefreshToken{})
}
