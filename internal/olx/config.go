package olx

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Config é a linha única de configuração da integração com a OLX.
// Guarda as credenciais OAuth e o estado da sincronização.
type Config struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ClientID            string     `gorm:"size:255" json:"clientId"`
	ClientSecret        string     `gorm:"size:255" json:"-"`
	AccessToken         string     `gorm:"type:text" json:"-"`
	RefreshToken        string     `gorm:"type:text" json:"-"`
	TokenExpiraEm       *time.Time `json:"tokenExpiraEm"`
	SincronizacaoAtiva  bool       `gorm:"not null;default:false" json:"sincronizacaoAtiva"`
	UltimaSincronizacao *time.Time `json:"ultimaSincronizacao"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (Config) TableName() string { return "olx_config" }

// TokenConfigurado indica se há um access token salvo.
func (c Config) TokenConfigurado() bool { return c.AccessToken != "" }

// TokenExpirado indica se o token salvo já passou da validade.
func (c Config) TokenExpirado() bool {
	return c.TokenExpiraEm != nil && time.Now().After(*c.TokenExpiraEm)
}

// ConfigRepository lê e grava a configuração singleton da integração.
type ConfigRepository struct {
	DB *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{DB: db}
}

// Get devolve a configuração atual; zero value quando ainda não existe.
func (r *ConfigRepository) Get() (Config, error) {
	var cfg Config
	err := r.DB.First(&cfg, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Config{ID: 1}, nil
	}
	return cfg, err
}

// Upsert grava a linha única (id = 1), criando-a na primeira vez.
func (r *ConfigRepository) Upsert(cfg *Config) error {
	cfg.ID = 1
	return r.DB.Save(cfg).Error
}
