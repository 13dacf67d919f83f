package olx

import (
	"fmt"
	"time"
)

// Status do ciclo de vida de um anúncio local.
type Status string

const (
	StatusPendente    Status = "pendente"
	StatusProcessando Status = "processando"
	StatusAnunciado   Status = "anunciado"
	StatusErro        Status = "erro"
	StatusPausado     Status = "pausado"
	StatusRemovido    Status = "removido"
)

// Transições válidas entre status. Qualquer escrita de status passa por aqui;
// gravação arbitrária de string no banco não é permitida.
var transicoes = map[Status][]Status{
	StatusPendente:    {StatusProcessando, StatusAnunciado, StatusErro},
	StatusProcessando: {StatusAnunciado, StatusErro},
	StatusAnunciado:   {StatusPausado, StatusRemovido, StatusErro},
	StatusPausado:     {StatusAnunciado, StatusRemovido},
	StatusErro:        {StatusPendente, StatusRemovido},
}

// Anuncio é o registro local de um anúncio publicado (ou em publicação) na OLX.
// Referencia o produto, não o possui.
type Anuncio struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ProdutoID       uint       `gorm:"not null;index" json:"produtoId"`
	OlxID           string     `gorm:"size:100;index" json:"olxId"` // vazio até resolver
	TokenImportacao string     `gorm:"size:255" json:"tokenImportacao,omitempty"`
	Titulo          string     `gorm:"size:100;not null" json:"titulo"`
	Descricao       string     `gorm:"type:text" json:"descricao"`
	Preco           float64    `gorm:"not null;default:0" json:"preco"`
	Status          Status     `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	MensagemErro    string     `gorm:"type:text" json:"mensagemErro,omitempty"`
	SincronizadoEm  *time.Time `json:"sincronizadoEm"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Anuncio) TableName() string { return "olx_anuncios" }

// TransicionarPara muda o status validando contra a tabela de transições.
func (a *Anuncio) TransicionarPara(novo Status) error {
	if a.Status == novo {
		return nil
	}
	for _, permitido := range transicoes[a.Status] {
		if permitido == novo {
			a.Status = novo
			return nil
		}
	}
	return fmt.Errorf("transição de status inválida: %s -> %s", a.Status, novo)
}

// Resolvido indica se o anúncio já tem identificador remoto definitivo ou,
// transitoriamente, um token de importação pendente.
func (a *Anuncio) Resolvido() bool {
	return a.OlxID != "" || a.TokenImportacao != ""
}

// SyncLog é o registro append-only de cada ação do orquestrador.
// Nunca é alterado; só é apagado pela limpeza em massa do operador.
type SyncLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CorrelationID string    `gorm:"size:36;index" json:"correlationId"`
	Acao          string    `gorm:"size:30;not null;index" json:"acao"` // criar, remover, migrar, status, validar_token, limpar
	AnuncioID     *uint     `gorm:"index" json:"anuncioId,omitempty"`
	ProdutoID     *uint     `gorm:"index" json:"produtoId,omitempty"`
	Sucesso       bool      `gorm:"not null" json:"sucesso"`
	Mensagem      string    `gorm:"type:text" json:"mensagem"`
	Payload       string    `gorm:"type:text" json:"payload,omitempty"` // request/response brutos, para diagnóstico
	CreatedAt     time.Time `json:"createdAt"`
}

func (SyncLog) TableName() string { return "olx_sync_log" }
