package olx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Handler expõe o painel da integração OLX. Todas as rotas ficam atrás do
// middleware de admin.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func responder(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// GET /admin/olx/config
func (h *Handler) BuscarConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Config.Get()
	if err != nil {
		http.Error(w, "Erro ao ler configuração", http.StatusInternalServerError)
		return
	}
	// tokens nunca voltam no JSON (campos com json:"-"); expõe só o estado
	responder(w, http.StatusOK, map[string]interface{}{
		"clientId":            cfg.ClientID,
		"tokenConfigurado":    cfg.TokenConfigurado(),
		"tokenExpiraEm":       cfg.TokenExpiraEm,
		"sincronizacaoAtiva":  cfg.SincronizacaoAtiva,
		"ultimaSincronizacao": cfg.UltimaSincronizacao,
	})
}

// PUT /admin/olx/config
func (h *Handler) SalvarConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID           string     `json:"clientId"`
		ClientSecret       string     `json:"clientSecret"`
		AccessToken        string     `json:"accessToken"`
		RefreshToken       string     `json:"refreshToken"`
		TokenExpiraEm      *time.Time `json:"tokenExpiraEm"`
		SincronizacaoAtiva bool       `json:"sincronizacaoAtiva"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	cfg, err := h.Service.Config.Get()
	if err != nil {
		http.Error(w, "Erro ao ler configuração", http.StatusInternalServerError)
		return
	}

	cfg.ClientID = req.ClientID
	cfg.SincronizacaoAtiva = req.SincronizacaoAtiva
	cfg.TokenExpiraEm = req.TokenExpiraEm
	// campos sensíveis só são sobrescritos quando enviados
	if req.ClientSecret != "" {
		cfg.ClientSecret = req.ClientSecret
	}
	if req.AccessToken != "" {
		cfg.AccessToken = req.AccessToken
	}
	if req.RefreshToken != "" {
		cfg.RefreshToken = req.RefreshToken
	}

	if err := h.Service.Config.Upsert(&cfg); err != nil {
		http.Error(w, "Erro ao salvar configuração", http.StatusInternalServerError)
		return
	}
	responder(w, http.StatusOK, map[string]bool{"sucesso": true})
}

// GET /admin/olx/validar-token
func (h *Handler) ValidarToken(w http.ResponseWriter, r *http.Request) {
	responder(w, http.StatusOK, h.Service.ValidarPermissoesToken(r.Context()))
}

// GET /admin/olx/saldo
func (h *Handler) Saldo(w http.ResponseWriter, r *http.Request) {
	saldo, apiErr := h.Service.Saldo(r.Context())
	if apiErr != nil {
		responder(w, http.StatusBadGateway, apiErr)
		return
	}
	responder(w, http.StatusOK, saldo)
}

// GET /admin/olx/anuncios
func (h *Handler) ListarAnuncios(w http.ResponseWriter, r *http.Request) {
	anuncios, err := h.Service.Anuncios.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar anúncios", http.StatusInternalServerError)
		return
	}
	responder(w, http.StatusOK, anuncios)
}

// POST /admin/olx/anuncios
func (h *Handler) CriarAnuncio(w http.ResponseWriter, r *http.Request) {
	var dto CriarAnuncioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if dto.ProdutoID == 0 {
		http.Error(w, "O campo 'produtoId' é obrigatório", http.StatusBadRequest)
		return
	}

	resultado := h.Service.Criar(r.Context(), dto)
	status := http.StatusOK
	if !resultado.Sucesso {
		status = http.StatusUnprocessableEntity
	}
	responder(w, status, resultado)
}

// DELETE /admin/olx/anuncios/{id}
func (h *Handler) RemoverAnuncio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de anúncio inválido", http.StatusBadRequest)
		return
	}
	responder(w, http.StatusOK, h.Service.Remover(r.Context(), uint(id)))
}

// POST /admin/olx/anuncios/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de anúncio inválido", http.StatusBadRequest)
		return
	}
	resultado := h.Service.AtualizarStatus(r.Context(), uint(id))
	status := http.StatusOK
	if !resultado.Sucesso {
		status = http.StatusUnprocessableEntity
	}
	responder(w, status, resultado)
}

// POST /admin/olx/migrar
func (h *Handler) Migrar(w http.ResponseWriter, r *http.Request) {
	resultado, err := h.Service.Migrar(r.Context())
	if err != nil {
		http.Error(w, "Erro na migração: "+err.Error(), http.StatusBadGateway)
		return
	}
	responder(w, http.StatusOK, resultado)
}

// GET /admin/olx/logs
func (h *Handler) ListarLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Service.Logs.List(limit)
	if err != nil {
		http.Error(w, "Erro ao buscar logs", http.StatusInternalServerError)
		return
	}
	responder(w, http.StatusOK, logs)
}

// DELETE /admin/olx/logs
func (h *Handler) LimparTudo(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.LimparTudo(); err != nil {
		http.Error(w, "Erro ao limpar dados de sincronização", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
