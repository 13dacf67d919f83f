package presets

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /financiamento?preco=1500
func (h *Handler) TabelaFinanciamento(w http.ResponseWriter, r *http.Request) {
	preco, err := strconv.ParseFloat(r.URL.Query().Get("preco"), 64)
	if err != nil || preco <= 0 {
		http.Error(w, "Parâmetro 'preco' inválido", http.StatusBadRequest)
		return
	}

	ativos, err := h.Repo.ListarAtivos()
	if err != nil {
		http.Error(w, "Erro ao buscar presets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MontarTabela(preco, ativos))
}

// GET /admin/presets
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar presets", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ps)
}

// POST /admin/presets
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var p PresetFinanciamento
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if p.Parcelas < 1 || p.Parcelas > 18 {
		http.Error(w, "Número de parcelas deve ficar entre 1 e 18", http.StatusBadRequest)
		return
	}
	if p.Coeficiente <= 0 {
		http.Error(w, "Coeficiente deve ser maior que zero", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "Erro ao criar preset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /admin/presets/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de preset inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Preset não encontrado", http.StatusNotFound)
		return
	}

	var body PresetFinanciamento
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	existing.Nome = body.Nome
	existing.Parcelas = body.Parcelas
	existing.Coeficiente = body.Coeficiente
	if body.Ativo != nil {
		existing.Ativo = body.Ativo
	}

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "Erro ao atualizar preset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existing)
}

// DELETE /admin/presets/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de preset inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Preset não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(existing); err != nil {
		http.Error(w, "Erro ao deletar preset", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
