package banners

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

// GET /banners
func (h *Handler) ListarAtivos(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Repo.ListarAtivos()
	if err != nil {
		http.Error(w, "Erro ao buscar banners", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bs)
}

// GET /admin/banners
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar banners", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bs)
}

// POST /admin/banners
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var b Banner
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if b.Imagem == "" {
		http.Error(w, "O campo 'imagem' é obrigatório", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(&b); err != nil {
		http.Error(w, "Erro ao criar banner", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

// PUT /admin/banners/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de banner inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Banner não encontrado", http.StatusNotFound)
		return
	}

	var body Banner
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	existing.Titulo = body.Titulo
	existing.Subtitulo = body.Subtitulo
	existing.Imagem = body.Imagem
	existing.Link = body.Link
	existing.Ordem = body.Ordem
	if body.Ativo != nil {
		existing.Ativo = body.Ativo
	}
	existing.InicioEm = body.InicioEm
	existing.FimEm = body.FimEm

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "Erro ao atualizar banner", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existing)
}

// DELETE /admin/banners/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de banner inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Banner não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(existing); err != nil {
		http.Error(w, "Erro ao deletar banner", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
