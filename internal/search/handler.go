package search

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/StoreFone/api-loja/internal/produtos"
)

// Handler atende a busca pública da vitrine. Com Meilisearch configurado a
// consulta vai no índice; sem ele, cai no filtro SQL do catálogo.
type Handler struct {
	Indice *Client // nil quando a busca externa está desligada
	Repo   *produtos.Repository
}

func NewHandler(indice *Client, repo *produtos.Repository) *Handler {
	return &Handler{Indice: indice, Repo: repo}
}

// GET /busca?q=iphone+11
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "Parâmetro 'q' é obrigatório", http.StatusBadRequest)
		return
	}
	limite, _ := strconv.ParseInt(r.URL.Query().Get("limite"), 10, 64)

	w.Header().Set("Content-Type", "application/json")

	if h.Indice != nil {
		docs, err := h.Indice.Buscar(q, limite)
		if err == nil {
			_ = json.NewEncoder(w).Encode(docs)
			return
		}
		// índice fora do ar: segue para o fallback SQL
	}

	listagem, err := h.Repo.ListarCatalogo(produtos.Filtro{Busca: q, PorPagina: int(limite)})
	if err != nil {
		http.Error(w, "Erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(listagem.Produtos)
}
