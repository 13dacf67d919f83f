package produtos

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/StoreFone/api-loja/internal/utils"
	"github.com/gorilla/mux"
)

// Indexador é implementado pelo índice de busca (opcional).
type Indexador interface {
	IndexarProduto(p Produto) error
	RemoverDoIndice(id uint) error
}

type Handler struct {
	Repo   *Repository
	Indice Indexador // pode ser nil quando a busca externa está desligada
}

func NewHandler(repo *Repository, indice Indexador) *Handler {
	return &Handler{Repo: repo, Indice: indice}
}

func parseFiltro(r *http.Request) Filtro {
	q := r.URL.Query()
	precoMin, _ := strconv.ParseFloat(q.Get("precoMin"), 64)
	precoMax, _ := strconv.ParseFloat(q.Get("precoMax"), 64)
	bateriaMin, _ := strconv.Atoi(q.Get("bateriaMin"))
	pagina, _ := strconv.Atoi(q.Get("pagina"))
	porPagina, _ := strconv.Atoi(q.Get("porPagina"))
	return Filtro{
		Condicao:   q.Get("condicao"),
		Cor:        q.Get("cor"),
		Busca:      q.Get("q"),
		PrecoMin:   precoMin,
		PrecoMax:   precoMax,
		BateriaMin: bateriaMin,
		Ordenar:    q.Get("ordenar"),
		Pagina:     pagina,
		PorPagina:  porPagina,
	}
}

// GET /produtos
func (h *Handler) ListarCatalogo(w http.ResponseWriter, r *http.Request) {
	listagem, err := h.Repo.ListarCatalogo(parseFiltro(r))
	if err != nil {
		http.Error(w, "Erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listagem)
}

// GET /produtos/{slug}
func (h *Handler) BuscarPorSlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	p, err := h.Repo.FindBySlug(slug)
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// GET /admin/produtos
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	produtos, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(produtos)
}

// POST /admin/produtos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var p Produto
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if p.Nome == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}
	if p.Condicao != CondicaoNovo && p.Condicao != CondicaoSeminovo {
		http.Error(w, "Condição inválida (use 'novo' ou 'seminovo')", http.StatusBadRequest)
		return
	}
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Nome)
	}

	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "Erro ao criar produto", http.StatusInternalServerError)
		return
	}
	h.indexar(p)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /admin/produtos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}

	var body Produto
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	// atualiza campos
	existing.Codigo = body.Codigo
	existing.Nome = body.Nome
	existing.Descricao = body.Descricao
	existing.Preco = body.Preco
	existing.PrecoAntigo = body.PrecoAntigo
	existing.NivelBateria = body.NivelBateria
	existing.Condicao = body.Condicao
	existing.Garantia = body.Garantia
	existing.Cabo = body.Cabo
	existing.Carregador = body.Carregador
	existing.Caixa = body.Caixa
	existing.Cores = body.Cores
	existing.Fotos = body.Fotos
	existing.Estoque = body.Estoque
	if body.Ativo != nil {
		existing.Ativo = body.Ativo
	}
	if body.Slug != "" {
		existing.Slug = body.Slug
	}

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "Erro ao atualizar produto", http.StatusInternalServerError)
		return
	}
	h.indexar(*existing)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existing)
}

// DELETE /admin/produtos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(existing); err != nil {
		http.Error(w, "Erro ao deletar produto", http.StatusInternalServerError)
		return
	}
	if h.Indice != nil {
		_ = h.Indice.RemoverDoIndice(existing.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) indexar(p Produto) {
	if h.Indice != nil {
		// indexação é best-effort; falha não bloqueia o CRUD
		_ = h.Indice.IndexarProduto(p)
	}
}
