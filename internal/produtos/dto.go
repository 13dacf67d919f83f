package produtos

// Filtro carrega os parâmetros de busca do catálogo público.
type Filtro struct {
	Condicao   string
	Cor        string
	Busca      string
	PrecoMin   float64
	PrecoMax   float64
	BateriaMin int
	Ordenar    string // "preco_asc", "preco_desc", "recentes"
	Pagina     int
	PorPagina  int
}

// ListagemDTO é a resposta paginada do catálogo.
type ListagemDTO struct {
	Produtos  []Produto `json:"produtos"`
	Total     int64     `json:"total"`
	Pagina    int       `json:"pagina"`
	PorPagina int       `json:"porPagina"`
}
