package produtos

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func bancoTeste(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco em memória: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("erro no migrate: %v", err)
	}
	return NewRepository(db)
}

func ativo(b bool) *bool { return &b }

func seedCatalogo(t *testing.T, repo *Repository) {
	t.Helper()
	itens := []Produto{
		{Codigo: "IP11-128", Nome: "iPhone 11 128GB", Slug: "iphone-11-128gb", Preco: 1500, NivelBateria: 85, Condicao: CondicaoSeminovo, Ativo: ativo(true)},
		{Codigo: "IP13-128", Nome: "iPhone 13 128GB", Slug: "iphone-13-128gb", Preco: 3000, NivelBateria: 100, Condicao: CondicaoNovo, Ativo: ativo(true)},
		{Codigo: "IP12-64", Nome: "iPhone 12 64GB", Slug: "iphone-12-64gb", Preco: 2200, NivelBateria: 92, Condicao: CondicaoSeminovo, Ativo: ativo(true)},
		{Codigo: "IPSE-64", Nome: "iPhone SE 64GB", Slug: "iphone-se-64gb", Preco: 900, NivelBateria: 78, Condicao: CondicaoSeminovo, Ativo: ativo(false)},
	}
	for i := range itens {
		if err := repo.Create(&itens[i]); err != nil {
			t.Fatalf("seed falhou: %v", err)
		}
	}
}

func TestListarCatalogoSoAtivos(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	listagem, err := repo.ListarCatalogo(Filtro{})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if listagem.Total != 3 {
		t.Fatalf("apenas produtos ativos entram no catálogo: total = %d", listagem.Total)
	}
	for _, p := range listagem.Produtos {
		if !p.EstaAtivo() {
			t.Errorf("produto inativo no catálogo: %s", p.Nome)
		}
	}
}

// Produto criado explicitamente como inativo tem que persistir como inativo;
// o default true da coluna não pode engolir o false.
func TestCriarProdutoInativoPersisteFalse(t *testing.T) {
	repo := bancoTeste(t)

	p := Produto{Codigo: "IPX-256", Nome: "iPhone X 256GB", Slug: "iphone-x-256gb", Condicao: CondicaoSeminovo, Preco: 800, Ativo: ativo(false)}
	if err := repo.Create(&p); err != nil {
		t.Fatalf("create falhou: %v", err)
	}

	salvo, err := repo.FindByID(p.ID)
	if err != nil {
		t.Fatalf("produto sumiu: %v", err)
	}
	if salvo.EstaAtivo() {
		t.Fatal("produto criado como inativo voltou do banco como ativo")
	}

	listagem, err := repo.ListarCatalogo(Filtro{})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if listagem.Total != 0 {
		t.Fatalf("produto inativo apareceu no catálogo: total = %d", listagem.Total)
	}
}

func TestCriarProdutoSemAtivoAssumeTrue(t *testing.T) {
	repo := bancoTeste(t)

	p := Produto{Codigo: "IP14-128", Nome: "iPhone 14 128GB", Slug: "iphone-14-128gb", Condicao: CondicaoNovo, Preco: 4000}
	if err := repo.Create(&p); err != nil {
		t.Fatalf("create falhou: %v", err)
	}

	salvo, err := repo.FindByID(p.ID)
	if err != nil {
		t.Fatalf("produto sumiu: %v", err)
	}
	if !salvo.EstaAtivo() {
		t.Fatal("sem o campo, o default da coluna é ativo")
	}
}

// Dois cadastros sem código não podem colidir no índice único.
func TestCriarGeraCodigoQuandoVazio(t *testing.T) {
	repo := bancoTeste(t)

	p1 := Produto{Nome: "iPhone 11 64GB", Slug: "iphone-11-64gb", Condicao: CondicaoSeminovo, Preco: 1300}
	p2 := Produto{Nome: "iPhone 12 128GB", Slug: "iphone-12-128gb", Condicao: CondicaoSeminovo, Preco: 2100}
	if err := repo.Create(&p1); err != nil {
		t.Fatalf("primeiro create falhou: %v", err)
	}
	if err := repo.Create(&p2); err != nil {
		t.Fatalf("segundo create sem código falhou: %v", err)
	}
	if p1.Codigo == "" || p2.Codigo == "" || p1.Codigo == p2.Codigo {
		t.Fatalf("códigos gerados inválidos: %q / %q", p1.Codigo, p2.Codigo)
	}
}

func TestListarCatalogoFiltroCondicao(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	listagem, err := repo.ListarCatalogo(Filtro{Condicao: CondicaoNovo})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if listagem.Total != 1 || listagem.Produtos[0].Nome != "iPhone 13 128GB" {
		t.Fatalf("filtro de condição falhou: %+v", listagem.Produtos)
	}
}

func TestListarCatalogoFaixaDePreco(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	listagem, err := repo.ListarCatalogo(Filtro{PrecoMin: 1000, PrecoMax: 2500})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if listagem.Total != 2 {
		t.Fatalf("faixa de preço deveria devolver 2 produtos: %d", listagem.Total)
	}
	for _, p := range listagem.Produtos {
		if p.Preco < 1000 || p.Preco > 2500 {
			t.Errorf("produto fora da faixa: %s (%.2f)", p.Nome, p.Preco)
		}
	}
}

func TestListarCatalogoBateriaMinima(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	listagem, err := repo.ListarCatalogo(Filtro{BateriaMin: 90})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if listagem.Total != 2 {
		t.Fatalf("bateria >= 90 deveria devolver 2 produtos: %d", listagem.Total)
	}
}

func TestListarCatalogoOrdenacaoPorPreco(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	listagem, err := repo.ListarCatalogo(Filtro{Ordenar: "preco_asc"})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	for i := 1; i < len(listagem.Produtos); i++ {
		if listagem.Produtos[i].Preco < listagem.Produtos[i-1].Preco {
			t.Fatalf("ordenação preco_asc quebrada: %+v", listagem.Produtos)
		}
	}
}

func TestListarCatalogoPaginacao(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	pagina1, err := repo.ListarCatalogo(Filtro{Ordenar: "preco_asc", Pagina: 1, PorPagina: 2})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	pagina2, err := repo.ListarCatalogo(Filtro{Ordenar: "preco_asc", Pagina: 2, PorPagina: 2})
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}

	if len(pagina1.Produtos) != 2 || len(pagina2.Produtos) != 1 {
		t.Fatalf("paginação 2+1 esperada, veio %d+%d", len(pagina1.Produtos), len(pagina2.Produtos))
	}
	if pagina1.Total != 3 || pagina2.Total != 3 {
		t.Errorf("total deve ignorar a paginação: %d/%d", pagina1.Total, pagina2.Total)
	}
}

func TestFindBySlugIgnoraInativos(t *testing.T) {
	repo := bancoTeste(t)
	seedCatalogo(t, repo)

	if _, err := repo.FindBySlug("iphone-11-128gb"); err != nil {
		t.Fatalf("slug ativo deveria ser encontrado: %v", err)
	}
	if _, err := repo.FindBySlug("iphone-se-64gb"); err == nil {
		t.Fatal("slug de produto inativo não pode aparecer na vitrine")
	}
}
