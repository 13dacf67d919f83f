package banners

import (
	"fmt"
	"strings"
	"testing"
	"time"

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

func TestListarAtivosExcluiInativos(t *testing.T) {
	repo := bancoTeste(t)

	if err := repo.Create(&Banner{Titulo: "Lançamento", Imagem: "a.jpg", Ativo: ativo(true)}); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}
	// banner criado explicitamente inativo não pode voltar ativo do banco
	if err := repo.Create(&Banner{Titulo: "Rascunho", Imagem: "b.jpg", Ativo: ativo(false)}); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	bs, err := repo.ListarAtivos()
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if len(bs) != 1 || bs[0].Titulo != "Lançamento" {
		t.Fatalf("apenas banners ativos entram na vitrine: %+v", bs)
	}
}

func TestListarAtivosRespeitaJanela(t *testing.T) {
	repo := bancoTeste(t)

	passado := time.Now().Add(-48 * time.Hour)
	futuro := time.Now().Add(48 * time.Hour)

	casos := []Banner{
		{Titulo: "sem janela", Imagem: "1.jpg", Ativo: ativo(true)},
		{Titulo: "em exibição", Imagem: "2.jpg", Ativo: ativo(true), InicioEm: &passado, FimEm: &futuro},
		{Titulo: "encerrado", Imagem: "3.jpg", Ativo: ativo(true), FimEm: &passado},
		{Titulo: "agendado", Imagem: "4.jpg", Ativo: ativo(true), InicioEm: &futuro},
	}
	for i := range casos {
		if err := repo.Create(&casos[i]); err != nil {
			t.Fatalf("seed falhou: %v", err)
		}
	}

	bs, err := repo.ListarAtivos()
	if err != nil {
		t.Fatalf("erro na listagem: %v", err)
	}
	if len(bs) != 2 {
		t.Fatalf("só banners dentro da janela podem aparecer: %+v", bs)
	}
	for _, b := range bs {
		if b.Titulo == "encerrado" || b.Titulo == "agendado" {
			t.Errorf("banner fora da janela na vitrine: %s", b.Titulo)
		}
	}
}
