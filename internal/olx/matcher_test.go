package olx

import "testing"

func TestSimilaridadeTitulo(t *testing.T) {
	casos := []struct {
		a, b string
		quer float64
	}{
		{"iPhone 11 128GB", "iphone 11 128gb", 1.0},
		{"iPhone 11 128GB", "IPHONE  11   128GB!!!", 1.0},
		{"Micro-ondas Elétrico", "micro ondas eletrico", 1.0}, // acentos e pontuação não contam
		{"iPhone 11 128GB", "iPhone 11 128GB Preto", 0.8},     // contenção
		{"iPhone 11", "iPhone 13", 0.5},                       // 1 token comum de 2
		{"iPhone 11 128GB", "iPhone 13", 1.0 / 3.0},           // 1 de 3
		{"", "iPhone 11", 0},
		{"iPhone 11", "", 0},
	}
	for _, c := range casos {
		if got := SimilaridadeTitulo(c.a, c.b); !quase(got, c.quer) {
			t.Errorf("SimilaridadeTitulo(%q, %q) = %v, esperado %v", c.a, c.b, got, c.quer)
		}
	}
}

func TestSimilaridadeTituloSimetrica(t *testing.T) {
	a, b := "iPhone 11 Pro Max", "iphone 13 mini"
	if SimilaridadeTitulo(a, b) != SimilaridadeTitulo(b, a) {
		t.Error("similaridade de título deve ser simétrica")
	}
	if got := SimilaridadeTitulo(a, a); got != 1.0 {
		t.Errorf("título contra ele mesmo deve dar 1.0, deu %v", got)
	}
}

func TestSimilaridadePreco(t *testing.T) {
	casos := []struct {
		local, remoto, quer float64
	}{
		{1500, 1500, 1.0},
		{1000, 900, 0.9},
		{1000, 1100, 0.9},
		{1000, 3000, 0},  // nunca negativa
		{0, 100, 0},      // base mínima de 1 evita divisão por zero
		{1000, 0, 0},
	}
	for _, c := range casos {
		got := SimilaridadePreco(c.local, c.remoto)
		if got < 0 || got > 1 {
			t.Errorf("SimilaridadePreco(%v, %v) = %v fora de [0, 1]", c.local, c.remoto, got)
		}
		if !quase(got, c.quer) {
			t.Errorf("SimilaridadePreco(%v, %v) = %v, esperado %v", c.local, c.remoto, got, c.quer)
		}
	}
}

// Cenário clássico da migração: o anúncio local do iPhone 11 precisa casar
// com o iPhone 11 remoto e não com o iPhone 13 de preço igual.
func TestPontuarPrefereModeloCerto(t *testing.T) {
	local := Anuncio{Titulo: "iPhone 11 128GB", Preco: 1500}

	certo := AnuncioRemoto{ListID: "111", Titulo: "iPhone 11 128GB Preto", Preco: 1500}
	errado := AnuncioRemoto{ListID: "222", Titulo: "iPhone 13", Preco: 1500}

	scoreCerto := Pontuar(local, "iPhone 11 128GB", certo)
	scoreErrado := Pontuar(local, "iPhone 11 128GB", errado)

	if scoreCerto <= scoreErrado {
		t.Fatalf("candidato certo (%v) deveria pontuar acima do errado (%v)", scoreCerto, scoreErrado)
	}
	if scoreCerto <= limiarAceitacao {
		t.Fatalf("candidato certo (%v) deveria passar do limiar %v", scoreCerto, limiarAceitacao)
	}
}

func TestPontuarUsaMelhorEntreTituloENome(t *testing.T) {
	// título local editado à mão; o nome do produto ainda casa
	local := Anuncio{Titulo: "PROMOÇÃO IMPERDÍVEL!!!", Preco: 1500}
	remoto := AnuncioRemoto{Titulo: "iPhone 11 128GB", Preco: 1500}

	com := Pontuar(local, "iPhone 11 128GB", remoto)
	sem := Pontuar(local, "", remoto)
	if com <= sem {
		t.Fatalf("nome do produto deveria melhorar o score (%v <= %v)", com, sem)
	}
}

func quase(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
