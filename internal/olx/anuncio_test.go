package olx

import "testing"

func TestTransicionarPara(t *testing.T) {
	casos := []struct {
		de      Status
		para    Status
		permite bool
	}{
		{StatusPendente, StatusProcessando, true},
		{StatusPendente, StatusAnunciado, true},
		{StatusPendente, StatusErro, true},
		{StatusProcessando, StatusAnunciado, true},
		{StatusProcessando, StatusErro, true},
		{StatusAnunciado, StatusPausado, true},
		{StatusAnunciado, StatusRemovido, true},
		{StatusAnunciado, StatusErro, true},
		{StatusPausado, StatusAnunciado, true},
		{StatusPausado, StatusRemovido, true},
		{StatusErro, StatusPendente, true},
		{StatusErro, StatusRemovido, true},

		{StatusAnunciado, StatusPendente, false},
		{StatusAnunciado, StatusProcessando, false},
		{StatusProcessando, StatusPausado, false},
		{StatusProcessando, StatusRemovido, false},
		{StatusPausado, StatusErro, false},
		{StatusRemovido, StatusPendente, false},
		{StatusRemovido, StatusAnunciado, false},
	}

	for _, c := range casos {
		a := Anuncio{Status: c.de}
		err := a.TransicionarPara(c.para)
		if c.permite && err != nil {
			t.Errorf("%s -> %s deveria ser permitido: %v", c.de, c.para, err)
		}
		if !c.permite && err == nil {
			t.Errorf("%s -> %s deveria ser rejeitado", c.de, c.para)
		}
		if !c.permite && a.Status != c.de {
			t.Errorf("transição rejeitada não pode alterar o status (ficou %s)", a.Status)
		}
	}
}

func TestTransicionarParaMesmoStatus(t *testing.T) {
	a := Anuncio{Status: StatusRemovido}
	if err := a.TransicionarPara(StatusRemovido); err != nil {
		t.Fatalf("transição para o mesmo status deve ser no-op: %v", err)
	}
}

func TestResolvido(t *testing.T) {
	if (&Anuncio{}).Resolvido() {
		t.Error("anúncio sem olx_id nem token não está resolvido")
	}
	if !(&Anuncio{OlxID: "123"}).Resolvido() {
		t.Error("anúncio com olx_id está resolvido")
	}
	if !(&Anuncio{TokenImportacao: "tok"}).Resolvido() {
		t.Error("anúncio com token de importação conta como resolvido transitório")
	}
}
