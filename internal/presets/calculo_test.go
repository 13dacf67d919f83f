package presets

import "testing"

func TestCalcularParcela(t *testing.T) {
	p := PresetFinanciamento{Nome: "12x cartão", Parcelas: 12, Coeficiente: 1.18}

	dto := CalcularParcela(1000, p)
	if dto.TotalPrazo != 1180.00 {
		t.Errorf("total = %v, esperado 1180.00", dto.TotalPrazo)
	}
	if dto.ValorParcela != 98.33 {
		t.Errorf("parcela = %v, esperado 98.33", dto.ValorParcela)
	}
	if dto.AcrescimoPerc != 18.00 {
		t.Errorf("acréscimo = %v, esperado 18.00", dto.AcrescimoPerc)
	}
}

func TestCalcularParcelaArredondaCentavos(t *testing.T) {
	p := PresetFinanciamento{Nome: "3x", Parcelas: 3, Coeficiente: 1.0}

	dto := CalcularParcela(100, p)
	if dto.ValorParcela != 33.33 {
		t.Errorf("parcela = %v, esperado 33.33", dto.ValorParcela)
	}
	if dto.TotalPrazo != 100.00 {
		t.Errorf("total = %v, esperado 100.00", dto.TotalPrazo)
	}
}

func TestCalcularParcelaClampaParcelas(t *testing.T) {
	p := PresetFinanciamento{Nome: "à vista", Parcelas: 0, Coeficiente: 1.0}

	dto := CalcularParcela(500, p)
	if dto.Parcelas != 1 || dto.ValorParcela != 500.00 {
		t.Errorf("parcelas < 1 deveria virar 1x: %+v", dto)
	}
}

func TestMontarTabela(t *testing.T) {
	presets := []PresetFinanciamento{
		{Nome: "à vista", Parcelas: 1, Coeficiente: 1.0},
		{Nome: "12x", Parcelas: 12, Coeficiente: 1.18},
	}

	tabela := MontarTabela(1000, presets)
	if len(tabela) != 2 {
		t.Fatalf("esperadas 2 linhas, vieram %d", len(tabela))
	}
	if tabela[0].TotalPrazo != 1000.00 || tabela[1].TotalPrazo != 1180.00 {
		t.Errorf("totais inesperados: %+v", tabela)
	}
}
