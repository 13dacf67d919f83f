package presets

import "math"

// ParcelaDTO é uma linha da tabela de financiamento exibida no produto.
type ParcelaDTO struct {
	Nome          string  `json:"nome"`
	Parcelas      int     `json:"parcelas"`
	ValorParcela  float64 `json:"valorParcela"`
	TotalPrazo    float64 `json:"totalPrazo"`
	AcrescimoPerc float64 `json:"acrescimoPerc"`
}

// arredonda para centavos
func centavos(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalcularParcela monta a linha de financiamento de um preset para o preço dado.
func CalcularParcela(preco float64, p PresetFinanciamento) ParcelaDTO {
	if p.Parcelas < 1 {
		p.Parcelas = 1
	}
	total := centavos(preco * p.Coeficiente)
	return ParcelaDTO{
		Nome:          p.Nome,
		Parcelas:      p.Parcelas,
		ValorParcela:  centavos(total / float64(p.Parcelas)),
		TotalPrazo:    total,
		AcrescimoPerc: centavos((p.Coeficiente - 1) * 100),
	}
}

// MontarTabela calcula a tabela completa de financiamento para um preço.
func MontarTabela(preco float64, presets []PresetFinanciamento) []ParcelaDTO {
	tabela := make([]ParcelaDTO, 0, len(presets))
	for _, p := range presets {
		tabela = append(tabela, CalcularParcela(preco, p))
	}
	return tabela
}
