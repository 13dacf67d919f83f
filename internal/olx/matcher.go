package olx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/StoreFone/api-loja/internal/utils"
	"go.uber.org/zap"
)

// Parâmetros da migração. Pesos e limiar foram calibrados na prática: título
// pesa mais porque o preço às vezes foi editado ou descontado depois da
// publicação, mas o preço ainda separa modelos de título parecido. É um
// desempate heurístico best-effort, não um classificador garantido.
const (
	pesoTitulo       = 0.6
	pesoPreco        = 0.4
	limiarAceitacao  = 0.5
	maxCandidatos    = 50
	atrasoPorDetalhe = 500 * time.Millisecond
)

// normalizarTitulo prepara um título para comparação: minúsculas, sem
// acentos, sem pontuação, espaços colapsados.
func normalizarTitulo(s string) string {
	s = strings.ToLower(utils.RemoverAcentos(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SimilaridadeTitulo devolve 1.0 para títulos iguais após normalização,
// 0.8 quando um contém o outro, senão a fração de tokens em comum sobre a
// maior contagem de tokens.
func SimilaridadeTitulo(a, b string) float64 {
	na, nb := normalizarTitulo(a), normalizarTitulo(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	tokensA := strings.Fields(na)
	tokensB := strings.Fields(nb)
	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}
	comuns := 0
	vistos := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		if setA[t] && !vistos[t] {
			comuns++
			vistos[t] = true
		}
	}
	maior := len(tokensA)
	if len(tokensB) > maior {
		maior = len(tokensB)
	}
	return float64(comuns) / float64(maior)
}

// SimilaridadePreco devolve 1.0 para preços iguais, caindo linearmente com a
// diferença relativa; nunca negativa.
func SimilaridadePreco(local, remoto float64) float64 {
	base := local
	if base < 1 {
		base = 1
	}
	diff := remoto - local
	if diff < 0 {
		diff = -diff
	}
	sim := 1 - diff/base
	if sim < 0 {
		return 0
	}
	return sim
}

// Pontuar calcula o score de um candidato remoto contra um anúncio local.
// No título vale o melhor entre o título salvo e o nome do produto, já que
// anúncios antigos foram criados com títulos editados à mão.
func Pontuar(anuncio Anuncio, nomeProduto string, remoto AnuncioRemoto) float64 {
	simTitulo := SimilaridadeTitulo(anuncio.Titulo, remoto.Titulo)
	if nomeProduto != "" {
		if alt := SimilaridadeTitulo(nomeProduto, remoto.Titulo); alt > simTitulo {
			simTitulo = alt
		}
	}
	return pesoTitulo*simTitulo + pesoPreco*SimilaridadePreco(anuncio.Preco, remoto.Preco)
}

// ResultadoMigracao resume uma rodada de migração.
type ResultadoMigracao struct {
	Analisados int      `json:"analisados"`
	Migrados   int      `json:"migrados"`
	SemMatch   int      `json:"semMatch"`
	Detalhes   []string `json:"detalhes"`
}

// Migrar preenche o olx_id de anúncios criados antes do rastreamento de id,
// casando-os com os anúncios publicados na conta por similaridade de título
// e preço. Registros sem match confiável ficam como estão, com o melhor
// score no log para revisão do operador.
func (s *Service) Migrar(ctx context.Context) (*ResultadoMigracao, error) {
	cfg, err := s.Config.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.TokenConfigurado() {
		return &ResultadoMigracao{Detalhes: []string{"token da OLX não configurado"}}, nil
	}

	pendentes, err := s.Anuncios.ListSemOlxID()
	if err != nil {
		return nil, err
	}
	if len(pendentes) == 0 {
		return &ResultadoMigracao{}, nil
	}

	remotos, apiErr := s.Cliente.AnunciosPublicados(ctx, cfg.AccessToken)
	if apiErr != nil {
		s.registrar("migrar", nil, nil, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
		return nil, apiErr
	}
	// limita o volume de chamadas: só os primeiros candidatos entram na rodada
	if len(remotos) > maxCandidatos {
		remotos = remotos[:maxCandidatos]
	}

	// candidatos sem preço na listagem precisam de uma chamada de detalhe
	// cada; a sequência com atraso fixo evita estourar o rate limit
	for i := range remotos {
		if remotos[i].Preco > 0 || remotos[i].IdentificadorRemoto() == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(atrasoPorDetalhe):
		}
		detalhe, apiErr := s.Cliente.StatusAnuncio(ctx, cfg.AccessToken, remotos[i].IdentificadorRemoto())
		if apiErr != nil {
			s.Logger.Warn("detalhe de candidato falhou", zap.String("olxId", remotos[i].IdentificadorRemoto()))
			continue
		}
		remotos[i].Preco = detalhe.Preco
		if remotos[i].Titulo == "" {
			remotos[i].Titulo = detalhe.Titulo
		}
	}

	resultado := &ResultadoMigracao{Analisados: len(pendentes)}
	usados := make(map[string]bool, len(remotos))

	for _, anuncio := range pendentes {
		nomeProduto := ""
		if produto, err := s.Produtos.FindByID(anuncio.ProdutoID); err == nil {
			nomeProduto = produto.Nome
		}

		melhorScore := 0.0
		var melhor *AnuncioRemoto
		for i := range remotos {
			id := remotos[i].IdentificadorRemoto()
			if id == "" || usados[id] {
				continue
			}
			if score := Pontuar(anuncio, nomeProduto, remotos[i]); score > melhorScore {
				melhorScore = score
				melhor = &remotos[i]
			}
		}

		if melhor == nil || melhorScore <= limiarAceitacao {
			resultado.SemMatch++
			msg := "sem match confiável"
			if melhor != nil {
				msg = "sem match confiável (melhor score: " + formatScore(melhorScore) + " — " + melhor.Titulo + ")"
			}
			resultado.Detalhes = append(resultado.Detalhes, anuncio.Titulo+": "+msg)
			s.registrar("migrar", &anuncio.ID, &anuncio.ProdutoID, false, msg, "")
			continue
		}

		a := anuncio
		a.OlxID = melhor.IdentificadorRemoto()
		a.TokenImportacao = ""
		_ = a.TransicionarPara(StatusAnunciado)
		now := time.Now()
		a.SincronizadoEm = &now
		if err := s.Anuncios.Update(&a); err != nil {
			resultado.Detalhes = append(resultado.Detalhes, anuncio.Titulo+": erro ao gravar match")
			s.registrar("migrar", &anuncio.ID, &anuncio.ProdutoID, false, "erro ao gravar match", "")
			continue
		}
		usados[a.OlxID] = true
		resultado.Migrados++
		resultado.Detalhes = append(resultado.Detalhes, anuncio.Titulo+": migrado para olx_id "+a.OlxID+" (score "+formatScore(melhorScore)+")")
		s.registrar("migrar", &a.ID, &a.ProdutoID, true, "olx_id preenchido: "+a.OlxID+" (score "+formatScore(melhorScore)+")", "")
	}

	return resultado, nil
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
