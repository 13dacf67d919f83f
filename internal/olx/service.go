package olx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/StoreFone/api-loja/internal/produtos"
	"github.com/StoreFone/api-loja/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Limite de caracteres do título (subject) no autoupload da OLX.
	TituloMax = 90
	// Categoria de celulares, usada quando o operador não informa outra.
	CategoriaPadrao = "3731"
	// Espera antes do primeiro poll quando a criação devolve token de importação.
	esperaImportacaoPadrao = 8 * time.Second
)

// Resultado é o retorno uniforme de toda ação do orquestrador. Falhas nunca
// sobem como erro para a camada HTTP; viram mensagem amigável + código.
type Resultado struct {
	Sucesso  bool     `json:"sucesso"`
	Mensagem string   `json:"mensagem"`
	Codigo   string   `json:"codigo,omitempty"`
	Anuncio  *Anuncio `json:"anuncio,omitempty"`
	Debug    string   `json:"debug,omitempty"`
}

// ValidacaoToken é o resultado da checagem de permissões do token.
type ValidacaoToken struct {
	Valido      bool   `json:"valido"`
	PlanoBasico bool   `json:"planoBasico"`
	Mensagem    string `json:"mensagem"`
}

// CriarAnuncioDTO são os dados do pedido de criação vindos do painel.
type CriarAnuncioDTO struct {
	ProdutoID uint   `json:"produtoId"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Categoria string `json:"categoria"`
}

// Service orquestra config, cliente remoto e persistência local do ciclo de
// vida dos anúncios. Todo estado vive no banco; a config é lida de novo a
// cada ação.
type Service struct {
	Anuncios *Repository
	Logs     *SyncLogRepository
	Config   *ConfigRepository
	Produtos *produtos.Repository
	Cliente  ClienteAPI
	Logger   *zap.Logger

	// EsperaImportacao é exposta para os testes encurtarem o poll.
	EsperaImportacao time.Duration
}

func NewService(db *gorm.DB, cliente ClienteAPI, logger *zap.Logger) *Service {
	return &Service{
		Anuncios:         NewRepository(db),
		Logs:             NewSyncLogRepository(db),
		Config:           NewConfigRepository(db),
		Produtos:         produtos.NewRepository(db),
		Cliente:          cliente,
		Logger:           logger,
		EsperaImportacao: esperaImportacaoPadrao,
	}
}

// registrar grava uma entrada no sync log; falha de log não derruba a ação.
func (s *Service) registrar(acao string, anuncioID, produtoID *uint, sucesso bool, mensagem, payload string) {
	entry := &SyncLog{
		CorrelationID: uuid.NewString(),
		Acao:          acao,
		AnuncioID:     anuncioID,
		ProdutoID:     produtoID,
		Sucesso:       sucesso,
		Mensagem:      mensagem,
		Payload:       payload,
	}
	if err := s.Logs.Append(entry); err != nil {
		s.Logger.Warn("falha ao gravar sync log", zap.String("acao", acao), zap.Error(err))
	}
}

// mensagemAmigavel converte o código de erro do cliente em texto para o painel.
func mensagemAmigavel(e *ErroAPI) string {
	if e == nil {
		return ""
	}
	switch e.Codigo {
	case Erro401:
		return "Token da OLX inválido ou expirado. Gere um novo token no painel da OLX."
	case Erro403:
		return "Token sem permissão de autoupload na OLX."
	case Erro404:
		return "Anúncio não encontrado na OLX."
	case Erro410:
		return "Recurso indisponível para o plano atual da conta OLX."
	case Erro5xx:
		return "A OLX está instável no momento. Tente novamente em instantes."
	case ErroCloudflare:
		return "Requisição bloqueada na borda (Cloudflare). Aguarde e tente novamente."
	case ErroTimeout:
		return "A OLX demorou a responder. Tente novamente."
	case ErroRede:
		return "Falha de rede ao falar com a OLX."
	case ErroParse:
		return "A OLX devolveu uma resposta inesperada."
	case "400", "543":
		return "Anúncio rejeitado pela OLX: verifique título, categoria, preço e localização."
	}
	if e.StatusCode == -6 {
		return "Token sem permissão de autoupload na OLX."
	}
	if e.Mensagem != "" {
		return e.Mensagem
	}
	return "Erro desconhecido ao falar com a OLX."
}

// ValidarPermissoesToken exercita a API com chamadas de leitura para checar
// se o token vale e qual o plano da conta. Um 410 no saldo com
// reason=PRODUCT_NOT_FOUND_BY_ACCOUNT é peculiaridade da plataforma: o token
// é válido, a conta só está no plano básico. Não é erro de autenticação.
func (s *Service) ValidarPermissoesToken(ctx context.Context) ValidacaoToken {
	cfg, err := s.Config.Get()
	if err != nil || !cfg.TokenConfigurado() {
		return ValidacaoToken{Valido: false, Mensagem: "Token da OLX não configurado."}
	}

	if _, apiErr := s.Cliente.AnunciosPublicados(ctx, cfg.AccessToken); apiErr != nil {
		if apiErr.Codigo == Erro401 || apiErr.Codigo == Erro403 || apiErr.StatusCode == -6 {
			s.registrar("validar_token", nil, nil, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
			return ValidacaoToken{Valido: false, Mensagem: mensagemAmigavel(apiErr)}
		}
		// erro transitório em leitura não invalida o token
		s.Logger.Warn("validação de token: leitura de publicados falhou", zap.String("codigo", apiErr.Codigo))
	}

	if _, apiErr := s.Cliente.Saldo(ctx, cfg.AccessToken); apiErr != nil {
		if apiErr.Codigo == Erro410 && apiErr.Reason == "PRODUCT_NOT_FOUND_BY_ACCOUNT" {
			s.registrar("validar_token", nil, nil, true, "token válido (plano básico)", string(apiErr.Detalhes))
			return ValidacaoToken{Valido: true, PlanoBasico: true, Mensagem: "Token válido. Conta no plano básico da OLX."}
		}
		if apiErr.Codigo == Erro401 || apiErr.Codigo == Erro403 || apiErr.StatusCode == -6 {
			s.registrar("validar_token", nil, nil, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
			return ValidacaoToken{Valido: false, Mensagem: mensagemAmigavel(apiErr)}
		}
		s.registrar("validar_token", nil, nil, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
		return ValidacaoToken{Valido: false, Mensagem: mensagemAmigavel(apiErr)}
	}

	s.registrar("validar_token", nil, nil, true, "token válido", "")
	return ValidacaoToken{Valido: true, Mensagem: "Token válido."}
}

// Criar publica um produto na OLX e persiste o registro local do anúncio.
func (s *Service) Criar(ctx context.Context, dto CriarAnuncioDTO) Resultado {
	produtoID := dto.ProdutoID

	cfg, err := s.Config.Get()
	if err != nil {
		return Resultado{Mensagem: "Erro ao ler configuração da OLX."}
	}
	if !cfg.SincronizacaoAtiva {
		return Resultado{Mensagem: "Sincronização com a OLX está desligada."}
	}
	if !cfg.TokenConfigurado() {
		return Resultado{Mensagem: "Token da OLX não configurado."}
	}
	if cfg.TokenExpirado() {
		return Resultado{Codigo: Erro401, Mensagem: "Token da OLX expirado. Gere um novo token."}
	}

	// dry-run de permissões antes de montar qualquer payload: um token
	// revogado para aqui, e o caso "410 plano básico" é aceito como válido
	if v := s.ValidarPermissoesToken(ctx); !v.Valido {
		return Resultado{Mensagem: v.Mensagem}
	}

	// pré-check amigável; o índice parcial fecha a corrida
	if existente, err := s.Anuncios.FindAtivoPorProduto(produtoID); err == nil && existente != nil {
		return Resultado{Mensagem: "Produto já possui anúncio ativo na OLX.", Anuncio: existente}
	}

	produto, err := s.Produtos.FindByID(produtoID)
	if err != nil {
		return Resultado{Mensagem: "Produto não encontrado."}
	}

	titulo := dto.Titulo
	if titulo == "" {
		titulo = produto.Nome
	}
	titulo = utils.Truncar(titulo, TituloMax)

	descricao := dto.Descricao
	if descricao == "" {
		descricao = produto.Descricao
	}

	categoria := dto.Categoria
	if categoria == "" {
		categoria = CategoriaPadrao
	}

	anuncio := &Anuncio{
		ProdutoID: produtoID,
		Titulo:    titulo,
		Descricao: descricao,
		Preco:     produto.Preco,
		Status:    StatusPendente,
	}
	if err := s.Anuncios.Create(anuncio); err != nil {
		if strings.Contains(err.Error(), "uniq_anuncio_ativo_por_produto") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return Resultado{Mensagem: "Produto já possui anúncio ativo na OLX."}
		}
		return Resultado{Mensagem: "Erro ao gravar anúncio local."}
	}

	wire := AnuncioWire{
		ExternalID: fmt.Sprintf("loja-%d", produto.ID),
		Operacao:   "insert",
		Categoria:  categoria,
		Titulo:     titulo,
		Descricao:  descricao,
		Preco:      int(produto.Preco),
		Fotos:      produto.Fotos,
	}

	resp, apiErr := s.Cliente.CriarAnuncio(ctx, cfg.AccessToken, wire)
	if apiErr != nil {
		s.marcarErro(anuncio, mensagemAmigavel(apiErr))
		s.registrar("criar", &anuncio.ID, &produtoID, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
		return Resultado{Codigo: apiErr.Codigo, Mensagem: mensagemAmigavel(apiErr), Anuncio: anuncio}
	}

	switch resp.Tipo {
	case RespostaAdList:
		id := resp.Anuncios[0].IdentificadorRemoto()
		if id == "" {
			// criação pode ter acontecido do lado remoto; fica registrado no
			// log bruto para o operador reconciliar via migração
			s.marcarErro(anuncio, "resposta da OLX sem identificador de anúncio")
			s.registrar("criar", &anuncio.ID, &produtoID, false, "resposta sem identificador", string(resp.Bruto))
			return Resultado{Codigo: ErroParse, Mensagem: "A OLX aceitou o envio mas não devolveu identificador. Use a migração para reconciliar.", Anuncio: anuncio}
		}
		anuncio.OlxID = id
		_ = anuncio.TransicionarPara(StatusAnunciado)

	case RespostaIDDireto:
		anuncio.OlxID = resp.ID
		_ = anuncio.TransicionarPara(StatusAnunciado)

	case RespostaToken:
		anuncio.TokenImportacao = resp.Token
		_ = anuncio.TransicionarPara(StatusProcessando)
		s.resolverImportacao(ctx, cfg.AccessToken, anuncio)
	}

	now := time.Now()
	anuncio.SincronizadoEm = &now
	if err := s.Anuncios.Update(anuncio); err != nil {
		s.registrar("criar", &anuncio.ID, &produtoID, false, "erro ao atualizar registro local", "")
		return Resultado{Mensagem: "Anúncio enviado, mas houve erro ao atualizar o registro local.", Anuncio: anuncio}
	}

	cfg.UltimaSincronizacao = &now
	if err := s.Config.Upsert(&cfg); err != nil {
		s.Logger.Warn("falha ao atualizar última sincronização", zap.Error(err))
	}

	s.registrar("criar", &anuncio.ID, &produtoID, true, "anúncio criado ("+string(anuncio.Status)+")", string(resp.Bruto))
	if anuncio.Status == StatusProcessando {
		return Resultado{Sucesso: true, Mensagem: "Anúncio enviado; aguardando processamento na OLX.", Anuncio: anuncio}
	}
	return Resultado{Sucesso: true, Mensagem: "Anúncio publicado na OLX.", Anuncio: anuncio}
}

// resolverImportacao espera o prazo de processamento e faz um poll único do
// token de importação. Se não resolver, o anúncio segue em "processando" e o
// token fica como identificador temporário (o cron tenta de novo depois).
func (s *Service) resolverImportacao(ctx context.Context, accessToken string, anuncio *Anuncio) {
	espera := s.EsperaImportacao
	if espera > 0 {
		timer := time.NewTimer(espera)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	st, apiErr := s.Cliente.StatusDaImportacao(ctx, accessToken, anuncio.TokenImportacao)
	if apiErr != nil {
		s.Logger.Info("poll de importação falhou; anúncio segue processando",
			zap.Uint("anuncio", anuncio.ID), zap.String("codigo", apiErr.Codigo))
		return
	}
	if len(st.Anuncios) > 0 {
		if id := st.Anuncios[0].IdentificadorRemoto(); id != "" {
			anuncio.OlxID = id
			_ = anuncio.TransicionarPara(StatusAnunciado)
		}
	}
}

func (s *Service) marcarErro(anuncio *Anuncio, mensagem string) {
	_ = anuncio.TransicionarPara(StatusErro)
	anuncio.MensagemErro = mensagem
	if err := s.Anuncios.Update(anuncio); err != nil {
		s.Logger.Warn("falha ao gravar status de erro", zap.Uint("anuncio", anuncio.ID), zap.Error(err))
	}
}

// Remover apaga o anúncio local incondicionalmente e tenta a remoção remota.
// Qualquer falha remota degrada para "removido localmente": o estado local é
// a fonte de verdade; a OLX converge depois. Sempre devolve sucesso, e
// remover um id já removido não é fatal.
func (s *Service) Remover(ctx context.Context, anuncioID uint) Resultado {
	anuncio, err := s.Anuncios.FindByID(anuncioID)
	if err != nil {
		return Resultado{Sucesso: true, Mensagem: "Anúncio já removido."}
	}

	avisoRemoto := ""
	if anuncio.OlxID != "" {
		cfg, cfgErr := s.Config.Get()
		if cfgErr != nil || !cfg.TokenConfigurado() {
			avisoRemoto = "remoção remota não tentada: token indisponível"
		} else if apiErr := s.Cliente.RemoverAnuncio(ctx, cfg.AccessToken, anuncio.OlxID); apiErr != nil {
			avisoRemoto = "remoção remota falhou: " + mensagemAmigavel(apiErr)
		}
	}

	if err := s.Anuncios.Delete(anuncio); err != nil {
		s.registrar("remover", &anuncio.ID, &anuncio.ProdutoID, false, "erro ao remover registro local", "")
		return Resultado{Mensagem: "Erro ao remover o anúncio local."}
	}

	mensagem := "Anúncio removido."
	if avisoRemoto != "" {
		mensagem = "Anúncio removido localmente; " + avisoRemoto + "."
	}
	s.registrar("remover", &anuncio.ID, &anuncio.ProdutoID, true, mensagem, "")
	return Resultado{Sucesso: true, Mensagem: mensagem}
}

// AtualizarStatus consulta a OLX e atualiza um único anúncio local.
func (s *Service) AtualizarStatus(ctx context.Context, anuncioID uint) Resultado {
	anuncio, err := s.Anuncios.FindByID(anuncioID)
	if err != nil {
		return Resultado{Mensagem: "Anúncio não encontrado."}
	}

	cfg, err := s.Config.Get()
	if err != nil || !cfg.TokenConfigurado() {
		return Resultado{Mensagem: "Token da OLX não configurado."}
	}

	if anuncio.OlxID == "" && anuncio.TokenImportacao != "" {
		st, apiErr := s.Cliente.StatusDaImportacao(ctx, cfg.AccessToken, anuncio.TokenImportacao)
		if apiErr != nil {
			s.registrar("status", &anuncio.ID, &anuncio.ProdutoID, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
			return Resultado{Codigo: apiErr.Codigo, Mensagem: mensagemAmigavel(apiErr), Anuncio: anuncio}
		}
		if len(st.Anuncios) > 0 {
			if id := st.Anuncios[0].IdentificadorRemoto(); id != "" {
				anuncio.OlxID = id
				_ = anuncio.TransicionarPara(StatusAnunciado)
			}
		}
	} else if anuncio.OlxID != "" {
		remoto, apiErr := s.Cliente.StatusAnuncio(ctx, cfg.AccessToken, anuncio.OlxID)
		if apiErr != nil {
			s.registrar("status", &anuncio.ID, &anuncio.ProdutoID, false, mensagemAmigavel(apiErr), string(apiErr.Detalhes))
			return Resultado{Codigo: apiErr.Codigo, Mensagem: mensagemAmigavel(apiErr), Anuncio: anuncio}
		}
		switch remoto.Status {
		case "paused", "disabled":
			_ = anuncio.TransicionarPara(StatusPausado)
		case "active", "published":
			_ = anuncio.TransicionarPara(StatusAnunciado)
		}
	}

	now := time.Now()
	anuncio.SincronizadoEm = &now
	if err := s.Anuncios.Update(anuncio); err != nil {
		return Resultado{Mensagem: "Erro ao atualizar registro local.", Anuncio: anuncio}
	}
	s.registrar("status", &anuncio.ID, &anuncio.ProdutoID, true, "status atualizado ("+string(anuncio.Status)+")", "")
	return Resultado{Sucesso: true, Mensagem: "Status atualizado.", Anuncio: anuncio}
}

// Saldo consulta os créditos da conta.
func (s *Service) Saldo(ctx context.Context) (*SaldoInfo, *ErroAPI) {
	cfg, err := s.Config.Get()
	if err != nil || !cfg.TokenConfigurado() {
		return nil, &ErroAPI{Codigo: Erro401, Mensagem: "token não configurado"}
	}
	return s.Cliente.Saldo(ctx, cfg.AccessToken)
}

// LimparTudo apaga todos os anúncios locais e todo o sync log. Irreversível;
// só para resets disparados pelo operador.
func (s *Service) LimparTudo() error {
	return s.Anuncios.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Anuncio{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&SyncLog{}).Error
	})
}
