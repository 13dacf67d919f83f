package scheduler

import (
	"context"
	"time"

	"github.com/StoreFone/api-loja/internal/notificacao"
	"github.com/StoreFone/api-loja/internal/olx"
	"github.com/StoreFone/api-loja/internal/produtos"
	"github.com/StoreFone/api-loja/internal/search"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler agrupa as rotinas periódicas da loja: resolução de importações
// pendentes na OLX, aviso de token perto de expirar e reindex do catálogo.
type Scheduler struct {
	cron      *cron.Cron
	olx       *olx.Service
	produtos  *produtos.Repository
	indice    *search.Client // pode ser nil
	logger    *zap.Logger
	isRunning bool
}

func NewScheduler(olxService *olx.Service, produtosRepo *produtos.Repository, indice *search.Client, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		olx:      olxService,
		produtos: produtosRepo,
		indice:   indice,
		logger:   logger,
	}
}

// Start registra e dispara as rotinas.
func (s *Scheduler) Start() error {
	// anúncios presos em "processando": tenta resolver o token de importação
	if _, err := s.cron.AddFunc("*/10 * * * *", s.resolverPendentes); err != nil {
		return err
	}

	// token OAuth da OLX perto de expirar
	if _, err := s.cron.AddFunc("0 * * * *", s.avisarTokenExpirando); err != nil {
		return err
	}

	// reindex noturno do catálogo
	if s.indice != nil {
		if _, err := s.cron.AddFunc("0 4 * * *", s.reindexarCatalogo); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("scheduler iniciado")
	return nil
}

// Stop para o scheduler.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		s.logger.Info("scheduler parado")
	}
}

func (s *Scheduler) resolverPendentes() {
	pendentes, err := s.olx.Anuncios.ListProcessando()
	if err != nil {
		s.logger.Error("falha ao listar anúncios em processamento", zap.Error(err))
		return
	}
	if len(pendentes) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, anuncio := range pendentes {
		resultado := s.olx.AtualizarStatus(ctx, anuncio.ID)
		if !resultado.Sucesso {
			s.logger.Warn("importação continua pendente",
				zap.Uint("anuncio", anuncio.ID), zap.String("mensagem", resultado.Mensagem))
		}
	}
}

func (s *Scheduler) avisarTokenExpirando() {
	cfg, err := s.olx.Config.Get()
	if err != nil || !cfg.TokenConfigurado() || cfg.TokenExpiraEm == nil {
		return
	}

	restante := time.Until(*cfg.TokenExpiraEm)
	switch {
	case restante <= 0:
		notificacao.EnviarAlerta(s.logger, "token_expirado",
			"O token da OLX expirou. Gere um novo token no painel da OLX.")
	case restante <= 48*time.Hour:
		notificacao.EnviarAlerta(s.logger, "token_expirando",
			"O token da OLX expira em menos de 48 horas.")
	}
}

func (s *Scheduler) reindexarCatalogo() {
	todos, err := s.produtos.ListAll()
	if err != nil {
		s.logger.Error("reindex: falha ao listar produtos", zap.Error(err))
		return
	}
	if err := s.indice.IndexarProdutos(todos); err != nil {
		s.logger.Error("reindex: falha ao indexar catálogo", zap.Error(err))
		return
	}
	s.logger.Info("reindex do catálogo concluído", zap.Int("produtos", len(todos)))
}
