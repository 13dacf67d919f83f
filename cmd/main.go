package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/StoreFone/api-loja/internal/auth"
	"github.com/StoreFone/api-loja/internal/banners"
	"github.com/StoreFone/api-loja/internal/logger"
	"github.com/StoreFone/api-loja/internal/olx"
	"github.com/StoreFone/api-loja/internal/presets"
	"github.com/StoreFone/api-loja/internal/produtos"
	"github.com/StoreFone/api-loja/internal/scheduler"
	"github.com/StoreFone/api-loja/internal/search"
	"github.com/StoreFone/api-loja/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.NewLogger()
	if err != nil {
		log.Fatal("Erro ao iniciar logger:", err)
	}
	defer func() { _ = zlog.Sync() }()

	database, err := db.GetDB()
	if err != nil {
		zlog.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := auth.Migrate(database); err != nil {
		zlog.Fatal("Erro no AutoMigrate (auth)", zap.Error(err))
	}
	if err := produtos.Migrate(database); err != nil {
		zlog.Fatal("Erro no AutoMigrate (produtos)", zap.Error(err))
	}
	if err := banners.Migrate(database); err != nil {
		zlog.Fatal("Erro no AutoMigrate (banners)", zap.Error(err))
	}
	if err := presets.Migrate(database); err != nil {
		zlog.Fatal("Erro no AutoMigrate (presets)", zap.Error(err))
	}
	if err := olx.Migrate(database); err != nil {
		zlog.Fatal("Erro no AutoMigrate (olx)", zap.Error(err))
	}

	// primeiro operador (ADMIN_EMAIL) quando o banco está vazio
	if err := auth.SeedAdmin(database, zlog); err != nil {
		zlog.Fatal("Erro ao criar operador inicial", zap.Error(err))
	}

	// Busca externa é opcional: sem MEILI_HOST a vitrine usa o filtro SQL
	var indice *search.Client
	if host := os.Getenv("MEILI_HOST"); host != "" {
		indice = search.NewClient(host, os.Getenv("MEILI_API_KEY"), zlog)
		if err := indice.InitIndex(); err != nil {
			zlog.Warn("Meilisearch indisponível; busca cai no SQL", zap.Error(err))
			indice = nil
		}
	}

	// Repositórios e handlers
	produtosRepo := produtos.NewRepository(database)
	var indexador produtos.Indexador
	if indice != nil {
		indexador = indice
	}
	produtosHandler := produtos.NewHandler(produtosRepo, indexador)
	bannersHandler := banners.NewHandler(banners.NewRepository(database))
	presetsHandler := presets.NewHandler(presets.NewRepository(database))
	buscaHandler := search.NewHandler(indice, produtosRepo)

	olxCliente := olx.NewCliente(os.Getenv("OLX_BASE_URL"), zlog)
	olxService := olx.NewService(database, olxCliente, zlog)
	olxHandler := olx.NewHandler(olxService)

	// Rotinas periódicas
	agenda := scheduler.NewScheduler(olxService, produtosRepo, indice, zlog)
	if err := agenda.Start(); err != nil {
		zlog.Fatal("Erro ao iniciar scheduler", zap.Error(err))
	}
	defer agenda.Stop()

	// Router
	r := mux.NewRouter()

	// Rotas públicas da vitrine
	r.HandleFunc("/produtos", produtosHandler.ListarCatalogo).Methods("GET")
	r.HandleFunc("/produtos/{slug}", produtosHandler.BuscarPorSlug).Methods("GET")
	r.HandleFunc("/banners", bannersHandler.ListarAtivos).Methods("GET")
	r.HandleFunc("/financiamento", presetsHandler.TabelaFinanciamento).Methods("GET")
	r.HandleFunc("/busca", buscaHandler.Buscar).Methods("GET")

	// Rotas de autenticação
	r.HandleFunc("/auth/login", auth.LoginHandler(database)).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(database)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(database)).Methods("POST")

	// Rotas administrativas (token + admin)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.MiddlewareAutenticacao, auth.RequireAdmin)

	admin.HandleFunc("/usuarios", auth.CriarUsuarioHandler(database)).Methods("POST")

	admin.HandleFunc("/produtos", produtosHandler.ListarTodos).Methods("GET")
	admin.HandleFunc("/produtos", produtosHandler.Criar).Methods("POST")
	admin.HandleFunc("/produtos/{id}", produtosHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/produtos/{id}", produtosHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/banners", bannersHandler.ListarTodos).Methods("GET")
	admin.HandleFunc("/banners", bannersHandler.Criar).Methods("POST")
	admin.HandleFunc("/banners/{id}", bannersHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/banners/{id}", bannersHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/presets", presetsHandler.ListarTodos).Methods("GET")
	admin.HandleFunc("/presets", presetsHandler.Criar).Methods("POST")
	admin.HandleFunc("/presets/{id}", presetsHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/presets/{id}", presetsHandler.Deletar).Methods("DELETE")

	// Integração OLX
	admin.HandleFunc("/olx/config", olxHandler.BuscarConfig).Methods("GET")
	admin.HandleFunc("/olx/config", olxHandler.SalvarConfig).Methods("PUT")
	admin.HandleFunc("/olx/validar-token", olxHandler.ValidarToken).Methods("GET")
	admin.HandleFunc("/olx/saldo", olxHandler.Saldo).Methods("GET")
	admin.HandleFunc("/olx/anuncios", olxHandler.ListarAnuncios).Methods("GET")
	admin.HandleFunc("/olx/anuncios", olxHandler.CriarAnuncio).Methods("POST")
	admin.HandleFunc("/olx/anuncios/{id}", olxHandler.RemoverAnuncio).Methods("DELETE")
	admin.HandleFunc("/olx/anuncios/{id}/status", olxHandler.AtualizarStatus).Methods("POST")
	admin.HandleFunc("/olx/migrar", olxHandler.Migrar).Methods("POST")
	admin.HandleFunc("/olx/logs", olxHandler.ListarLogs).Methods("GET")
	admin.HandleFunc("/olx/logs", olxHandler.LimparTudo).Methods("DELETE")

	// CORS
	origens := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origens = strings.Split(env, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	zlog.Info("Servidor rodando", zap.String("porta", porta))
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		zlog.Fatal("Servidor encerrou com erro", zap.Error(err))
	}
}
