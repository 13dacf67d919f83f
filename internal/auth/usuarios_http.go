package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/StoreFone/api-loja/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// POST /admin/usuarios
// Sem senha no payload, o operador recebe uma senha temporária na resposta
// (uma única vez; só o hash vai para o banco).
func CriarUsuarioHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Nome  string `json:"nome"`
			Email string `json:"email"`
			Senha string `json:"senha"`
			Admin bool   `json:"admin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			http.Error(w, "O campo 'email' é obrigatório", http.StatusBadRequest)
			return
		}

		senha := req.Senha
		temporaria := false
		if senha == "" {
			gerada, err := utils.GerarSenhaTemporaria()
			if err != nil {
				http.Error(w, "Erro ao gerar senha temporária", http.StatusInternalServerError)
				return
			}
			senha = gerada
			temporaria = true
		}

		hash, err := utils.HashSenha(senha)
		if err != nil {
			http.Error(w, "Erro ao gerar hash de senha", http.StatusInternalServerError)
			return
		}

		user := Usuario{Nome: req.Nome, Email: req.Email, Senha: hash, Admin: req.Admin}
		if err := db.Create(&user).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				http.Error(w, "E-mail já cadastrado", http.StatusConflict)
				return
			}
			http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
			return
		}

		resp := map[string]interface{}{
			"id":    user.ID,
			"nome":  user.Nome,
			"email": user.Email,
			"admin": user.Admin,
		}
		if temporaria {
			resp["senhaTemporaria"] = senha
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// SeedAdmin cria o primeiro operador quando a tabela de usuários está vazia,
// a partir de ADMIN_EMAIL e ADMIN_PASSWORD. Sem ADMIN_PASSWORD, a senha
// temporária gerada sai no log de inicialização.
func SeedAdmin(db *gorm.DB, logger *zap.Logger) error {
	var total int64
	if err := db.Model(&Usuario{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return nil
	}

	senha := os.Getenv("ADMIN_PASSWORD")
	gerada := false
	if senha == "" {
		tmp, err := utils.GerarSenhaTemporaria()
		if err != nil {
			return err
		}
		senha = tmp
		gerada = true
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	user := Usuario{Nome: "Administrador", Email: email, Senha: hash, Admin: true}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	if gerada {
		logger.Info("primeiro operador criado; troque a senha no primeiro acesso",
			zap.String("email", email), zap.String("senhaTemporaria", senha))
	} else {
		logger.Info("primeiro operador criado", zap.String("email", email))
	}
	return nil
}
