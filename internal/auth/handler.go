package auth

import (
	"encoding/json"
	"net/http"

	"github.com/StoreFone/api-loja/internal/utils"
	"gorm.io/gorm"
)

// POST /auth/login
func LoginHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}

		var user Usuario
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
			return
		}

		if !utils.VerificarSenha(user.Senha, req.Senha) {
			http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
			return
		}

		access, err := IssueTokensOnLogin(db, w, user.ID, user.Admin)
		if err != nil {
			http.Error(w, "Erro ao emitir tokens", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": access,
			"token_type":   "Bearer",
			"usuario": map[string]interface{}{
				"id":    user.ID,
				"nome":  user.Nome,
				"email": user.Email,
				"admin": user.Admin,
			},
		})
	}
}
