package auth

import (
	"testing"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("erro ao validar token: %v", err)
	}
	if claims.UserID != 42 || !claims.IsAdmin {
		t.Fatalf("claims inesperadas: %+v", claims)
	}
}

func TestParseRejeitaSegredoErrado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-a")
	token, err := GenerateAccessToken(1, false)
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}

	t.Setenv("JWT_SECRET", "segredo-b")
	if _, err := ParseAndValidate(token); err == nil {
		t.Fatal("token assinado com outro segredo deveria ser rejeitado")
	}
}

func TestGenerateSemSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateAccessToken(1, false); err == nil {
		t.Fatal("sem JWT_SECRET a geração deve falhar")
	}
}
