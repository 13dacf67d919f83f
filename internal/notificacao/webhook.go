package notificacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// EnviarAlerta avisa o canal de operação (webhook configurável) sobre eventos
// da integração: token perto de expirar, falhas repetidas de sincronização.
// Best-effort: falha no webhook só gera log.
func EnviarAlerta(logger *zap.Logger, evento, mensagem string) {
	url := os.Getenv("WEBHOOK_ALERTA_URL")
	if url == "" {
		return
	}

	payload := map[string]string{
		"evento":   evento,
		"mensagem": mensagem,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		logger.Warn("erro ao enviar webhook de alerta", zap.String("evento", evento), zap.Error(err))
		return
	}
	defer resp.Body.Close()
}
