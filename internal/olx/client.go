package olx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Códigos da taxonomia de erro do cliente. Códigos numéricos espelham o
// status HTTP; os demais classificam falhas de transporte e de parse.
const (
	Erro401        = "401"
	Erro403        = "403"
	Erro404        = "404"
	Erro410        = "410"
	Erro5xx        = "5xx"
	ErroCloudflare = "CLOUDFLARE_BLOCK"
	ErroTimeout    = "TIMEOUT_ERROR"
	ErroRede       = "NETWORK_ERROR"
	ErroParse      = "PARSE_ERROR"
)

// ErroAPI é a falha normalizada de uma chamada à OLX.
type ErroAPI struct {
	Codigo     string          `json:"codigo"`
	Mensagem   string          `json:"mensagem"`
	HTTPStatus int             `json:"httpStatus"`
	Reason     string          `json:"reason,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"` // statusCode do corpo (-6 = sem permissão)
	Detalhes   json.RawMessage `json:"detalhes,omitempty"`
}

func (e *ErroAPI) Error() string {
	return fmt.Sprintf("olx: %s (%s)", e.Mensagem, e.Codigo)
}

// AnuncioRemoto é um anúncio como a OLX o devolve, já normalizado.
type AnuncioRemoto struct {
	ListID     string  `json:"list_id"`
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Titulo     string  `json:"subject"`
	Preco      float64 `json:"price"`
	Status     string  `json:"status"`
	URL        string  `json:"url"`
}

// IdentificadorRemoto extrai o id do anúncio na ordem de prioridade
// list_id > id > external_id; vazio quando nenhum resolve.
func (a AnuncioRemoto) IdentificadorRemoto() string {
	if a.ListID != "" {
		return a.ListID
	}
	if a.ID != "" {
		return a.ID
	}
	return a.ExternalID
}

// Tipos da resposta de criação. A OLX responde em três formatos distintos;
// o cliente resolve o formato uma única vez, aqui na borda.
type TipoResposta string

const (
	RespostaAdList   TipoResposta = "adList"
	RespostaToken    TipoResposta = "importToken"
	RespostaIDDireto TipoResposta = "directId"
)

// RespostaCriacao é a união etiquetada dos formatos de resposta de criação.
type RespostaCriacao struct {
	Tipo     TipoResposta
	Anuncios []AnuncioRemoto // Tipo == RespostaAdList
	Token    string          // Tipo == RespostaToken
	ID       string          // Tipo == RespostaIDDireto
	Bruto    json.RawMessage // payload original, para o sync log
}

// SaldoInfo é a resposta do endpoint de saldo/créditos.
type SaldoInfo struct {
	Saldo     float64 `json:"balance"`
	Anuncios  int     `json:"ads"`
	Destaques int     `json:"featured"`
}

// StatusImportacao é a resposta do poll de um token de importação.
type StatusImportacao struct {
	Status   string          `json:"status"` // "processing", "done", "error"
	Anuncios []AnuncioRemoto `json:"ad_list"`
	Erros    json.RawMessage `json:"errors,omitempty"`
}

// AnuncioWire é o payload de criação no esquema da OLX.
type AnuncioWire struct {
	ExternalID string   `json:"id"`
	Operacao   string   `json:"operation"`
	Categoria  string   `json:"category"`
	Titulo     string   `json:"subject"`
	Descricao  string   `json:"body"`
	Preco      int      `json:"price"` // em reais inteiros, exigência da plataforma
	CEP        string   `json:"zipcode,omitempty"`
	Telefone   string   `json:"phone,omitempty"`
	Fotos      []string `json:"images,omitempty"`
}

// ClienteAPI abstrai as chamadas REST à OLX para permitir fakes em teste.
type ClienteAPI interface {
	CriarAnuncio(ctx context.Context, accessToken string, ad AnuncioWire) (*RespostaCriacao, *ErroAPI)
	RemoverAnuncio(ctx context.Context, accessToken, olxID string) *ErroAPI
	Saldo(ctx context.Context, accessToken string) (*SaldoInfo, *ErroAPI)
	AnunciosPublicados(ctx context.Context, accessToken string) ([]AnuncioRemoto, *ErroAPI)
	StatusAnuncio(ctx context.Context, accessToken, olxID string) (*AnuncioRemoto, *ErroAPI)
	StatusDaImportacao(ctx context.Context, accessToken, token string) (*StatusImportacao, *ErroAPI)
}

// Cliente é a implementação HTTP do ClienteAPI. Não faz retry: quem decide
// repetir a chamada é o orquestrador.
type Cliente struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

const baseURLPadrao = "https://apps.olx.com.br"

func NewCliente(baseURL string, logger *zap.Logger) *Cliente {
	if baseURL == "" {
		baseURL = baseURLPadrao
	}
	return &Cliente{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// corpoErro é o envelope de erro que a OLX costuma devolver.
type corpoErro struct {
	StatusCode int             `json:"statusCode"`
	Mensagem   string          `json:"message"`
	Reason     string          `json:"reason"`
	Detalhes   json.RawMessage `json:"details"`
}

// executa monta, envia e classifica uma chamada; devolve o corpo em caso de 2xx.
func (c *Cliente) executa(ctx context.Context, method, path, accessToken string, body interface{}) ([]byte, *ErroAPI) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "falha ao serializar payload: " + err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, &ErroAPI{Codigo: ErroRede, Mensagem: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &ErroAPI{Codigo: ErroTimeout, Mensagem: "tempo esgotado ao chamar a OLX"}
		}
		return nil, &ErroAPI{Codigo: ErroRede, Mensagem: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErroAPI{Codigo: ErroRede, Mensagem: err.Error(), HTTPStatus: resp.StatusCode}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, c.classifica(resp, raw)
}

// classifica converte uma resposta não-2xx na taxonomia de erros.
func (c *Cliente) classifica(resp *http.Response, raw []byte) *ErroAPI {
	apiErr := &ErroAPI{HTTPStatus: resp.StatusCode, Detalhes: raw}

	// bloqueio de borda vem como HTML, nunca como JSON
	contentType := resp.Header.Get("Content-Type")
	corpo := strings.ToLower(string(raw))
	if strings.Contains(contentType, "text/html") || strings.Contains(corpo, "cloudflare") {
		apiErr.Codigo = ErroCloudflare
		apiErr.Mensagem = "requisição bloqueada na borda (Cloudflare)"
		return apiErr
	}

	var ce corpoErro
	if err := json.Unmarshal(raw, &ce); err == nil {
		apiErr.Mensagem = ce.Mensagem
		apiErr.Reason = ce.Reason
		apiErr.StatusCode = ce.StatusCode
		if ce.Detalhes != nil {
			apiErr.Detalhes = ce.Detalhes
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Codigo = Erro401
	case resp.StatusCode == http.StatusForbidden:
		apiErr.Codigo = Erro403
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Codigo = Erro404
	case resp.StatusCode == http.StatusGone:
		apiErr.Codigo = Erro410
	case resp.StatusCode >= 500:
		apiErr.Codigo = Erro5xx
	default:
		apiErr.Codigo = fmt.Sprint(resp.StatusCode)
	}
	if apiErr.Mensagem == "" {
		apiErr.Mensagem = fmt.Sprintf("OLX respondeu %d", resp.StatusCode)
	}
	return apiErr
}

// CriarAnuncio envia o anúncio e resolve o formato da resposta.
func (c *Cliente) CriarAnuncio(ctx context.Context, accessToken string, ad AnuncioWire) (*RespostaCriacao, *ErroAPI) {
	raw, apiErr := c.executa(ctx, http.MethodPost, "/autoupload/import", accessToken, map[string]interface{}{
		"access_token": accessToken,
		"ad_list":      []AnuncioWire{ad},
	})
	if apiErr != nil {
		return nil, apiErr
	}

	var bruto struct {
		AdList []AnuncioRemoto `json:"ad_list"`
		Token  string          `json:"token"`
		UUID   string          `json:"uuid"`
		ID     string          `json:"id"`
	}
	if err := json.Unmarshal(raw, &bruto); err != nil {
		return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "resposta de criação ilegível: " + err.Error(), Detalhes: raw}
	}

	out := &RespostaCriacao{Bruto: raw}
	switch {
	case len(bruto.AdList) > 0:
		out.Tipo = RespostaAdList
		out.Anuncios = bruto.AdList
	case bruto.Token != "":
		out.Tipo = RespostaToken
		out.Token = bruto.Token
	case bruto.UUID != "" || bruto.ID != "":
		out.Tipo = RespostaIDDireto
		out.ID = bruto.ID
		if out.ID == "" {
			out.ID = bruto.UUID
		}
	default:
		return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "resposta de criação sem ad_list, token ou id", Detalhes: raw}
	}
	return out, nil
}

// RemoverAnuncio apaga um anúncio publicado.
func (c *Cliente) RemoverAnuncio(ctx context.Context, accessToken, olxID string) *ErroAPI {
	_, apiErr := c.executa(ctx, http.MethodDelete, "/autoupload/ads/"+olxID, accessToken, map[string]string{
		"access_token": accessToken,
	})
	return apiErr
}

// Saldo consulta créditos de anúncio da conta.
func (c *Cliente) Saldo(ctx context.Context, accessToken string) (*SaldoInfo, *ErroAPI) {
	raw, apiErr := c.executa(ctx, http.MethodGet, "/autoupload/balance", accessToken, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	var saldo SaldoInfo
	if err := json.Unmarshal(raw, &saldo); err != nil {
		return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "resposta de saldo ilegível: " + err.Error(), Detalhes: raw}
	}
	return &saldo, nil
}

// AnunciosPublicados lista os anúncios ativos da conta. Aceita tanto o
// envelope {"ads": [...]} quanto um array puro.
func (c *Cliente) AnunciosPublicados(ctx context.Context, accessToken string) ([]AnuncioRemoto, *ErroAPI) {
	raw, apiErr := c.executa(ctx, http.MethodGet, "/autoupload/published", accessToken, nil)
	if apiErr != nil {
		return nil, apiErr
	}

	var envelope struct {
		Ads []AnuncioRemoto `json:"ads"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Ads != nil {
		return envelope.Ads, nil
	}
	var lista []AnuncioRemoto
	if err := json.Unmarshal(raw, &lista); err == nil {
		return lista, nil
	}
	return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "lista de publicados ilegível", Detalhes: raw}
}

// StatusAnuncio consulta um anúncio específico.
func (c *Cliente) StatusAnuncio(ctx context.Context, accessToken, olxID string) (*AnuncioRemoto, *ErroAPI) {
	raw, apiErr := c.executa(ctx, http.MethodGet, "/autoupload/ads/"+olxID, accessToken, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	var ad AnuncioRemoto
	if err := json.Unmarshal(raw, &ad); err != nil {
		return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "status de anúncio ilegível: " + err.Error(), Detalhes: raw}
	}
	return &ad, nil
}

// StatusDaImportacao faz o poll de um token de importação assíncrona.
func (c *Cliente) StatusDaImportacao(ctx context.Context, accessToken, token string) (*StatusImportacao, *ErroAPI) {
	raw, apiErr := c.executa(ctx, http.MethodGet, "/autoupload/import/"+token, accessToken, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	var st StatusImportacao
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, &ErroAPI{Codigo: ErroParse, Mensagem: "status de importação ilegível: " + err.Error(), Detalhes: raw}
	}
	return &st, nil
}
