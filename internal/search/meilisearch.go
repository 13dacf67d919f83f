package search

import (
	"encoding/json"
	"fmt"

	"github.com/StoreFone/api-loja/internal/produtos"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const indiceProdutos = "produtos"

// ProdutoDoc é o documento indexado no Meilisearch.
type ProdutoDoc struct {
	ID           uint     `json:"id"`
	Codigo       string   `json:"codigo"`
	Nome         string   `json:"nome"`
	Slug         string   `json:"slug"`
	Descricao    string   `json:"descricao"`
	Preco        float64  `json:"preco"`
	Condicao     string   `json:"condicao"`
	NivelBateria int      `json:"nivel_bateria"`
	Cores        []string `json:"cores"`
	Foto         string   `json:"foto"`
}

func docDeProduto(p produtos.Produto) ProdutoDoc {
	doc := ProdutoDoc{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nome:         p.Nome,
		Slug:         p.Slug,
		Descricao:    p.Descricao,
		Preco:        p.Preco,
		Condicao:     p.Condicao,
		NivelBateria: p.NivelBateria,
		Cores:        p.Cores,
	}
	if len(p.Fotos) > 0 {
		doc.Foto = p.Fotos[0]
	}
	return doc
}

// Client encapsula o índice de produtos no Meilisearch. Opcional: quando o
// host não está configurado a loja cai no filtro SQL do catálogo.
type Client struct {
	client *meilisearch.Client
	logger *zap.Logger
}

func NewClient(host, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		client: meilisearch.NewClient(meilisearch.ClientConfig{
			Host:   host,
			APIKey: apiKey,
		}),
		logger: logger,
	}
}

// InitIndex cria o índice e configura atributos de busca e filtro.
func (s *Client) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        indiceProdutos,
		PrimaryKey: "id",
	})
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(indiceProdutos).UpdateSearchableAttributes(&[]string{
		"nome",
		"codigo",
		"descricao",
		"cores",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(indiceProdutos).UpdateFilterableAttributes(&[]string{
		"condicao",
		"preco",
		"nivel_bateria",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(indiceProdutos).UpdateSortableAttributes(&[]string{
		"preco",
	})
	return err
}

// IndexarProduto indexa (ou reindexa) um produto.
func (s *Client) IndexarProduto(p produtos.Produto) error {
	if !p.EstaAtivo() {
		return s.RemoverDoIndice(p.ID)
	}
	_, err := s.client.Index(indiceProdutos).AddDocuments([]ProdutoDoc{docDeProduto(p)})
	return err
}

// IndexarProdutos indexa o catálogo em lote (usado no reindex noturno).
func (s *Client) IndexarProdutos(ps []produtos.Produto) error {
	docs := make([]ProdutoDoc, 0, len(ps))
	for _, p := range ps {
		if p.EstaAtivo() {
			docs = append(docs, docDeProduto(p))
		}
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index(indiceProdutos).AddDocuments(docs)
	return err
}

// RemoverDoIndice tira um produto do índice.
func (s *Client) RemoverDoIndice(id uint) error {
	_, err := s.client.Index(indiceProdutos).DeleteDocument(fmt.Sprint(id))
	return err
}

// Buscar consulta o índice e devolve os documentos encontrados.
func (s *Client) Buscar(query string, limite int64) ([]ProdutoDoc, error) {
	if limite <= 0 || limite > 100 {
		limite = 24
	}
	resp, err := s.client.Index(indiceProdutos).Search(query, &meilisearch.SearchRequest{
		Limit: limite,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]ProdutoDoc, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc ProdutoDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.logger.Warn("documento ilegível no índice", zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
