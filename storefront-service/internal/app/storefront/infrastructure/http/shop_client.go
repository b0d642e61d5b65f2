package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"weblarek/storefront-service/internal/app/storefront/entity"
	"weblarek/storefront-service/internal/app/storefront/infrastructure"
)

// ShopClient - клиент commerce API витрины
// Пути к изображениям в ответах относительные; клиент дополняет их
// адресом CDN, чтобы view-компоненты получали готовые URL
type ShopClient struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
}

// NewShopClient создает клиент commerce API
func NewShopClient(baseURL, cdnURL string, timeout time.Duration) *ShopClient {
	return &ShopClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetProductList получает полный каталог товаров
func (c *ShopClient) GetProductList(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &infrastructure.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &infrastructure.NetworkError{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var list entity.ProductListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &infrastructure.DecodeError{Err: err}
	}

	products := make([]entity.Product, len(list.Items))
	for i, p := range list.Items {
		products[i] = c.withCDN(p)
	}

	return products, nil
}

// GetProductItem получает подробную информацию об одном товаре
func (c *ShopClient) GetProductItem(ctx context.Context, id string) (*entity.Product, error) {
	url := fmt.Sprintf("%s/product/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &infrastructure.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &infrastructure.NotFoundError{ProductID: id}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &infrastructure.NetworkError{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var product entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, &infrastructure.DecodeError{Err: err}
	}

	product = c.withCDN(product)
	return &product, nil
}

// PlaceOrder отправляет заказ в commerce API
// Ответ 400 означает, что сервер отклонил содержимое черновика
func (c *ShopClient) PlaceOrder(ctx context.Context, order *entity.OrderDraft) (*entity.OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &infrastructure.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var errResp entity.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, &infrastructure.DecodeError{Err: err}
		}
		return nil, &infrastructure.ValidationError{Message: errResp.Error}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &infrastructure.NetworkError{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var result entity.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &infrastructure.DecodeError{Err: err}
	}

	return &result, nil
}

// withCDN дополняет относительный путь изображения адресом CDN
func (c *ShopClient) withCDN(p entity.Product) entity.Product {
	if p.Image != "" && !strings.HasPrefix(p.Image, "http") {
		p.Image = c.cdnURL + p.Image
	}
	return p
}
