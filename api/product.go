package api

import (
	"context"
	"net/http"

	"marketplace-client-sample/model"
)

// ProductClient talks to the product service.
type ProductClient struct {
	*Client
}

func NewProductClient(baseURL, token string) *ProductClient {
	return &ProductClient{Client: NewClient(baseURL, token)}
}

func (c *ProductClient) GetProductByID(ctx context.Context, productID string) (model.Product, error) {
	var p model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/"+productID, nil, nil, &p)
	return p, err
}

func (c *ProductClient) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/slug/"+slug, nil, nil, &p)
	return p, err
}

func (c *ProductClient) GetVariantsByProduct(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := c.doJSON(ctx, http.MethodGet, "/products/"+productID+"/variants", nil, nil, &variants)
	return variants, err
}

func (c *ProductClient) SearchProducts(ctx context.Context, keyword string, opts ListOptions) (model.Page[model.Product], error) {
	q := opts.values()
	q.Set("q", keyword)

	var page model.Page[model.Product]
	err := c.doJSON(ctx, http.MethodGet, "/products/search", q, nil, &page)
	return page, err
}

func (c *ProductClient) ListProducts(ctx context.Context, opts ListOptions) (model.Page[model.Product], error) {
	var page model.Page[model.Product]
	err := c.doJSON(ctx, http.MethodGet, "/products", opts.values(), nil, &page)
	return page, err
}

func (c *ProductClient) ListByCategory(ctx context.Context, categoryID string, opts ListOptions) (model.Page[model.Product], error) {
	var page model.Page[model.Product]
	err := c.doJSON(ctx, http.MethodGet, "/products/category/"+categoryID, opts.values(), nil, &page)
	return page, err
}

func (c *ProductClient) GetHotDeals(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/hot-deals", nil, nil, &products)
	return products, err
}
