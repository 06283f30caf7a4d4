package backend

import (
	"context"
	"fmt"
	"net/http"

	"imagique/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "categories.list", "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	return c.writeCategory(ctx, "categories.create", http.MethodPost, "/api/categories", d)
}

func (c *Client) UpdateCategory(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	if d.CategoryID == 0 {
		return models.Category{}, fmt.Errorf("categories.update: missing category id")
	}
	return c.writeCategory(ctx, "categories.update", http.MethodPut, "/api/categories/"+itoa(d.CategoryID), d)
}

func (c *Client) writeCategory(ctx context.Context, op, method, path string, d models.CategoryDraft) (models.Category, error) {
	body, contentType, err := encodeCategory(d)
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	var category models.Category
	err = c.do(ctx, request{op: op, method: method, path: path, body: body, contentType: contentType}, &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int64) error {
	return c.do(ctx, request{op: "categories.delete", method: http.MethodDelete, path: "/api/categories/" + itoa(categoryID)}, nil)
}
