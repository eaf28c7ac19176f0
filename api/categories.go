package api

import (
	"context"
	"net/url"
)

// Category is one spending category with its optional monthly budget cap.
// A MaxBudget of zero means no cap is set.
type Category struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	MaxBudget float64 `json:"max_budget"`
}

// Categories lists the user's categories. On first call the backend seeds a
// default taxonomy, so the result is never empty for a healthy account.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "/categories/", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string, maxBudget float64) (*Category, error) {
	body := map[string]any{"name": name, "max_budget": maxBudget}
	var created Category
	if err := c.post(ctx, "/categories/", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetCategoryBudget updates one category's monthly budget cap.
func (c *Client) SetCategoryBudget(ctx context.Context, categoryID string, maxBudget float64) (*Category, error) {
	body := map[string]any{"max_budget": maxBudget}
	var updated Category
	if err := c.put(ctx, "/categories/"+url.PathEscape(categoryID), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
