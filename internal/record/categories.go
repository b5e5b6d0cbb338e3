// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// Category errors. The messages match what the admin UI displays.
var (
	ErrDuplicateCategory = errors.New("Category already exists")
	ErrCategoryInUse     = errors.New("Category still has posts assigned")
)

// Categories manages the postsCategories collection and the read side of the
// postsTags aggregate. The counters themselves are written by the post
// service; Recount rebuilds them from scratch.
type Categories struct {
	store storage.Store
}

// NewCategories creates a category service over the given store.
func NewCategories(store storage.Store) *Categories {
	return &Categories{store: store}
}

// List returns all categories as stored.
func (c *Categories) List(ctx context.Context) ([]model.Category, error) {
	cats, err := storage.GetCollection[model.Category](ctx, c.store, storage.KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return cats, nil
}

// Tags returns the tag aggregate as stored.
func (c *Categories) Tags(ctx context.Context) ([]model.Tag, error) {
	tags, err := storage.GetCollection[model.Tag](ctx, c.store, storage.KeyTags)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	return tags, nil
}

// Add inserts a new category with a zero post count. Names are unique,
// case-insensitively; the slug is derived from the name when absent.
func (c *Categories) Add(ctx context.Context, cat model.Category) (model.Category, error) {
	cats, err := c.List(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for i := range cats {
		if strings.EqualFold(cats[i].Name, cat.Name) {
			return model.Category{}, ErrDuplicateCategory
		}
	}

	cat.ID = util.NewID("cat_")
	cat.PostCount = 0
	if cat.Slug == "" {
		cat.Slug = util.Slugify(cat.Name)
	}

	cats = append(cats, cat)
	if err := storage.SetJSON(ctx, c.store, storage.KeyCategories, cats); err != nil {
		return model.Category{}, fmt.Errorf("saving categories: %w", err)
	}
	return cat, nil
}

// Rename changes a category's name and rewrites every post that referenced
// the old name, keeping the name join intact.
func (c *Categories) Rename(ctx context.Context, id, name string) (model.Category, error) {
	cats, err := c.List(ctx)
	if err != nil {
		return model.Category{}, err
	}

	idx := -1
	for i := range cats {
		if cats[i].ID == id {
			idx = i
			continue
		}
		if strings.EqualFold(cats[i].Name, name) {
			return model.Category{}, ErrDuplicateCategory
		}
	}
	if idx < 0 {
		return model.Category{}, ErrNotFound
	}

	old := cats[idx].Name
	cats[idx].Name = name
	cats[idx].Slug = util.Slugify(name)

	if err := storage.SetJSON(ctx, c.store, storage.KeyCategories, cats); err != nil {
		return model.Category{}, fmt.Errorf("saving categories: %w", err)
	}

	posts, err := storage.GetCollection[model.Post](ctx, c.store, storage.KeyPosts)
	if err != nil {
		return model.Category{}, fmt.Errorf("loading posts: %w", err)
	}
	changed := false
	for i := range posts {
		if posts[i].Category == old {
			posts[i].Category = name
			changed = true
		}
	}
	if changed {
		if err := storage.SetJSON(ctx, c.store, storage.KeyPosts, posts); err != nil {
			return model.Category{}, fmt.Errorf("saving posts: %w", err)
		}
	}
	return cats[idx], nil
}

// Remove deletes an empty category. Categories with posts still assigned
// are refused.
func (c *Categories) Remove(ctx context.Context, id string) error {
	cats, err := c.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range cats {
		if cats[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if cats[idx].PostCount > 0 {
		return ErrCategoryInUse
	}

	cats = append(cats[:idx], cats[idx+1:]...)
	if err := storage.SetJSON(ctx, c.store, storage.KeyCategories, cats); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// Recount rebuilds the category post counts and the tag aggregate from the
// posts collection. Imports and the periodic cache refresh use it to bring
// the denormalized counters back in line with the data.
func (c *Categories) Recount(ctx context.Context) error {
	posts, err := storage.GetCollection[model.Post](ctx, c.store, storage.KeyPosts)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}

	byCategory := map[string]int{}
	byTag := map[string]int{}
	tagOrder := []string{}
	for i := range posts {
		byCategory[posts[i].Category]++
		for _, tag := range posts[i].Tags {
			if byTag[tag] == 0 {
				tagOrder = append(tagOrder, tag)
			}
			byTag[tag]++
		}
	}

	cats, err := c.List(ctx)
	if err != nil {
		return err
	}
	for i := range cats {
		cats[i].PostCount = byCategory[cats[i].Name]
	}
	if err := storage.SetJSON(ctx, c.store, storage.KeyCategories, cats); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	tags := make([]model.Tag, 0, len(tagOrder))
	for _, name := range tagOrder {
		tags = append(tags, model.Tag{Name: name, Count: byTag[name]})
	}
	if err := storage.SetJSON(ctx, c.store, storage.KeyTags, tags); err != nil {
		return fmt.Errorf("saving tags: %w", err)
	}
	return nil
}
