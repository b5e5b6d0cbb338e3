// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"context"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/storage"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/util"
)

// PostFilters narrows a post search. Zero-valued fields match everything;
// set fields are ANDed together. DateTo is inclusive through the end of the
// given day.
type PostFilters struct {
	Status   string
	Category string
	Author   string
	DateFrom time.Time
	DateTo   time.Time
}

// Posts manages the posts collection and the denormalized category and tag
// counters that shadow it.
type Posts struct {
	store    storage.Store
	activity *activity.Log
	sanitize *bluemonday.Policy
	now      func() time.Time
}

// NewPosts creates a post service over the given store. HTML content is
// sanitized with a UGC policy on every write.
func NewPosts(store storage.Store, log *activity.Log) *Posts {
	return &Posts{
		store:    store,
		activity: log,
		sanitize: bluemonday.UGCPolicy(),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (p *Posts) WithClock(now func() time.Time) *Posts {
	p.now = now
	return p
}

// List returns all posts, newest first as stored.
func (p *Posts) List(ctx context.Context) ([]model.Post, error) {
	posts, err := storage.GetCollection[model.Post](ctx, p.store, storage.KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	return posts, nil
}

// GetByID returns the post with the given id, or ErrNotFound.
func (p *Posts) GetByID(ctx context.Context, id string) (model.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return model.Post{}, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return posts[i], nil
		}
	}
	return model.Post{}, ErrNotFound
}

// Add inserts a new post at the front of the collection. The id and
// timestamps are assigned here, the slug is derived from the title when
// absent, the content is sanitized, and the category and tag counters are
// bumped in the same operation.
func (p *Posts) Add(ctx context.Context, post model.Post) (model.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return model.Post{}, err
	}

	now := p.now().UTC()
	post.ID = util.NewID("post_")
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Slug == "" {
		post.Slug = util.Slugify(post.Title)
	}
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	post.Content = p.sanitize.Sanitize(post.Content)
	if post.Tags == nil {
		post.Tags = []string{}
	}

	posts = append([]model.Post{post}, posts...)
	if err := storage.SetJSON(ctx, p.store, storage.KeyPosts, posts); err != nil {
		return model.Post{}, fmt.Errorf("saving posts: %w", err)
	}

	if err := p.adjustCategoryCount(ctx, post.Category, 1); err != nil {
		return model.Post{}, err
	}
	if err := p.adjustTagCounts(ctx, nil, post.Tags); err != nil {
		return model.Post{}, err
	}

	p.logPostAction(ctx, model.ActionPostCreation,
		fmt.Sprintf("Created post %q", post.Title), post.Author)
	return post, nil
}

// Update applies a shallow patch to the post with the given id. A category
// change moves one count between the old and new categories; a tag change
// adjusts the tag aggregate by the set difference.
func (p *Posts) Update(ctx context.Context, id string, patch model.PostPatch) (model.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return model.Post{}, err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Post{}, ErrNotFound
	}

	prev := posts[idx]
	next := prev
	applyPostPatch(&next, patch)
	next.Content = p.sanitize.Sanitize(next.Content)
	next.UpdatedAt = p.now().UTC()
	posts[idx] = next

	if err := storage.SetJSON(ctx, p.store, storage.KeyPosts, posts); err != nil {
		return model.Post{}, fmt.Errorf("saving posts: %w", err)
	}

	if prev.Category != next.Category {
		if err := p.adjustCategoryCount(ctx, prev.Category, -1); err != nil {
			return model.Post{}, err
		}
		if err := p.adjustCategoryCount(ctx, next.Category, 1); err != nil {
			return model.Post{}, err
		}
	}
	if patch.Tags != nil {
		if err := p.adjustTagCounts(ctx, prev.Tags, next.Tags); err != nil {
			return model.Post{}, err
		}
	}

	p.logPostAction(ctx, model.ActionPostUpdate,
		fmt.Sprintf("Updated post %q", next.Title), next.Author)
	return next, nil
}

// Remove deletes the post with the given id and decrements its category and
// tag counters.
func (p *Posts) Remove(ctx context.Context, id string) error {
	posts, err := p.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	removed := posts[idx]
	posts = append(posts[:idx], posts[idx+1:]...)
	if err := storage.SetJSON(ctx, p.store, storage.KeyPosts, posts); err != nil {
		return fmt.Errorf("saving posts: %w", err)
	}

	if err := p.adjustCategoryCount(ctx, removed.Category, -1); err != nil {
		return err
	}
	if err := p.adjustTagCounts(ctx, removed.Tags, nil); err != nil {
		return err
	}

	p.logPostAction(ctx, model.ActionPostDeletion,
		fmt.Sprintf("Deleted post %q", removed.Title), removed.Author)
	return nil
}

// Search returns the posts whose title, excerpt, content, author or any tag
// contains the query, case-insensitively, further narrowed by the filters.
// An empty query matches every post.
func (p *Posts) Search(ctx context.Context, query string, filters PostFilters) ([]model.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Post, 0, len(posts))
	for i := range posts {
		if matchesQuery(&posts[i], query) && matchesFilters(&posts[i], filters) {
			matched = append(matched, posts[i])
		}
	}
	return matched, nil
}

// Paginate slices a post search into 1-based pages.
func (p *Posts) Paginate(ctx context.Context, query string, filters PostFilters, page, perPage int) (Page[model.Post], error) {
	matched, err := p.Search(ctx, query, filters)
	if err != nil {
		return Page[model.Post]{}, err
	}
	return paginate(matched, page, perPage), nil
}

// DeleteMany removes each of the given ids, best effort. Ids that are not
// found are reported in the result; earlier deletions stand.
func (p *Posts) DeleteMany(ctx context.Context, ids []string) (BulkResult, error) {
	var res BulkResult
	for _, id := range ids {
		switch err := p.Remove(ctx, id); {
		case err == nil:
			res.Succeeded++
		case err == ErrNotFound:
			res.Failed = append(res.Failed, id)
		default:
			return res, err
		}
	}
	return res, nil
}

// UpdateStatusMany sets the status on each of the given ids, best effort.
func (p *Posts) UpdateStatusMany(ctx context.Context, ids []string, status string) (BulkResult, error) {
	var res BulkResult
	for _, id := range ids {
		patch := model.PostPatch{Status: &status}
		switch _, err := p.Update(ctx, id, patch); {
		case err == nil:
			res.Succeeded++
		case err == ErrNotFound:
			res.Failed = append(res.Failed, id)
		default:
			return res, err
		}
	}
	return res, nil
}

// PublishDue transitions every scheduled post whose time has come to
// published, returning the posts that changed. The scheduler calls this once
// a minute.
func (p *Posts) PublishDue(ctx context.Context) ([]model.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	now := p.now().UTC()
	var published []model.Post
	for i := range posts {
		if posts[i].IsDue(now) {
			posts[i].Status = model.PostStatusPublished
			posts[i].UpdatedAt = now
			published = append(published, posts[i])
		}
	}
	if len(published) == 0 {
		return nil, nil
	}

	if err := storage.SetJSON(ctx, p.store, storage.KeyPosts, posts); err != nil {
		return nil, fmt.Errorf("saving posts: %w", err)
	}
	for i := range published {
		p.activity.Append(ctx, model.ActionSystem,
			fmt.Sprintf("Published scheduled post %q", published[i].Title),
			model.SystemUserID, model.SystemUserName)
	}
	return published, nil
}

// Stats summarizes the collection for the dashboard.
func (p *Posts) Stats(ctx context.Context) (model.PostStats, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return model.PostStats{}, err
	}

	stats := model.PostStats{Categories: map[string]int{}}
	for i := range posts {
		stats.Total++
		switch posts[i].Status {
		case model.PostStatusPublished:
			stats.Published++
		case model.PostStatusDraft:
			stats.Draft++
		case model.PostStatusScheduled:
			stats.Scheduled++
		}
		if posts[i].Category != "" {
			stats.Categories[posts[i].Category]++
		}
	}
	return stats, nil
}

// TotalViews sums the view counters across all posts.
func (p *Posts) TotalViews(ctx context.Context) (int, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range posts {
		total += posts[i].Views
	}
	return total, nil
}

// adjustCategoryCount moves the named category's PostCount by delta, floored
// at zero. Unknown or empty category names are ignored.
func (p *Posts) adjustCategoryCount(ctx context.Context, name string, delta int) error {
	if name == "" {
		return nil
	}
	cats, err := storage.GetCollection[model.Category](ctx, p.store, storage.KeyCategories)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	for i := range cats {
		if cats[i].Name != name {
			continue
		}
		cats[i].PostCount += delta
		if cats[i].PostCount < 0 {
			cats[i].PostCount = 0
		}
		if err := storage.SetJSON(ctx, p.store, storage.KeyCategories, cats); err != nil {
			return fmt.Errorf("saving categories: %w", err)
		}
		return nil
	}
	return nil
}

// adjustTagCounts reconciles the tag aggregate after a post's tags change
// from prev to next. New tags are appended, tags that hit zero are dropped.
func (p *Posts) adjustTagCounts(ctx context.Context, prev, next []string) error {
	delta := map[string]int{}
	for _, t := range prev {
		delta[t]--
	}
	for _, t := range next {
		delta[t]++
	}
	changed := false
	for _, d := range delta {
		if d != 0 {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	tags, err := storage.GetCollection[model.Tag](ctx, p.store, storage.KeyTags)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}

	out := tags[:0]
	for _, tag := range tags {
		tag.Count += delta[tag.Name]
		delete(delta, tag.Name)
		if tag.Count > 0 {
			out = append(out, tag)
		}
	}
	for name, d := range delta {
		if d > 0 {
			out = append(out, model.Tag{Name: name, Count: d})
		}
	}

	if err := storage.SetJSON(ctx, p.store, storage.KeyTags, out); err != nil {
		return fmt.Errorf("saving tags: %w", err)
	}
	return nil
}

// logPostAction stamps the current session user when one exists; the author
// name is used as the display name, matching how the feed reads in the UI.
func (p *Posts) logPostAction(ctx context.Context, action, description, author string) {
	userID, userName := currentActor(ctx, p.store)
	if author != "" {
		userName = author
	}
	p.activity.Append(ctx, action, description, userID, userName)
}

// matchesQuery reports a case-insensitive substring match on the searchable
// post fields.
func matchesQuery(post *model.Post, query string) bool {
	if query == "" {
		return true
	}
	if containsFold(post.Title, query) ||
		containsFold(post.Excerpt, query) ||
		containsFold(post.Content, query) ||
		containsFold(post.Author, query) {
		return true
	}
	for _, tag := range post.Tags {
		if containsFold(tag, query) {
			return true
		}
	}
	return false
}

// matchesFilters ANDs the set filter fields against the post.
func matchesFilters(post *model.Post, f PostFilters) bool {
	if f.Status != "" && post.Status != f.Status {
		return false
	}
	if f.Category != "" && post.Category != f.Category {
		return false
	}
	if f.Author != "" && !containsFold(post.Author, f.Author) {
		return false
	}
	if !f.DateFrom.IsZero() && post.CreatedAt.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() {
		end := time.Date(f.DateTo.Year(), f.DateTo.Month(), f.DateTo.Day(),
			23, 59, 59, int(time.Second-time.Nanosecond), f.DateTo.Location())
		if post.CreatedAt.After(end) {
			return false
		}
	}
	return true
}

func applyPostPatch(post *model.Post, patch model.PostPatch) {
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Slug != nil {
		post.Slug = *patch.Slug
	}
	if patch.Category != nil {
		post.Category = *patch.Category
	}
	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}
	if patch.Author != nil {
		post.Author = *patch.Author
	}
	if patch.AllowComments != nil {
		post.AllowComments = *patch.AllowComments
	}
	if patch.Featured != nil {
		post.Featured = *patch.Featured
	}
	if patch.Sticky != nil {
		post.Sticky = *patch.Sticky
	}
	if patch.ScheduledAt != nil {
		post.ScheduledAt = *patch.ScheduledAt
	}
}
