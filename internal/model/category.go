// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category represents an entry in the postsCategories collection.
// PostCount is a denormalized counter maintained incrementally by the record
// store on every post create, update and delete. It is joined to posts by
// Name, not by ID.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}

// Tag represents an entry in the postsTags aggregate.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
