// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts editor markdown into sanitized HTML for the post
// preview endpoint.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Preview renders markdown to HTML and strips anything the UGC policy does
// not allow.
type Preview struct {
	markdown goldmark.Markdown
	sanitize *bluemonday.Policy
}

// NewPreview creates a preview renderer with GFM tables and strikethrough.
func NewPreview() *Preview {
	return &Preview{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown source to sanitized HTML.
func (p *Preview) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.markdown.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return p.sanitize.SanitizeBytes(buf.Bytes()), nil
}
