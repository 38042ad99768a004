package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/domain"
	"blogapi/internal/repositories"
	"blogapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a post as a downloadable PDF.
type DocsService struct {
	Posts     repositories.PostRepository
	RequestID string
}

// ExportPost loads the post and renders it. Unpublished posts are only
// exportable when the caller may see them; otherwise they are reported
// as missing, matching the read path.
func (s DocsService) ExportPost(ctx context.Context, id int64, includeUnpublished bool) ([]byte, string, error) {
	post, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if post.Status != domain.PostPublished && !includeUnpublished {
		return nil, "", domain.NotFoundError{Entity: "Post", Key: id}
	}

	utils.LogEvent(s.RequestID, "docs", "export_post", fmt.Sprintf("post_id=%d", id))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(post.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, post.Title, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 10)
	byline := fmt.Sprintf("By %s", safe(post.AuthorName, "Unknown"))
	if post.CreatedAt != "" {
		byline += " on " + post.CreatedAt
	}
	pdf.Cell(0, 6, byline)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, post.Content, "", "", false)

	if len(post.Categories) > 0 {
		names := make([]string, len(post.Categories))
		for i, cat := range post.Categories {
			names[i] = cat.Name
		}
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "Categories: "+strings.Join(names, ", "))
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Exported "+time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	filename := fmt.Sprintf("POST_%d_%s.pdf", post.ID, safeFilenamePart(post.Title))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// safeFilenamePart keeps only characters safe for a filename.
func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if len(out) > 40 {
		out = out[:40]
	}
	if out == "" {
		out = "post"
	}
	return out
}
