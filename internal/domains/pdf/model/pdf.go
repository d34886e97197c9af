package model

import (
	"strconv"
	"strings"
	"time"
)

type PdfKind string

const (
	PdfKindOrder   PdfKind = "ORDER"
	PdfKindArticle PdfKind = "ARTICLE"
)

type PdfDocument struct {
	ID         int64
	Kind       PdfKind
	OrderID    *int64
	ArticleID  *int64
	Filename   string
	StorageKey string
	Size       int64
	CreatedAt  time.Time
}

// ContentPath is the API path that streams the document.
func ContentPath(id int64) string {
	return "/api/pdfs/" + strconv.FormatInt(id, 10) + "/content"
}

type ListFilter struct {
	Kind      PdfKind
	OrderID   *int64
	ArticleID *int64
	Limit     int
	Offset    int
}

// ParseKind accepts order/article in any case; anything else is "".
func ParseKind(s string) PdfKind {
	switch k := PdfKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case PdfKindOrder, PdfKindArticle:
		return k
	}
	return ""
}

type PdfResponse struct {
	ID        int64     `json:"id"`
	Kind      PdfKind   `json:"kind"`
	OrderID   *int64    `json:"orderId"`
	ArticleID *int64    `json:"articleId"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d *PdfDocument) ToResponse() PdfResponse {
	return PdfResponse{
		ID:        d.ID,
		Kind:      d.Kind,
		OrderID:   d.OrderID,
		ArticleID: d.ArticleID,
		Filename:  d.Filename,
		Size:      d.Size,
		URL:       ContentPath(d.ID),
		CreatedAt: d.CreatedAt,
	}
}

type GenerateArticleRequest struct {
	ImageID *int64 `json:"imageId"`
}
