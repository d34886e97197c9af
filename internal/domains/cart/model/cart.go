package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	articlemodel "shop-backend/internal/domains/article/model"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusConverted CartStatus = "CONVERTED"
	CartStatusAbandoned CartStatus = "ABANDONED"
)

const MaxItemQuantity = 99

type Cart struct {
	ID        int64
	UserID    int64
	Status    CartStatus
	ExpiresAt *time.Time
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem carries the article's current price next to the snapshot taken
// when the item was added.
type CartItem struct {
	ID               int64
	CartID           int64
	ArticleID        int64
	ArticleName      string
	ArticleType      articlemodel.ArticleType
	CurrentPrice     decimal.Decimal
	Quantity         int
	PriceAtTime      decimal.Decimal
	OriginalPrice    decimal.Decimal
	VariantID        *int64
	VariantName      *string
	PromptID         *int64
	GeneratedImageID *int64
	Position         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (i *CartItem) Total() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (c *Cart) ItemCount() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Total())
	}
	return total
}

type AddItemRequest struct {
	ArticleID        int64  `json:"articleId"`
	Quantity         int    `json:"quantity"`
	VariantID        *int64 `json:"variantId"`
	PromptID         *int64 `json:"promptId"`
	GeneratedImageID *int64 `json:"generatedImageId"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArticleID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Quantity, validation.Min(1), validation.Max(MaxItemQuantity)),
		validation.Field(&r.VariantID, validation.Min(int64(1))),
		validation.Field(&r.PromptID, validation.Min(int64(1))),
		validation.Field(&r.GeneratedImageID, validation.Min(int64(1))),
	)
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(MaxItemQuantity)),
	)
}

type CartItemResponse struct {
	ID               int64                    `json:"id"`
	ArticleID        int64                    `json:"articleId"`
	ArticleName      string                   `json:"articleName"`
	ArticleType      articlemodel.ArticleType `json:"articleType"`
	Quantity         int                      `json:"quantity"`
	PriceAtTime      decimal.Decimal          `json:"priceAtTime"`
	OriginalPrice    decimal.Decimal          `json:"originalPrice"`
	CurrentPrice     decimal.Decimal          `json:"currentPrice"`
	TotalPrice       decimal.Decimal          `json:"totalPrice"`
	HasPriceChanged  bool                     `json:"hasPriceChanged"`
	VariantID        *int64                   `json:"variantId"`
	VariantName      *string                  `json:"variantName"`
	PromptID         *int64                   `json:"promptId"`
	GeneratedImageID *int64                   `json:"generatedImageId"`
	Position         int                      `json:"position"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

type CartResponse struct {
	ID             int64              `json:"id"`
	UserID         int64              `json:"userId"`
	Status         CartStatus         `json:"status"`
	Items          []CartItemResponse `json:"items"`
	TotalItemCount int                `json:"totalItemCount"`
	TotalPrice     decimal.Decimal    `json:"totalPrice"`
	IsEmpty        bool               `json:"isEmpty"`
	ExpiresAt      *time.Time         `json:"expiresAt"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type CartSummary struct {
	ItemCount  int             `json:"itemCount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	HasItems   bool            `json:"hasItems"`
}

func (i *CartItem) ToResponse() CartItemResponse {
	return CartItemResponse{
		ID:               i.ID,
		ArticleID:        i.ArticleID,
		ArticleName:      i.ArticleName,
		ArticleType:      i.ArticleType,
		Quantity:         i.Quantity,
		PriceAtTime:      i.PriceAtTime,
		OriginalPrice:    i.OriginalPrice,
		CurrentPrice:     i.CurrentPrice,
		TotalPrice:       i.Total(),
		HasPriceChanged:  !i.CurrentPrice.Equal(i.PriceAtTime),
		VariantID:        i.VariantID,
		VariantName:      i.VariantName,
		PromptID:         i.PromptID,
		GeneratedImageID: i.GeneratedImageID,
		Position:         i.Position,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (c *Cart) ToResponse() CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = c.Items[i].ToResponse()
	}
	return CartResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Status:         c.Status,
		Items:          items,
		TotalItemCount: c.ItemCount(),
		TotalPrice:     c.TotalPrice(),
		IsEmpty:        len(c.Items) == 0,
		ExpiresAt:      c.ExpiresAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (c *Cart) Summary() CartSummary {
	return CartSummary{
		ItemCount:  c.ItemCount(),
		TotalPrice: c.TotalPrice(),
		HasItems:   len(c.Items) > 0,
	}
}
