package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-backend/internal/shared/utils"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var orderStatuses = []interface{}{
	OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Address struct {
	StreetAddress1 string  `json:"streetAddress1"`
	StreetAddress2 *string `json:"streetAddress2"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	PostalCode     string  `json:"postalCode"`
	Country        string  `json:"country"`
}

func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.StreetAddress1, validation.Required, validation.Length(1, 255)),
		validation.Field(&a.StreetAddress2, validation.Length(0, 255)),
		validation.Field(&a.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.State, validation.Length(0, 100)),
		validation.Field(&a.PostalCode, validation.Required, validation.Length(1, 20)),
		validation.Field(&a.Country, validation.Required, validation.Length(1, 100)),
	)
}

func (a *Address) normalize() {
	a.StreetAddress1 = strings.TrimSpace(a.StreetAddress1)
	a.StreetAddress2 = utils.TrimPtr(a.StreetAddress2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
}

// Lines formats the address for printing.
func (a Address) Lines() []string {
	lines := []string{a.StreetAddress1}
	if a.StreetAddress2 != nil {
		lines = append(lines, *a.StreetAddress2)
	}
	city := strings.TrimSpace(a.PostalCode + " " + a.City)
	if a.State != "" {
		city += ", " + a.State
	}
	return append(lines, city, a.Country)
}

type Order struct {
	ID                int64
	OrderNumber       string
	UserID            int64
	CustomerEmail     string
	CustomerFirstName string
	CustomerLastName  string
	CustomerPhone     *string
	ShippingAddress   Address
	BillingAddress    *Address
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	ShippingAmount    decimal.Decimal
	TotalAmount       decimal.Decimal
	Status            OrderStatus
	CartID            int64
	Notes             *string
	PdfURL            *string
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (o *Order) CustomerName() string {
	return strings.TrimSpace(o.CustomerFirstName + " " + o.CustomerLastName)
}

type OrderItem struct {
	ID               int64
	OrderID          int64
	ArticleID        int64
	ArticleName      string
	Quantity         int
	PricePerItem     decimal.Decimal
	TotalPrice       decimal.Decimal
	VatPercent       int
	VariantID        *int64
	VariantName      *string
	PromptID         *int64
	GeneratedImageID *int64
	CreatedAt        time.Time
}

// NewOrderNumber returns a human readable, unique order number.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}

var hundred = decimal.NewFromInt(100)

// LineTax is the VAT owed on one line, rounded to cents.
func LineTax(total decimal.Decimal, vatPercent int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(vatPercent))).Div(hundred).Round(2)
}

// ApplyTotals sets subtotal, tax and total from the items and the given
// shipping amount. Tax is added on top of the net prices.
func (o *Order) ApplyTotals(shipping decimal.Decimal) {
	subtotal, tax := decimal.Zero, decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		it.TotalPrice = it.PricePerItem.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(it.TotalPrice)
		tax = tax.Add(LineTax(it.TotalPrice, it.VatPercent))
	}
	o.Subtotal = subtotal
	o.TaxAmount = tax
	o.ShippingAmount = shipping
	o.TotalAmount = subtotal.Add(tax).Add(shipping)
}

type CreateOrderRequest struct {
	CustomerEmail     string   `json:"customerEmail"`
	CustomerFirstName string   `json:"customerFirstName"`
	CustomerLastName  string   `json:"customerLastName"`
	CustomerPhone     *string  `json:"customerPhone"`
	ShippingAddress   Address  `json:"shippingAddress"`
	BillingAddress    *Address `json:"billingAddress"`
	Notes             *string  `json:"notes"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerEmail, validation.Required, is.EmailFormat, validation.Length(1, 255)),
		validation.Field(&r.CustomerFirstName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CustomerLastName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CustomerPhone, validation.Length(0, 50)),
		validation.Field(&r.ShippingAddress),
		validation.Field(&r.BillingAddress),
		validation.Field(&r.Notes, validation.Length(0, 1000)),
	)
}

func (r *CreateOrderRequest) Normalize() {
	r.CustomerEmail = strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	r.CustomerFirstName = strings.TrimSpace(r.CustomerFirstName)
	r.CustomerLastName = strings.TrimSpace(r.CustomerLastName)
	r.CustomerPhone = utils.TrimPtr(r.CustomerPhone)
	r.Notes = utils.TrimPtr(r.Notes)
	r.ShippingAddress.normalize()
	if r.BillingAddress != nil {
		r.BillingAddress.normalize()
	}
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(orderStatuses...).
			Error("must be PENDING, PROCESSING, SHIPPED, DELIVERED or CANCELLED")),
	)
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = OrderStatus(strings.ToUpper(strings.TrimSpace(string(r.Status))))
}

// ListFilter narrows order listings; a nil UserID lists every user's orders.
type ListFilter struct {
	UserID *int64
	Status OrderStatus
	Limit  int
	Offset int
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s OrderStatus) bool {
	for _, v := range orderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type OrderItemResponse struct {
	ID               int64           `json:"id"`
	ArticleID        int64           `json:"articleId"`
	ArticleName      string          `json:"articleName"`
	Quantity         int             `json:"quantity"`
	PricePerItem     decimal.Decimal `json:"pricePerItem"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	VatPercent       int             `json:"vatPercent"`
	VariantID        *int64          `json:"variantId"`
	VariantName      *string         `json:"variantName"`
	PromptID         *int64          `json:"promptId"`
	GeneratedImageID *int64          `json:"generatedImageId"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type OrderResponse struct {
	ID                int64               `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	UserID            int64               `json:"userId"`
	CustomerEmail     string              `json:"customerEmail"`
	CustomerFirstName string              `json:"customerFirstName"`
	CustomerLastName  string              `json:"customerLastName"`
	CustomerPhone     *string             `json:"customerPhone"`
	ShippingAddress   Address             `json:"shippingAddress"`
	BillingAddress    *Address            `json:"billingAddress"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	TaxAmount         decimal.Decimal     `json:"taxAmount"`
	ShippingAmount    decimal.Decimal     `json:"shippingAmount"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	Status            OrderStatus         `json:"status"`
	CartID            int64               `json:"cartId"`
	Notes             *string             `json:"notes"`
	PdfURL            *string             `json:"pdfUrl"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func (o *Order) ToResponse() OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:               it.ID,
			ArticleID:        it.ArticleID,
			ArticleName:      it.ArticleName,
			Quantity:         it.Quantity,
			PricePerItem:     it.PricePerItem,
			TotalPrice:       it.TotalPrice,
			VatPercent:       it.VatPercent,
			VariantID:        it.VariantID,
			VariantName:      it.VariantName,
			PromptID:         it.PromptID,
			GeneratedImageID: it.GeneratedImageID,
			CreatedAt:        it.CreatedAt,
		}
	}
	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		CustomerEmail:     o.CustomerEmail,
		CustomerFirstName: o.CustomerFirstName,
		CustomerLastName:  o.CustomerLastName,
		CustomerPhone:     o.CustomerPhone,
		ShippingAddress:   o.ShippingAddress,
		BillingAddress:    o.BillingAddress,
		Subtotal:          o.Subtotal,
		TaxAmount:         o.TaxAmount,
		ShippingAmount:    o.ShippingAmount,
		TotalAmount:       o.TotalAmount,
		Status:            o.Status,
		CartID:            o.CartID,
		Notes:             o.Notes,
		PdfURL:            o.PdfURL,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
