package service

import (
	"context"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	articlerepo "shop-backend/internal/domains/article/repository"
	cartmodel "shop-backend/internal/domains/cart/model"
	cartrepo "shop-backend/internal/domains/cart/repository"
	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/repository"
	vatrepo "shop-backend/internal/domains/vat/repository"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/response"
)

type orderService struct {
	repo     repository.RepositoryInterface
	carts    cartrepo.RepositoryInterface
	articles articlerepo.RepositoryInterface
	vats     vatrepo.RepositoryInterface
	tasks    queue.Enqueuer
	created  prometheus.Counter
	shipping decimal.Decimal
	now      func() time.Time
}

func NewOrderService(
	repo repository.RepositoryInterface,
	carts cartrepo.RepositoryInterface,
	articles articlerepo.RepositoryInterface,
	vats vatrepo.RepositoryInterface,
	tasks queue.Enqueuer,
	created prometheus.Counter,
	shipping decimal.Decimal,
) ServiceInterface {
	return &orderService{
		repo:     repo,
		carts:    carts,
		articles: articles,
		vats:     vats,
		tasks:    tasks,
		created:  created,
		shipping: shipping,
		now:      time.Now,
	}
}

func (s *orderService) CreateFromCart(ctx context.Context, userID int64, req model.CreateOrderRequest) (*model.OrderResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrEmptyCart()
	}

	defaultVat, err := s.defaultVatPercent(ctx)
	if err != nil {
		return nil, err
	}

	build := func(items []cartmodel.CartItem) (*model.Order, error) {
		if len(items) == 0 {
			return nil, model.ErrEmptyCart()
		}
		order := &model.Order{
			OrderNumber:       model.NewOrderNumber(s.now()),
			UserID:            userID,
			CustomerEmail:     req.CustomerEmail,
			CustomerFirstName: req.CustomerFirstName,
			CustomerLastName:  req.CustomerLastName,
			CustomerPhone:     req.CustomerPhone,
			ShippingAddress:   req.ShippingAddress,
			BillingAddress:    req.BillingAddress,
			Status:            model.OrderStatusPending,
			CartID:            cart.ID,
			Notes:             req.Notes,
			Items:             make([]model.OrderItem, 0, len(items)),
		}
		if order.BillingAddress == nil {
			billing := req.ShippingAddress
			order.BillingAddress = &billing
		}

		vatByArticle := map[int64]int{}
		for _, ci := range items {
			percent, ok := vatByArticle[ci.ArticleID]
			if !ok {
				p, err := s.vatPercent(ctx, ci.ArticleID, defaultVat)
				if err != nil {
					return nil, err
				}
				percent = p
				vatByArticle[ci.ArticleID] = p
			}

			order.Items = append(order.Items, model.OrderItem{
				ArticleID:        ci.ArticleID,
				ArticleName:      ci.ArticleName,
				Quantity:         ci.Quantity,
				PricePerItem:     ci.PriceAtTime,
				VatPercent:       percent,
				VariantID:        ci.VariantID,
				VariantName:      ci.VariantName,
				PromptID:         ci.PromptID,
				GeneratedImageID: ci.GeneratedImageID,
			})
		}
		order.ApplyTotals(s.shipping)
		return order, nil
	}

	created, err := s.repo.CreateFromCart(ctx, cart.ID, build)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("user_id", userID).
		Int64("cart_id", cart.ID).
		Str("order_number", created.OrderNumber).
		Str("total", created.TotalAmount.String()).
		Msg("order created")

	if s.created != nil {
		s.created.Inc()
	}
	s.enqueueFollowUps(ctx, created.ID)

	resp := created.ToResponse()
	return &resp, nil
}

// enqueueFollowUps schedules document generation and the confirmation
// mail. Failures are logged; the order itself is already committed.
func (s *orderService) enqueueFollowUps(ctx context.Context, orderID int64) {
	if s.tasks == nil {
		return
	}
	payload := shared.OrderTaskPayload{OrderID: orderID}

	if err := s.tasks.Enqueue(ctx, shared.TypeGenerateOrderPdf, payload,
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5)); err != nil {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to enqueue order pdf generation")
	}
	// the confirmation waits for the document it attaches
	if err := s.tasks.Enqueue(ctx, shared.TypeSendOrderConfirmation, payload,
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5), asynq.ProcessIn(30*time.Second)); err != nil {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to enqueue order confirmation")
	}
}

// vatPercent reads the rate from the VAT table rather than the cached
// article, which may still carry the percent from before a rate change.
func (s *orderService) vatPercent(ctx context.Context, articleID int64, fallback int) (int, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return 0, err
	}
	if article.VatID == nil {
		return fallback, nil
	}
	v, err := s.vats.GetByID(ctx, *article.VatID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return fallback, nil
		}
		return 0, err
	}
	return v.Percent, nil
}

func (s *orderService) defaultVatPercent(ctx context.Context) (int, error) {
	v, err := s.vats.GetDefault(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return v.Percent, nil
}

func (s *orderService) list(ctx context.Context, filter model.ListFilter, page, size int) (response.Page[model.OrderResponse], error) {
	filter.Limit = size
	filter.Offset = page * size

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return response.Page[model.OrderResponse]{}, err
	}

	out := make([]model.OrderResponse, len(orders))
	for i := range orders {
		out[i] = orders[i].ToResponse()
	}
	return response.NewPage(out, page, size, total), nil
}

func (s *orderService) ListForUser(ctx context.Context, userID int64, page, size int) (response.Page[model.OrderResponse], error) {
	return s.list(ctx, model.ListFilter{UserID: &userID}, page, size)
}

func (s *orderService) GetForUser(ctx context.Context, userID, id int64) (*model.OrderResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, model.ErrOrderNotFound(id)
	}
	resp := o.ToResponse()
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, status string, page, size int) (response.Page[model.OrderResponse], error) {
	st := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !model.ValidStatus(st) {
		return response.Page[model.OrderResponse]{}, model.ErrInvalidStatus(status)
	}
	return s.list(ctx, model.ListFilter{Status: st}, page, size)
}

func (s *orderService) Get(ctx context.Context, id int64) (*model.OrderResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := o.ToResponse()
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, req model.UpdateStatusRequest) (*model.OrderResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == req.Status {
		resp := existing.ToResponse()
		return &resp, nil
	}
	if existing.Status.IsTerminal() {
		return nil, model.ErrStatusFinal(existing.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("order_id", id).Str("from", string(existing.Status)).Str("to", string(req.Status)).Msg("order status changed")

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
