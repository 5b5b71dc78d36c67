package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/observability/metrics"
	"github.com/smallbiznis/varejo/internal/sales/domain"
	"github.com/smallbiznis/varejo/internal/sales/receipt"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"github.com/smallbiznis/varejo/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Cfg        config.Config
	GenID      *snowflake.Node
	Clock      clock.Clock
	Retail     *config.RetailConfigHolder
	Repo       domain.Repository
	References domain.ReferenceChecker
	Receipts   receipt.Renderer
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	location   *time.Location
	genID      *snowflake.Node
	clock      clock.Clock
	retail     *config.RetailConfigHolder
	repo       domain.Repository
	references domain.ReferenceChecker
	receipts   receipt.Renderer
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	log := p.Log.Named("sales.service")
	location, err := time.LoadLocation(p.Cfg.TimeZone)
	if err != nil {
		log.Warn("unknown time zone, receipts use UTC", zap.String("time_zone", p.Cfg.TimeZone))
		location = time.UTC
	}
	return &Service{
		db:         p.DB,
		log:        log,
		location:   location,
		genID:      p.GenID,
		clock:      p.Clock,
		retail:     p.Retail,
		repo:       p.Repo,
		references: p.References,
		receipts:   p.Receipts,
		metrics:    p.Metrics,
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// Create stores the order and its items in one transaction. A missing
// total_amount is derived from the items and the discount.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	now := s.clock.Now()
	order := domain.Order{
		ID:              s.genID.Generate(),
		ExternalID:      strings.TrimSpace(req.ExternalID),
		DiscountApplied: decimal.Zero,
		SaleDate:        now,
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if order.ExternalID == "" {
		order.ExternalID = ulid.Make().String()
	}
	if len([]rune(order.ExternalID)) > 255 {
		return domain.Order{}, domain.ErrInvalidExternalID
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		order.Status = domain.OrderStatus(strings.ToUpper(raw))
		if !order.Status.Valid() {
			return domain.Order{}, domain.ErrInvalidStatus
		}
	}
	if req.DiscountApplied != nil {
		if !money.Price(*req.DiscountApplied) {
			return domain.Order{}, domain.ErrInvalidDiscount
		}
		order.DiscountApplied = *req.DiscountApplied
	}
	if req.SaleDate != nil && !req.SaleDate.IsZero() {
		order.SaleDate = req.SaleDate.UTC()
	}

	var err error
	if order.CustomerID, err = s.resolveCustomer(ctx, req.CustomerID); err != nil {
		return domain.Order{}, err
	}
	if order.Items, err = s.buildItems(ctx, order.ID, now, req.Items); err != nil {
		return domain.Order{}, err
	}

	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	} else {
		order.TotalAmount = order.DerivedTotal()
	}
	if !money.Price(order.TotalAmount) {
		return domain.Order{}, domain.ErrInvalidAmount
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, order.Items)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Order{}, domain.ErrDuplicateOrder
		}
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCreated(ctx, string(order.Status))
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("external_id", order.ExternalID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := s.parseID(id)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	if order.Items, err = s.repo.Items(ctx, s.db, order.ID); err != nil {
		return domain.Order{}, err
	}
	return *order, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) (domain.ListOrderResponse, error) {
	filter := domain.ListOrderFilter{}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		filter.Status = domain.OrderStatus(strings.ToUpper(raw))
		if !filter.Status.Valid() {
			return domain.ListOrderResponse{}, domain.ErrInvalidStatus
		}
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListOrderResponse{}, domain.ErrInvalidCustomer
		}
		filter.CustomerID = id.Int64()
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListOrderResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(o *domain.Order) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: o.ID.String()})
		return token
	})

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}
	return domain.ListOrderResponse{PageInfo: pageInfo, Orders: orders}, nil
}

// UpdateStatus sets any of the known statuses; transitions are not restricted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (domain.Order, error) {
	next := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return domain.Order{}, domain.ErrInvalidStatus
	}
	orderID, err := s.parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := s.repo.UpdateStatus(ctx, s.db, orderID, next, s.clock.Now())
	if err != nil {
		return domain.Order{}, err
	}
	if rows == 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orderID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{orderID.Int64()}, db.Relation{
			Table: "order_items", Column: "order_id", Policy: db.Cascade,
		}); err != nil {
			return err
		}
		rows, err := s.repo.Delete(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Receipt renders the order as a PDF.
func (s *Service) Receipt(ctx context.Context, id string) (io.Reader, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	productIDs := make([]snowflake.ID, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}
	names, err := s.references.ProductNames(ctx, s.db, productIDs)
	if err != nil {
		return nil, err
	}

	data := receipt.Data{
		OrderID:    order.ID.String(),
		ExternalID: order.ExternalID,
		SaleDate:   order.SaleDate.In(s.location).Format("02/01/2006 15:04"),
		Status:     order.Status.Label(),
		Subtotal:   order.ItemsTotal().StringFixed(2),
		Discount:   order.DiscountApplied.StringFixed(2),
		Total:      order.TotalAmount.StringFixed(2),
	}
	if order.CustomerID != nil {
		if data.CustomerName, err = s.references.CustomerName(ctx, s.db, *order.CustomerID); err != nil {
			return nil, err
		}
	}
	for _, item := range order.Items {
		description := "Produto removido"
		if item.ProductID != nil {
			if name, ok := names[*item.ProductID]; ok {
				description = name
			}
		}
		data.Lines = append(data.Lines, receipt.Line{
			Description: description,
			Qty:         item.Quantity,
			UnitPrice:   item.Price.StringFixed(2),
			Amount:      item.TotalPrice().StringFixed(2),
		})
	}

	return s.receipts.Render(ctx, data)
}

func (s *Service) resolveCustomer(ctx context.Context, raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCustomer
	}
	found, err := s.references.CustomerExists(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrInvalidCustomer
	}
	return &id, nil
}

func (s *Service) buildItems(ctx context.Context, orderID snowflake.ID, now time.Time, inputs []domain.OrderItemInput) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(inputs))
	referenced := map[snowflake.ID]struct{}{}
	for _, input := range inputs {
		item := domain.OrderItem{
			ID:        s.genID.Generate(),
			OrderID:   orderID,
			Quantity:  1,
			Price:     input.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		if item.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if !money.Price(item.Price) {
			return nil, domain.ErrInvalidPrice
		}
		if raw := strings.TrimSpace(input.ProductID); raw != "" {
			id, err := snowflake.ParseString(raw)
			if err != nil || id == 0 {
				return nil, domain.ErrInvalidProduct
			}
			item.ProductID = &id
			referenced[id] = struct{}{}
		}
		items = append(items, item)
	}

	if len(referenced) > 0 {
		ids := make([]snowflake.ID, 0, len(referenced))
		for id := range referenced {
			ids = append(ids, id)
		}
		count, err := s.references.CountProducts(ctx, s.db, ids)
		if err != nil {
			return nil, err
		}
		if count != int64(len(ids)) {
			return nil, domain.ErrInvalidProduct
		}
	}
	return items, nil
}
