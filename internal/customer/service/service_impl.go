package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/customer/domain"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/internal/observability/metrics"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Retail    *config.RetailConfigHolder
	Repo      domain.Repository
	Addresses domain.AddressRepository
	Loyalty   domain.LoyaltyRepository
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	retail    *config.RetailConfigHolder
	repo      domain.Repository
	addresses domain.AddressRepository
	loyalty   domain.LoyaltyRepository
	metrics   *metrics.Metrics
}

func New(p Params) *Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		retail:    p.Retail,
		repo:      p.Repo,
		addresses: p.Addresses,
		loyalty:   p.Loyalty,
		metrics:   p.Metrics,
	}
}

var (
	_ domain.Service        = (*Service)(nil)
	_ domain.AddressService = (*Service)(nil)
	_ domain.LoyaltyService = (*Service)(nil)
)

// customerDependents are cleared or removed with a customer. The owned
// document is removed separately since the customer row points at it.
var customerDependents = []db.Relation{
	{Table: "orders", Column: "customer_id", Policy: db.SetNull},
	{Table: "loyalty_programs", Column: "customer_id", Policy: db.Cascade},
	{Table: "customer_addresses", Column: "customer_id", Policy: db.Cascade},
	{Table: "store_groups", Column: "owner_id", Policy: db.Cascade, Children: groupdomain.GroupDependents},
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return domain.Customer{}, err
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" || len([]rune(firstName)) > 150 {
		return domain.Customer{}, domain.ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if len([]rune(lastName)) > 150 {
		return domain.Customer{}, domain.ErrInvalidLastName
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return domain.Customer{}, err
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return domain.Customer{}, err
	}
	gender := domain.Gender(strings.ToUpper(strings.TrimSpace(req.Gender)))
	if !gender.Valid() {
		return domain.Customer{}, domain.ErrInvalidGender
	}

	document, err := s.buildDocument(ctx, req.Document)
	if err != nil {
		return domain.Customer{}, err
	}

	now := s.clock.Now()
	document.ID = s.genID.Generate()
	document.CreatedAt = now
	document.UpdatedAt = now

	customer := domain.Customer{
		ID:         s.genID.Generate(),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Phone:      phone,
		BirthDate:  birthDate,
		Gender:     gender,
		DocumentID: document.ID,
		IsActive:   true,
		DateJoined: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertDocument(ctx, tx, &document); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, &customer)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, err
	}

	customer.Document = &document
	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("document_type", string(document.DocumentType)),
	)
	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return domain.Customer{}, err
	}

	document, err := s.repo.FindDocument(ctx, s.db, customer.DocumentID)
	if err != nil {
		return domain.Customer{}, err
	}
	customer.Document = document
	return *customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	filter := domain.ListCustomerFilter{
		Name: strings.ToLower(strings.TrimSpace(req.Name)),
	}
	if raw := strings.TrimSpace(req.Email); raw != "" {
		email, err := domain.NormalizeEmail(raw)
		if err != nil {
			return domain.ListCustomerResponse{}, err
		}
		filter.Email = email
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListCustomerResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(c *domain.Customer) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: c.ID.String()})
		return token
	})

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return domain.ListCustomerResponse{PageInfo: pageInfo, Customers: customers}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	customerID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return domain.Customer{}, err
	}

	if req.Email != nil {
		if customer.Email, err = domain.NormalizeEmail(*req.Email); err != nil {
			return domain.Customer{}, err
		}
	}
	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" || len([]rune(firstName)) > 150 {
			return domain.Customer{}, domain.ErrInvalidFirstName
		}
		customer.FirstName = firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if len([]rune(lastName)) > 150 {
			return domain.Customer{}, domain.ErrInvalidLastName
		}
		customer.LastName = lastName
	}
	if req.Phone != nil {
		if customer.Phone, err = domain.NormalizePhone(*req.Phone); err != nil {
			return domain.Customer{}, err
		}
	}
	if req.BirthDate != nil {
		if customer.BirthDate, err = parseBirthDate(*req.BirthDate); err != nil {
			return domain.Customer{}, err
		}
	}
	if req.Gender != nil {
		gender := domain.Gender(strings.ToUpper(strings.TrimSpace(*req.Gender)))
		if !gender.Valid() {
			return domain.Customer{}, domain.ErrInvalidGender
		}
		customer.Gender = gender
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	customer.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, err
	}
	return *customer, nil
}

// Delete removes the customer with its document, loyalty program, address
// links and owned groups. Orders are kept without a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := s.parseID(id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		if err := db.ApplyDeletePolicy(ctx, tx, []int64{customerID.Int64()}, customerDependents...); err != nil {
			return err
		}
		if _, err := s.repo.Delete(ctx, tx, customerID); err != nil {
			return err
		}
		return s.repo.DeleteDocument(ctx, tx, customer.DocumentID)
	})
	if err != nil {
		return err
	}

	s.log.Info("customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}

// ReplaceDocument normalizes the new document before touching the stored one.
func (s *Service) ReplaceDocument(ctx context.Context, req domain.ReplaceDocumentRequest) (domain.CustomerDocument, error) {
	customerID, err := s.parseID(req.CustomerID)
	if err != nil {
		return domain.CustomerDocument{}, err
	}

	replacement, err := s.buildDocument(ctx, req.DocumentInput)
	if err != nil {
		return domain.CustomerDocument{}, err
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return domain.CustomerDocument{}, err
	}
	document, err := s.repo.FindDocument(ctx, s.db, customer.DocumentID)
	if err != nil {
		return domain.CustomerDocument{}, err
	}
	if document == nil {
		return domain.CustomerDocument{}, domain.ErrNotFound
	}

	document.DocumentType = replacement.DocumentType
	document.DocumentNumber = replacement.DocumentNumber
	document.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateDocument(ctx, s.db, document); err != nil {
		return domain.CustomerDocument{}, err
	}
	return *document, nil
}

func (s *Service) buildDocument(ctx context.Context, input domain.DocumentInput) (domain.CustomerDocument, error) {
	docType := domain.DocumentCPF
	if raw := strings.TrimSpace(input.Type); raw != "" {
		docType = domain.DocumentType(strings.ToUpper(raw))
	}
	if !docType.Valid() {
		return domain.CustomerDocument{}, domain.ErrInvalidDocumentType
	}

	number, err := domain.NormalizeDocument(docType, input.Number)
	if err != nil {
		s.metrics.RecordDocumentRejected(ctx, string(docType))
		s.log.Debug("document rejected", zap.String("document_type", string(docType)), zap.Error(err))
		return domain.CustomerDocument{}, err
	}
	if strings.TrimSpace(number) == "" || len(number) > 255 {
		return domain.CustomerDocument{}, domain.ErrInvalidDocumentNumber
	}

	return domain.CustomerDocument{DocumentType: docType, DocumentNumber: number}, nil
}

func (s *Service) findCustomer(ctx context.Context, id snowflake.ID) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseBirthDate(raw string) (*datatypes.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.ErrInvalidBirthDate
	}
	date := datatypes.Date(t)
	return &date, nil
}
