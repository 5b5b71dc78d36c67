package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/varejo/internal/catalog"
	catalogdomain "github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/customer"
	customerdomain "github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/internal/group"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/internal/marketing"
	marketingdomain "github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/internal/observability"
	obsmiddleware "github.com/smallbiznis/varejo/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/varejo/internal/observability/metrics"
	obstracing "github.com/smallbiznis/varejo/internal/observability/tracing"
	"github.com/smallbiznis/varejo/internal/sales"
	salesdomain "github.com/smallbiznis/varejo/internal/sales/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	customer.Module,
	group.Module,
	marketing.Module,
	sales.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())
	r.Use(AllowedHosts(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	catalogSvc   catalogdomain.Service
	customerSvc  customerdomain.Service
	addressSvc   customerdomain.AddressService
	loyaltySvc   customerdomain.LoyaltyService
	groupSvc     groupdomain.Service
	marketingSvc marketingdomain.Service
	salesSvc     salesdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	CatalogSvc   catalogdomain.Service
	CustomerSvc  customerdomain.Service
	AddressSvc   customerdomain.AddressService
	LoyaltySvc   customerdomain.LoyaltyService
	GroupSvc     groupdomain.Service
	MarketingSvc marketingdomain.Service
	SalesSvc     salesdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		catalogSvc:   p.CatalogSvc,
		customerSvc:  p.CustomerSvc,
		addressSvc:   p.AddressSvc,
		loyaltySvc:   p.LoyaltySvc,
		groupSvc:     p.GroupSvc,
		marketingSvc: p.MarketingSvc,
		salesSvc:     p.SalesSvc,
	}

	svc.registerHelloRoutes()
	svc.registerAdminRoutes()
	svc.registerFileRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHelloRoutes() {
	s.engine.GET("/", s.Hello)
	s.engine.GET("/api", s.Hello)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	// -------- Catalog --------
	admin.GET("/categories", s.ListCategories)
	admin.POST("/categories", s.CreateCategory)
	admin.GET("/categories/:id", s.GetCategory)
	admin.PATCH("/categories/:id", s.UpdateCategory)
	admin.DELETE("/categories/:id", s.DeleteCategory)

	admin.GET("/brands", s.ListBrands)
	admin.POST("/brands", s.CreateBrand)
	admin.GET("/brands/:id", s.GetBrand)
	admin.PATCH("/brands/:id", s.UpdateBrand)
	admin.DELETE("/brands/:id", s.DeleteBrand)

	admin.GET("/products", s.ListProducts)
	admin.POST("/products", s.CreateProduct)
	admin.GET("/products/:id", s.GetProduct)
	admin.PATCH("/products/:id", s.UpdateProduct)
	admin.DELETE("/products/:id", s.DeleteProduct)

	// -------- Customers --------
	admin.GET("/customers", s.ListCustomers)
	admin.POST("/customers", s.CreateCustomer)
	admin.GET("/customers/:id", s.GetCustomerByID)
	admin.PATCH("/customers/:id", s.UpdateCustomer)
	admin.DELETE("/customers/:id", s.DeleteCustomer)
	admin.PUT("/customers/:id/document", s.ReplaceCustomerDocument)

	admin.GET("/customers/:id/addresses", s.ListCustomerAddresses)
	admin.POST("/customers/:id/addresses", s.CreateCustomerAddress)
	admin.PUT("/customers/:id/addresses/:address_id", s.AttachCustomerAddress)
	admin.DELETE("/customers/:id/addresses/:address_id", s.DetachCustomerAddress)

	admin.GET("/customers/:id/loyalty", s.GetLoyalty)
	admin.POST("/customers/:id/loyalty", s.EnrollLoyalty)
	admin.POST("/customers/:id/loyalty/points", s.AddLoyaltyPoints)
	admin.PUT("/customers/:id/loyalty/tier", s.SetLoyaltyTier)

	admin.GET("/addresses/:id", s.GetAddress)
	admin.PUT("/addresses/:id", s.UpdateAddress)
	admin.DELETE("/addresses/:id", s.DeleteAddress)

	// -------- Groups & Stores --------
	admin.GET("/groups", s.ListGroups)
	admin.POST("/groups", s.CreateGroup)
	admin.GET("/groups/:id", s.GetGroup)
	admin.PUT("/groups/:id", s.UpdateGroup)
	admin.DELETE("/groups/:id", s.DeleteGroup)
	admin.PUT("/groups/:id/addresses/:address_id", s.AttachGroupAddress)
	admin.DELETE("/groups/:id/addresses/:address_id", s.DetachGroupAddress)
	admin.GET("/groups/:id/stores", s.ListStores)
	admin.POST("/groups/:id/stores", s.CreateStore)

	admin.GET("/stores/:id", s.GetStore)
	admin.PUT("/stores/:id", s.UpdateStore)
	admin.DELETE("/stores/:id", s.DeleteStore)
	admin.PUT("/stores/:id/contacts", s.ReplaceStoreContacts)

	// -------- Marketing --------
	admin.GET("/campaigns", s.ListCampaigns)
	admin.POST("/campaigns", s.CreateCampaign)
	admin.GET("/campaigns/:id", s.GetCampaign)
	admin.PUT("/campaigns/:id", s.UpdateCampaign)
	admin.DELETE("/campaigns/:id", s.DeleteCampaign)

	admin.GET("/offers", s.ListOffers)
	admin.POST("/offers", s.CreateOffer)
	admin.GET("/offers/:id", s.GetOffer)
	admin.PUT("/offers/:id", s.UpdateOffer)
	admin.DELETE("/offers/:id", s.DeleteOffer)
	admin.PUT("/offers/:id/products", s.ReplaceOfferProducts)

	admin.GET("/coupons", s.ListCoupons)
	admin.POST("/coupons", s.CreateCoupon)
	admin.GET("/coupons/:id", s.GetCoupon)
	admin.PUT("/coupons/:id", s.UpdateCoupon)
	admin.DELETE("/coupons/:id", s.DeleteCoupon)
	admin.GET("/coupon-codes/:code", s.CheckCoupon)
	admin.POST("/coupon-codes/:code/redeem", s.RedeemCoupon)

	admin.GET("/contacts", s.ListContacts)
	admin.POST("/contacts", s.CreateContact)
	admin.GET("/contacts/:id", s.GetContact)
	admin.PUT("/contacts/:id", s.UpdateContact)
	admin.DELETE("/contacts/:id", s.DeleteContact)

	admin.GET("/social-media", s.ListSocialMedia)
	admin.POST("/social-media", s.CreateSocialMedia)
	admin.GET("/social-media/:id", s.GetSocialMedia)
	admin.PUT("/social-media/:id", s.UpdateSocialMedia)
	admin.DELETE("/social-media/:id", s.DeleteSocialMedia)

	// -------- Sales --------
	admin.GET("/orders", s.ListOrders)
	admin.POST("/orders", s.CreateOrder)
	admin.GET("/orders/:id", s.GetOrder)
	admin.PATCH("/orders/:id", s.UpdateOrderStatus)
	admin.DELETE("/orders/:id", s.DeleteOrder)
	admin.GET("/orders/:id/receipt", s.GetOrderReceipt)
}

// registerFileRoutes serves STATIC_ROOT and MEDIA_ROOT under their URL prefixes.
func (s *Server) registerFileRoutes() {
	if prefix := urlPrefix(s.cfg.StaticURL); prefix != "" && s.cfg.StaticRoot != "" {
		s.engine.Static(prefix, s.cfg.StaticRoot)
	}
	if prefix := urlPrefix(s.cfg.MediaURL); prefix != "" && s.cfg.MediaRoot != "" {
		s.engine.Static(prefix, s.cfg.MediaRoot)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}

func urlPrefix(raw string) string {
	raw = strings.Trim(strings.TrimSpace(raw), "/")
	if raw == "" || strings.Contains(raw, "://") {
		return ""
	}
	return "/" + raw
}
