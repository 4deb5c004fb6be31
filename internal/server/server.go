package server

import (
	"supermercado-api/internal/config"
	"supermercado-api/internal/handler"
	appmw "supermercado-api/internal/middleware"
	"supermercado-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	catalogHandler *handler.CatalogHandler
	couponHandler  *handler.CouponHandler
	configHandler  *handler.ConfigHandler
	statsHandler   *handler.StatsHandler

	staffToken    string
	checkoutLimit float64
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	couponService service.CouponService,
	siteConfigService service.SiteConfigService,
	statsService service.StatsService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	s := &Server{
		echo:           e,
		orderHandler:   handler.NewOrderHandler(checkoutService, couponService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		couponHandler:  handler.NewCouponHandler(couponService),
		configHandler:  handler.NewConfigHandler(siteConfigService),
		statsHandler:   handler.NewStatsHandler(statsService),
		staffToken:     cfg.StaffToken,
		checkoutLimit:  cfg.CheckoutRateLimit,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/categories", s.catalogHandler.ListCategories)
	api.GET("/categories/:id", s.catalogHandler.GetCategory)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/announcements", s.catalogHandler.ListAnnouncements)
	api.GET("/config", s.configHandler.Get)

	// checkout and coupon probing are the abuse-prone endpoints
	throttled := middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(s.checkoutLimit)),
	)
	api.POST("/orders", s.orderHandler.Create, throttled)
	api.GET("/orders/:reference", s.orderHandler.Get)
	api.POST("/coupons/validate", s.couponHandler.Validate, throttled)

	admin := api.Group("/admin", appmw.StaffOnly(s.staffToken))
	admin.PUT("/config", s.configHandler.Update)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct)
	admin.GET("/stats/sales", s.statsHandler.Sales)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
