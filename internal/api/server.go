package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/pinswap/api/docs"
	v1 "github.com/pinswap/api/internal/api/handler/v1"
	"github.com/pinswap/api/internal/api/middleware"
	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/detector"
	"github.com/pinswap/api/internal/pkg/mailer"
	"github.com/pinswap/api/internal/pkg/ratelimit"
	"github.com/pinswap/api/internal/repository"
	"github.com/pinswap/api/internal/repository/dao"
	"github.com/pinswap/api/internal/service"
)

const basePath = "/api"

// Dependencies are the outbound clients the handlers need besides the database.
// Redis is optional; without it the rate limiter is kept in memory.
type Dependencies struct {
	Mailer    mailer.Mailer
	Generator service.ContentGenerator
	Redis     *redis.Client
	// Detector defaults to the configured scan command.
	Detector v1.PinDetector
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	deps     Dependencies
	limiter  ratelimit.Limiter
	chat     *v1.ChatHandler
	handlers handlers
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	voucher      *v1.VoucherHandler
	news         *v1.NewsHandler
	event        *v1.EventHandler
	location     *v1.LocationHandler
	collection   *v1.CollectionHandler
	feedback     *v1.FeedbackHandler
	subscription *v1.SubscriptionHandler
	admin        *v1.AdminHandler
	upload       *v1.UploadHandler
	scan         *v1.ScanHandler
	chat         *v1.ChatHandler
}

// NewServer wires every handler. Background workers (chat sessions, the
// in-memory limiter sweep) start with Run.
func NewServer(conf *config.AppConfig, db *gorm.DB, deps Dependencies) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		deps:   deps,
	}

	s.MountMiddlewares()
	s.initLimiter()
	s.initHandlers(db)
	s.MountHandlers()

	return s
}

// Run starts the background workers and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) {
	if l, ok := s.limiter.(*ratelimit.MemoryLimiter); ok {
		go l.RunCleanup(ctx, s.Config.RateLimit.Window)
	}

	s.chat.Run(ctx)
}

func (s *Server) initLimiter() {
	rl := s.Config.RateLimit
	if s.deps.Redis != nil {
		s.limiter = ratelimit.NewRedisLimiter(s.deps.Redis, rl.Limit, rl.Window)
		return
	}

	s.limiter = ratelimit.NewMemoryLimiter(rl.Limit, rl.Window)
}

func (s *Server) initHandlers(db *gorm.DB) {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	businessRepo := repository.NewBusinessRepository(dao.NewBusinessDAO(db))
	voucherRepo := repository.NewVoucherRepository(dao.NewVoucherDAO(db), dao.NewRedemptionDAO(db))
	newsRepo := repository.NewNewsRepository(dao.NewNewsDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	locationRepo := repository.NewLocationRepository(dao.NewLocationDAO(db))
	collectionRepo := repository.NewCollectionRepository(dao.NewCollectionDAO(db))
	feedbackRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	subscriberRepo := repository.NewSubscriberRepository(dao.NewSubscriberDAO(db))

	api := s.Config.API
	userSvc := service.NewUserService(userRepo)
	newsletter := service.NewNewsletterService(s.Config.Newsletter, api.FrontendURL, subscriberRepo, s.deps.Mailer)

	var pinDetector v1.PinDetector = detector.New(s.Config.Scan)
	if s.deps.Detector != nil {
		pinDetector = s.deps.Detector
	}

	s.chat = v1.NewChatHandler(service.NewChatService(s.deps.Generator), api.AllowedCORSDomains)
	s.handlers = handlers{
		auth:         v1.NewAuthHandler(api, service.NewAuthService(api, userRepo, businessRepo, s.deps.Mailer)),
		user:         v1.NewUserHandler(userSvc),
		voucher:      v1.NewVoucherHandler(service.NewVoucherService(voucherRepo, userRepo), userSvc),
		news:         v1.NewNewsHandler(service.NewNewsService(newsRepo, newsletter)),
		event:        v1.NewEventHandler(service.NewEventService(eventRepo)),
		location:     v1.NewLocationHandler(service.NewLocationService(s.Config.Rewards, locationRepo, userRepo), userSvc),
		collection:   v1.NewCollectionHandler(service.NewCollectionService(collectionRepo, userRepo)),
		feedback:     v1.NewFeedbackHandler(service.NewFeedbackService(feedbackRepo)),
		subscription: v1.NewSubscriptionHandler(service.NewSubscriptionService(api.BackendURL, subscriberRepo, s.deps.Mailer), api.FrontendURL),
		admin:        v1.NewAdminHandler(service.NewAdminService(userRepo, businessRepo, locationRepo, newsRepo)),
		upload:       v1.NewUploadHandler(s.Config.Uploads, api.BackendURL),
		scan:         v1.NewScanHandler(s.Config.Uploads, pinDetector, api.BackendURL),
		chat:         s.chat,
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) rateLimit(scope string) gin.HandlerFunc {
	if !s.Config.RateLimit.Enabled {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	return middleware.RateLimit(s.limiter, scope)
}

func (s *Server) MountHandlers() {
	h := s.handlers
	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	verify := authn.VerifyJWT()
	admin := middleware.RequireRoles(domain.RoleAdmin)
	adminOrBusiness := middleware.RequireRoles(domain.RoleAdmin, domain.RoleBusiness)

	api := s.Router.Group(basePath)

	auth := api.Group("/auth", s.rateLimit("auth"))
	{
		auth.POST("/register", h.auth.HandleRegister)
		auth.POST("/login", h.auth.HandleLogin)
		auth.POST("/forgot-password", h.auth.HandleForgotPassword)
		auth.POST("/reset-password", h.auth.HandleResetPassword)
	}

	users := api.Group("/users")
	{
		users.GET("/me", verify, h.user.HandleGetMe)
		users.PUT("/me", verify, h.user.HandleUpdateMe)
		users.POST("/me/change-password", verify, h.user.HandleChangePassword)
		users.GET("/:id", h.user.HandleGetUser)
	}

	vouchers := api.Group("/vouchers")
	{
		vouchers.GET("", h.voucher.HandleListVouchers)
		vouchers.GET("/:id", h.voucher.HandleGetVoucher)
		vouchers.POST("/exchange", verify, h.voucher.HandleExchangeVoucher)
		vouchers.GET("/history/me", verify, h.voucher.HandleRedemptionHistory)
	}

	business := api.Group("/business", verify, adminOrBusiness)
	{
		business.GET("/vouchers", h.voucher.HandleListBusinessVouchers)
		business.POST("/vouchers", h.voucher.HandleCreateVoucher)
		business.PUT("/vouchers/:id", h.voucher.HandleUpdateVoucher)
		business.DELETE("/vouchers/:id", h.voucher.HandleDeleteVoucher)
	}

	news := api.Group("/news")
	{
		news.GET("", h.news.HandleListNews)
		news.GET("/:id", h.news.HandleGetNews)
		news.POST("", verify, admin, h.news.HandleCreateNews)
		news.PUT("/:id", verify, admin, h.news.HandleUpdateNews)
		news.DELETE("/:id", verify, admin, h.news.HandleDeleteNews)
	}

	events := api.Group("/events")
	{
		events.GET("", h.event.HandleListEvents)
		events.GET("/my/registrations", verify, h.event.HandleListMyRegistrations)
		events.GET("/:id", h.event.HandleGetEvent)
		events.POST("", verify, admin, h.event.HandleCreateEvent)
		events.PUT("/:id", verify, admin, h.event.HandleUpdateEvent)
		events.DELETE("/:id", verify, admin, h.event.HandleDeleteEvent)
		events.POST("/:id/register", verify, h.event.HandleRegisterForEvent)
		events.POST("/:id/cancel", verify, h.event.HandleCancelEventRegistration)
		events.GET("/:id/check-registration", verify, h.event.HandleCheckRegistration)
		events.GET("/:id/registrations", verify, adminOrBusiness, h.event.HandleListEventRegistrations)
	}

	registrations := api.Group("/registrations", verify)
	{
		registrations.POST("", h.event.HandleCreateRegistration)
		registrations.POST("/cancel", h.event.HandleCancelRegistrationByBody)
		registrations.GET("/me", h.event.HandleListMyRegistrations)
		registrations.DELETE("/:id", h.event.HandleDeleteRegistration)
	}

	locations := api.Group("/locations")
	{
		locations.GET("", h.location.HandleListLocations)
		locations.GET("/:id", h.location.HandleGetLocation)
		locations.POST("/check-in", verify, h.location.HandleCheckIn)
		locations.POST("", verify, adminOrBusiness, h.location.HandleCreateLocation)
		locations.PUT("/:id", verify, adminOrBusiness, h.location.HandleUpdateLocation)
		locations.DELETE("/:id", verify, adminOrBusiness, h.location.HandleDeleteLocation)
	}

	collections := api.Group("/collections", verify)
	{
		collections.POST("", h.collection.HandleCreateCollection)
		collections.GET("", h.collection.HandleListCollections)
	}
	api.GET("/leaderboard", h.collection.HandleLeaderboard)

	feedback := api.Group("/feedback")
	{
		feedback.POST("", authn.OptionalJWT(), h.feedback.HandleSubmitFeedback)
		feedback.GET("/me", verify, h.feedback.HandleListMyFeedback)
		feedback.GET("", verify, admin, h.feedback.HandleListFeedback)
		feedback.GET("/:id", verify, admin, h.feedback.HandleGetFeedback)
		feedback.PUT("/:id", verify, admin, h.feedback.HandleUpdateFeedback)
		feedback.DELETE("/:id", verify, admin, h.feedback.HandleDeleteFeedback)
	}

	subscribe := api.Group("/subscribe")
	{
		subscribe.POST("", s.rateLimit("subscribe"), h.subscription.HandleSubscribe)
		subscribe.GET("/confirm", h.subscription.HandleConfirmSubscription)
		subscribe.GET("/confirm/:token", h.subscription.HandleConfirmSubscription)
		subscribe.GET("", verify, admin, h.subscription.HandleListSubscribers)
		subscribe.DELETE("/:id", verify, admin, h.subscription.HandleDeleteSubscriber)
	}

	chat := api.Group("/chat", s.rateLimit("chat"))
	{
		chat.POST("", h.chat.HandleChat)
		chat.GET("/ws", h.chat.HandleChatWebSocket)
	}

	api.POST("/uploads", verify, h.upload.HandleUpload)
	api.POST("/scan/pin", s.rateLimit("scan"), h.scan.HandleScanPin)
	s.Router.Static("/uploads", s.Config.Uploads.Dir)

	adminGroup := api.Group("/admin", verify, admin)
	{
		adminGroup.GET("/stats", h.admin.HandleStats)

		adminGroup.GET("/users", h.user.HandleListUsers)
		adminGroup.POST("/users", h.user.HandleCreateUser)
		adminGroup.PUT("/users/:id", h.user.HandleUpdateUser)
		adminGroup.DELETE("/users/:id", h.user.HandleDeleteUser)

		adminGroup.GET("/businesses", h.admin.HandleListBusinesses)
		adminGroup.POST("/businesses", h.admin.HandleCreateBusiness)
		adminGroup.PUT("/businesses/:id", h.admin.HandleUpdateBusiness)
		adminGroup.DELETE("/businesses/:id", h.admin.HandleDeleteBusiness)
		adminGroup.POST("/businesses/:id/approve", h.admin.HandleApproveBusiness)

		adminGroup.GET("/vouchers", h.voucher.HandleListAllVouchers)
		adminGroup.POST("/vouchers", h.voucher.HandleCreateVoucher)
		adminGroup.PUT("/vouchers/:id", h.voucher.HandleUpdateVoucher)
		adminGroup.DELETE("/vouchers/:id", h.voucher.HandleDeleteVoucher)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "PinSwap API"
	docs.SwaggerInfo.Description = "Points, vouchers and collection points for the PinSwap recycling platform."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
