package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ecell/portal-api/docs"
	v1 "github.com/ecell/portal-api/internal/api/handler/v1"
	"github.com/ecell/portal-api/internal/api/middleware"
	"github.com/ecell/portal-api/internal/config"
	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/pkg/jwthelper"
	"github.com/ecell/portal-api/internal/repository"
	"github.com/ecell/portal-api/internal/repository/dao"
	"github.com/ecell/portal-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	tokens *jwthelper.Issuer
}

// Services are built once per server and shared by the handlers and the
// scheduler.
type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Events        *service.EventService
	Registrations *service.RegistrationService
}

func NewServices(db *gorm.DB) *Services {
	userDAO := dao.NewUserDAO(db)
	eventDAO := dao.NewEventDAO(db)
	registrationDAO := dao.NewRegistrationDAO(db)

	userRepo := repository.NewUserRepository(userDAO, registrationDAO)
	eventRepo := repository.NewEventRepository(eventDAO)
	registrationRepo := repository.NewRegistrationRepository(registrationDAO)

	return &Services{
		Auth:          service.NewAuthService(userRepo),
		Users:         service.NewUserService(userRepo, eventRepo),
		Events:        service.NewEventService(eventRepo, userRepo),
		Registrations: service.NewRegistrationService(registrationRepo),
	}
}

func NewServer(conf *config.AppConfig, services *Services) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		tokens: jwthelper.NewIssuer(conf.API.JWTSigningKey, conf.API.JWTExpiry),
	}

	s.MountMiddlewares()

	authHandler := v1.NewAuthHandler(services.Auth, s.tokens)
	userHandler := v1.NewUserHandler(services.Users)
	eventHandler := v1.NewEventHandler(services.Events, services.Registrations)
	s.MountHandlers(authHandler, userHandler, eventHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Timeout(s.Config.API.RequestTimeout))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler) {
	const basePath = "/api/v1"

	authenticated := middleware.NewAuthenticator(s.tokens).VerifyJWT()
	adminOnly := middleware.Authorize(middleware.RequireRole(domain.RoleAdmin))

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	profile := s.Router.Group(basePath+"/users/profile", authenticated)
	{
		profile.GET("", userHandler.HandleGetProfile)
		profile.PUT("", userHandler.HandleUpdateProfile)
		profile.PUT("/password", authHandler.HandleChangePassword)
		profile.GET("/events", userHandler.HandleGetProfileEvents)
	}

	users := s.Router.Group(basePath+"/users", authenticated)
	{
		users.GET("/:userID", middleware.Authorize(middleware.SelfOrRole("userID", domain.RoleAdmin)), userHandler.HandleGetUser)
		users.PUT("/:userID/role", adminOnly, userHandler.HandleUpdateRole)
	}

	events := s.Router.Group(basePath + "/events")
	{
		events.GET("", eventHandler.HandleListEvents)
		events.GET("/:eventID", eventHandler.HandleGetEvent)
	}

	members := s.Router.Group(basePath+"/events", authenticated)
	{
		members.POST("/:eventID/register", eventHandler.HandleRegister)
		members.DELETE("/:eventID/register", eventHandler.HandleUnregister)
	}

	admins := s.Router.Group(basePath+"/events", authenticated, adminOnly)
	{
		admins.POST("", eventHandler.HandleCreateEvent)
		admins.PUT("/:eventID", eventHandler.HandleUpdateEvent)
		admins.DELETE("/:eventID", eventHandler.HandleDeleteEvent)
		admins.GET("/:eventID/registrations", eventHandler.HandleListRegistrations)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "E-Cell Portal API"
	docs.SwaggerInfo.Description = "Member accounts, events and event registrations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
