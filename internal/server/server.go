package server

import (
	"github.com/cuongnguyenngoc/web3mail/internal/handler"
	authmw "github.com/cuongnguyenngoc/web3mail/internal/middleware"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	emailHandler    *handler.EmailHandler
	paymentHandler  *handler.PaymentHandler
	userHandler     *handler.UserHandler
	platformHandler *handler.PlatformHandler
	authService     service.WalletAuthService
}

func NewServer(
	authService service.WalletAuthService,
	emailService service.EmailService,
	paymentService service.PaymentService,
	ledger service.CreditLedger,
	assistantService service.AssistantService,
	chainService service.ChainService,
) *Server {
	e := echo.New()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authHandler:     handler.NewAuthHandler(authService),
		emailHandler:    handler.NewEmailHandler(emailService),
		paymentHandler:  handler.NewPaymentHandler(paymentService),
		userHandler:     handler.NewUserHandler(ledger),
		platformHandler: handler.NewPlatformHandler(assistantService, chainService),
		authService:     authService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/subscription/tiers", s.userHandler.GetSubscriptionTiers)
	api.GET("/credits/packages", s.userHandler.GetCreditPackages)
	api.GET("/chains", s.platformHandler.ListChains)
	api.GET("/chains/:chain/balance/:address", s.platformHandler.GetChainBalance)

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/challenge", s.authHandler.CreateChallenge)
	auth.POST("/verify", s.authHandler.VerifySignature)

	// -------- authenticated --------
	authed := api.Group("", authmw.JWTAuth(s.authService))
	authed.GET("/user/profile", s.userHandler.GetProfile)
	authed.POST("/ai/draft", s.platformHandler.GenerateDraft)

	emails := authed.Group("/emails")
	emails.POST("/send", s.emailHandler.Send)
	emails.POST("/verify", s.emailHandler.Verify)
	emails.GET("/user", s.emailHandler.List)
	emails.GET("/:emailID/content", s.emailHandler.GetContent)

	payments := authed.Group("/payments")
	payments.POST("/subscription", s.paymentHandler.CreateSubscription)
	payments.POST("/credits", s.paymentHandler.CreateCredits)
	payments.GET("/status/:sessionID", s.paymentHandler.PollStatus)

	// -------- provider webhooks / callbacks --------
	api.POST("/payments/webhook", s.paymentHandler.Webhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
