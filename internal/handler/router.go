package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftlink/internal/domain/user"
	"shiftlink/internal/handler/api"
	"shiftlink/internal/handler/middleware"
	"shiftlink/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	shiftHandler *api.ShiftHandler,
	offerHandler *api.OfferHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, shiftHandler, offerHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	shiftHandler *api.ShiftHandler,
	offerHandler *api.OfferHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		venueOnly := authMiddleware.RequireRole(user.RoleVenue)
		professionalOnly := authMiddleware.RequireRole(user.RoleProfessional)

		shifts := apiGroup.Group("/shifts")
		shifts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(shifts, []route{
				{Method: http.MethodPost, Path: "", Handler: shiftHandler.CreateShift, Mw: []gin.HandlerFunc{venueOnly}},
				{Method: http.MethodGet, Path: "", Handler: shiftHandler.ListShifts, Mw: []gin.HandlerFunc{venueOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: shiftHandler.GetShift},
				{Method: http.MethodPost, Path: "/:id/invite", Handler: shiftHandler.InviteProfessional, Mw: []gin.HandlerFunc{venueOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: shiftHandler.CancelShift, Mw: []gin.HandlerFunc{venueOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: shiftHandler.CompleteShift, Mw: []gin.HandlerFunc{venueOnly}},
			})
		}

		offers := apiGroup.Group("/offers")
		offers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(offers, []route{
				{Method: http.MethodGet, Path: "", Handler: offerHandler.ListInbox, Mw: []gin.HandlerFunc{professionalOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: offerHandler.GetOffer},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: offerHandler.AcceptOffer, Mw: []gin.HandlerFunc{professionalOnly}},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: offerHandler.DeclineOffer, Mw: []gin.HandlerFunc{professionalOnly}},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
