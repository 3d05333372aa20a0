package router

import (
	"time"

	"dyslexibrowse/internal/bridge"
	"dyslexibrowse/internal/config"
	"dyslexibrowse/internal/engine"
	"dyslexibrowse/internal/handlers"
	"dyslexibrowse/internal/metrics"
	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/repository"
	"dyslexibrowse/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(429, gin.H{"error": "Too many requests. Try again later."})
}

// Setup wires the HTTP surface the shell talks to. The service binds to
// localhost only, so the middleware stack is lean: recovery, request
// logging, cookie sessions for reading-session binding, and response
// hardening headers.
func Setup(
	log *zap.Logger,
	battery *models.Battery,
	eng *engine.Engine,
	queue *bridge.Queue,
	tracker *metrics.Tracker,
	gateway *services.GatewayClient,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // loopback only
		MaxAge:   86400,
	})
	router.Use(sessions.Sessions("lexisession", store))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	assessmentHandler := handlers.NewAssessmentHandler(log, battery)
	adaptationHandler := handlers.NewAdaptationHandler(log, eng, queue, tracker)
	assistHandler := handlers.NewAssistHandler(log, gateway)
	sessionHandler := handlers.NewSessionHandler(log, tracker)
	resultsHandler := handlers.NewResultsHandler(log, repository.SessionLog{})

	// The gateway models are slow and the shell retries on timeout, so the
	// assist routes get a per-client rate limit.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 20,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.GET("/battery", assessmentHandler.ShowBattery)
		api.POST("/assessment", assessmentHandler.Submit)
		api.GET("/profile", assessmentHandler.ShowProfile)
		api.DELETE("/profile", assessmentHandler.ResetProfile)

		adapt := api.Group("/adapt")
		{
			adapt.POST("/enable", adaptationHandler.Enable)
			adapt.POST("/dynamic", adaptationHandler.ApplyDynamic)
			adapt.POST("/disable", adaptationHandler.Disable)
			adapt.GET("/status", adaptationHandler.Status)
			adapt.GET("/commands", adaptationHandler.DrainCommands)
		}

		assist := api.Group("/assist", limiter)
		{
			assist.POST("/summarize", assistHandler.Summarize)
			assist.POST("/caption", assistHandler.Caption)
			assist.POST("/tts", assistHandler.Speak)
		}

		session := api.Group("/session")
		{
			session.POST("/start", sessionHandler.Start)
			session.POST("/page", sessionHandler.PageVisit)
			session.POST("/comprehension", sessionHandler.Comprehension)
			session.POST("/adaptation", sessionHandler.Adaptation)
			session.POST("/end", sessionHandler.End)
		}

		api.GET("/improvement", sessionHandler.Improvement)
	}

	router.GET("/results", resultsHandler.ShowResults)

	return router
}
