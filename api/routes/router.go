// api/routes/router.go
package routes

import (
	"cinetix/internal/movies"
	"cinetix/internal/notifications"
	"cinetix/internal/shared/config"
	"cinetix/internal/shared/database"
	"cinetix/internal/showtimes"
	"cinetix/internal/theaters"
	"cinetix/internal/tickets"
	"cinetix/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	logger   *logger.Logger
	producer notifications.Producer

	// Services stored for cross-feature injection
	movieService   movies.Service
	theaterService theaters.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		logger:   log,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Movie and theater routes first so their services exist
		// when showtimes wires against them
		r.setupMovieRoutes(api)
		r.setupTheaterRoutes(api)

		// Showtime routes (depends on movie + theater services)
		r.setupShowtimeRoutes(api)

		// Ticket routes
		r.setupTicketRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinetix-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinetix-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupMovieRoutes configures movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	// Initialize movie dependencies
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo)
	movieController := movies.NewController(movieService)

	// Store movie service for dependency injection
	r.movieService = movieService

	// Setup movie routes
	movies.SetupMovieRoutes(rg, movieController)
}

// setupTheaterRoutes configures theater management routes
func (r *Router) setupTheaterRoutes(rg *gin.RouterGroup) {
	// Initialize theater dependencies
	theaterRepo := theaters.NewRepository(r.db.GetPostgreSQL())
	theaterService := theaters.NewService(theaterRepo)
	theaterController := theaters.NewController(theaterService)

	// Store theater service for dependency injection
	r.theaterService = theaterService

	// Setup theater routes
	theaters.SetupTheaterRoutes(rg, theaterController)
}

// setupShowtimeRoutes configures showtime scheduling routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	// Initialize showtime dependencies
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo, r.logger)

	// Inject movie and theater service dependencies
	if r.movieService != nil {
		showtimeService.SetMovieCatalog(r.movieService)
	}
	if r.theaterService != nil {
		showtimeService.SetTheaterDirectory(r.theaterService)
	}
	if r.producer != nil {
		showtimeService.SetEventProducer(r.producer)
	}

	// Theater capacity edits consult the showtime schedule before
	// shrinking below tickets already sold
	if r.theaterService != nil {
		r.theaterService.SetCapacityGuard(showtimeService)
	}

	showtimeController := showtimes.NewController(showtimeService)

	// Setup showtime routes
	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupTicketRoutes configures ticket sales routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	// Initialize ticket dependencies
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL(), r.config.Database.LockWaitTimeout)
	ticketService := tickets.NewService(ticketRepo, r.logger)

	if r.producer != nil {
		ticketService.SetEventProducer(r.producer)
	}

	ticketController := tickets.NewController(ticketService)

	// Setup ticket routes
	tickets.SetupTicketRoutes(rg, ticketController)
}
