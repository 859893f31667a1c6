package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/auth"
	"github.com/postalclerk/clerk-server/internal/metrics"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/service"
	"github.com/postalclerk/clerk-server/internal/utils"
	"go.uber.org/zap"
)

// HandlerOptions holds the optional parts of the HTTP surface
type HandlerOptions struct {
	// UploadsDir is served under /images when non-empty
	UploadsDir string
	// AuthLimiter throttles register and login when non-nil
	AuthLimiter *RateLimiter
}

// Handler handles HTTP requests
type Handler struct {
	service service.Service
	tokens  *auth.TokenManager
	logger  *utils.Logger
	opts    HandlerOptions
}

// NewHandler creates a new Handler
func NewHandler(svc service.Service, tokens *auth.TokenManager, logger *utils.Logger, opts HandlerOptions) *Handler {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Handler{
		service: svc,
		tokens:  tokens,
		logger:  logger,
		opts:    opts,
	}
}

// SetupRoutes sets up the API routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	requireAuth := AuthMiddleware(h.tokens)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API WORKING")
	})
	router.GET("/test-db", h.TestDB)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	if h.opts.UploadsDir != "" {
		router.Static("/images", h.opts.UploadsDir)
	}

	api := router.Group("/api")

	user := api.Group("/user")
	{
		if h.opts.AuthLimiter != nil {
			user.POST("/register", h.opts.AuthLimiter.Middleware(), h.Register)
			user.POST("/login", h.opts.AuthLimiter.Middleware(), h.Login)
		} else {
			user.POST("/register", h.Register)
			user.POST("/login", h.Login)
		}
		user.GET("/get_users", h.ListClerks)
		user.POST("/delete", requireAuth, h.DeleteClerk)
	}

	mail := api.Group("/mailManagement")
	{
		mail.POST("/create", requireAuth, h.CreateMail)
		mail.GET("/get_mails", h.ListMails)
		mail.GET("/details/:id", requireAuth, h.GetMail)
		mail.PUT("/update_status/:id", requireAuth, h.UpdateMailStatus)
		mail.DELETE("/delete/:id", requireAuth, h.DeleteMail)
	}

	inventory := api.Group("/inventory", requireAuth)
	{
		inventory.GET("", h.ListInventoryItems)
		inventory.POST("", h.AddInventoryItem)
		inventory.GET("/low-stock", h.ListLowStockItems)
		inventory.PUT("/:id", h.UpdateInventoryItem)
		inventory.DELETE("/:id", h.DeleteInventoryItem)
		inventory.GET("/:id/transactions", h.ListInventoryTransactions)
	}

	bills := api.Group("/billPayment", requireAuth)
	{
		bills.GET("", h.ListBills)
		bills.POST("", h.CreateBill)
		bills.PUT("/:id", h.UpdateBill)
		bills.DELETE("/:id", h.DeleteBill)
	}
}

// TestDB reports whether the datastore answers a trivial query
func (h *Handler) TestDB(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Success: true,
		Message: "Database connected!",
		Result:  2,
	})
}

// respondError converts a service error into a status code and envelope.
// Storage details are logged and replaced by the generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		conflictErr   *service.ConflictError
		storageErr    *service.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		fail(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.As(err, &notFoundErr):
		fail(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		h.logger.Warn("conflicting write", zap.String("request_id", requestID(c)), zap.Error(err))
		fail(c, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &storageErr):
		h.logger.Error(storageErr.Message,
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(storageErr.Err),
		)
		fail(c, http.StatusInternalServerError, storageErr.Message)
	default:
		h.logger.Error("unhandled error", zap.String("request_id", requestID(c)), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.Response{Success: false, Message: message})
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message})
}

// parseID reads the :id path parameter. It writes a 400 and returns false
// for anything that is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
