// Package httpapi exposes the user records over HTTP.
package httpapi

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-user-records/users"
	"github.com/sirupsen/logrus"
)

// Records is the coordinator surface the handlers need.
type Records interface {
	Check(ctx context.Context) (cacheUp, storeUp bool)
	GetUser(ctx context.Context, id int64) (*users.User, error)
	SetUser(ctx context.Context, user users.User) (*users.User, error)
	UpdateUser(ctx context.Context, id int64, partial users.PartialUser) (*users.User, error)
	ReplaceUser(ctx context.Context, id int64, user users.User) (*users.User, error)
	DelUser(ctx context.Context, id int64) (*users.User, error)
}

const (
	msgInvalidJSON   = "Invalid JSON"
	msgContentType   = "Content-Type must be application/json"
	msgNotFound      = "Not found"
	msgInternalError = "Internal Server Error"
)

// Handler serves the /users and /health routes.
type Handler struct {
	records Records
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewHandler returns a Handler over records.
func NewHandler(records Records, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{records: records, logger: logger, now: time.Now}
}

// NewEngine returns a gin engine with the request logger and all routes.
func NewEngine(records Records, logger logrus.FieldLogger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(logger))
	NewHandler(records, logger).Register(engine)
	return engine
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.health)

	g := r.Group("/users")
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.PUT("/:id", h.replace)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) health(c *gin.Context) {
	cacheUp, storeUp := h.records.Check(c.Request.Context())

	body := gin.H{"timestamp": h.now().UTC().Format(time.RFC3339Nano)}
	var problems []string
	if !cacheUp {
		problems = append(problems, "cache is down")
	}
	if !storeUp {
		problems = append(problems, "database is down")
	}

	if len(problems) > 0 {
		body["error"] = problems
		c.JSON(http.StatusInternalServerError, body)
		return
	}
	body["status"] = "ok"
	c.JSON(http.StatusOK, body)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	u, err := h.records.GetUser(c.Request.Context(), id)
	h.respond(c, "get", http.StatusOK, u, err)
}

func (h *Handler) create(c *gin.Context) {
	payload, ok := h.payload(c)
	if !ok {
		return
	}

	record, err := users.DecodeUser(payload)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	u, err := h.records.SetUser(c.Request.Context(), record)
	h.respond(c, "create", http.StatusCreated, u, err)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	payload, ok := h.payload(c)
	if !ok {
		return
	}

	partial, err := users.DecodePartial(payload)
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	u, err := h.records.UpdateUser(c.Request.Context(), id, partial)
	h.respond(c, "update", http.StatusOK, u, err)
}

func (h *Handler) replace(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	payload, ok := h.payload(c)
	if !ok {
		return
	}

	record, err := users.DecodeUser(payload)
	if err != nil {
		h.fail(c, "replace", err)
		return
	}

	u, err := h.records.ReplaceUser(c.Request.Context(), id, record)
	h.respond(c, "replace", http.StatusOK, u, err)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	u, err := h.records.DelUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// id parses the :id parameter. Ids that are not integers cannot exist.
func (h *Handler) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return 0, false
	}
	return id, true
}

// payload checks the content type and parses the body as a JSON object.
func (h *Handler) payload(c *gin.Context) (map[string]any, bool) {
	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil || mediaType != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgContentType})
		return nil, false
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return nil, false
	}
	return payload, true
}

func (h *Handler) respond(c *gin.Context, op string, status int, u *users.User, err error) {
	if err != nil {
		h.fail(c, op, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	c.JSON(status, u)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case users.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrNoFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
	case errors.Is(err, users.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
	case errors.Is(err, users.ErrDuplicateMobile):
		c.JSON(http.StatusConflict, gin.H{"error": "Mobile already exists"})
	default:
		requestLogger(c, h.logger).WithError(err).WithField("operation", op).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}
