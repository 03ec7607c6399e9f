package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meddeck-app/backend/internal/fanout"
	"github.com/meddeck-app/backend/internal/models"
)

// EventHandler exposes the platform's content-mutation triggers as HTTP
// endpoints feeding the fan-out dispatcher, plus the client-initiated
// direct-invocation variant for comment likes.
type EventHandler struct {
	dispatcher *fanout.Dispatcher
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(dispatcher *fanout.Dispatcher) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// RegisterTriggerRoutes registers the internal trigger endpoints
func (h *EventHandler) RegisterTriggerRoutes(g *echo.Group) {
	g.POST("/comment-created", h.OnCommentCreated)
	g.POST("/like-created", h.OnLikeCreated)
	g.POST("/follow-created", h.OnFollowCreated)
	g.POST("/case-revision-created", h.OnCaseRevisionCreated)
}

// RegisterDirectRoutes registers the client-invoked event endpoints
func (h *EventHandler) RegisterDirectRoutes(g *echo.Group) {
	g.POST("/events/comment-like", h.DirectCommentLike)
}

// CommentCreatedTrigger is the payload delivered when a comment document appears
type CommentCreatedTrigger struct {
	Container   string    `json:"container" validate:"required,oneof=post case"`
	ContainerID string    `json:"container_id" validate:"required"`
	CommentID   string    `json:"comment_id" validate:"required"`
	UID         string    `json:"uid" validate:"required"`
	Timestamp   time.Time `json:"timestamp"`
}

// LikeCreatedTrigger is the payload delivered when a like document appears.
// Path is empty for a like on the content itself.
type LikeCreatedTrigger struct {
	Container   string    `json:"container" validate:"required,oneof=post case"`
	ContainerID string    `json:"container_id" validate:"required"`
	Path        []string  `json:"path,omitempty"`
	ActorID     string    `json:"actor_id" validate:"required"`
	Timestamp   time.Time `json:"timestamp"`
}

// FollowCreatedTrigger is the payload delivered when a follow edge appears
type FollowCreatedTrigger struct {
	FollowedID string    `json:"followed_id" validate:"required"`
	FollowerID string    `json:"follower_id" validate:"required"`
	Timestamp  time.Time `json:"timestamp"`
}

// CaseRevisionCreatedTrigger is the payload delivered when a case revision appears
type CaseRevisionCreatedTrigger struct {
	CaseID     string    `json:"case_id" validate:"required"`
	RevisionID string    `json:"revision_id" validate:"required"`
	Kind       string    `json:"kind" validate:"required,oneof=update diagnosis"`
	Timestamp  time.Time `json:"timestamp"`
}

// DirectLikeRequest is the client-initiated variant for comment and reply likes
type DirectLikeRequest struct {
	ContentID string    `json:"content_id" validate:"required"`
	Path      []string  `json:"path" validate:"required,min=1"`
	Timestamp time.Time `json:"timestamp"`
}

// OnCommentCreated ingests a comment-created trigger
func (h *EventHandler) OnCommentCreated(c echo.Context) error {
	var req CommentCreatedTrigger
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ev := fanout.Event{
		Kind:      fanout.EventCommentCreated,
		ContentID: req.ContainerID,
		CommentID: req.CommentID,
		ActorID:   req.UID,
		Timestamp: eventTime(req.Timestamp),
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

// OnLikeCreated ingests a like-created trigger
func (h *EventHandler) OnLikeCreated(c echo.Context) error {
	var req LikeCreatedTrigger
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ev := fanout.Event{
		Kind:      fanout.EventLikeCreated,
		ContentID: req.ContainerID,
		Path:      req.Path,
		ActorID:   req.ActorID,
		Timestamp: eventTime(req.Timestamp),
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

// OnFollowCreated ingests a follow-created trigger
func (h *EventHandler) OnFollowCreated(c echo.Context) error {
	var req FollowCreatedTrigger
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ev := fanout.Event{
		Kind:       fanout.EventFollowCreated,
		FollowedID: req.FollowedID,
		FollowerID: req.FollowerID,
		Timestamp:  eventTime(req.Timestamp),
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

// OnCaseRevisionCreated ingests a case-revision trigger
func (h *EventHandler) OnCaseRevisionCreated(c echo.Context) error {
	var req CaseRevisionCreatedTrigger
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ev := fanout.Event{
		Kind:         fanout.EventRevisionCreated,
		ContentID:    req.CaseID,
		RevisionID:   req.RevisionID,
		RevisionKind: models.RevisionKind(req.Kind),
		Timestamp:    eventTime(req.Timestamp),
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

// DirectCommentLike performs the comment/reply like contract for an
// authenticated client, identical to the reactive trigger path.
func (h *EventHandler) DirectCommentLike(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req DirectLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ev := fanout.Event{
		Kind:      fanout.EventLikeCreated,
		ContentID: req.ContentID,
		Path:      req.Path,
		ActorID:   firebaseUID,
		Timestamp: eventTime(req.Timestamp),
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

func eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func getUIDFromContext(c echo.Context) string {
	uid, _ := c.Get("firebaseUID").(string)
	return uid
}
