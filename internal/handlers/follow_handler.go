package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meddeck-app/backend/internal/fanout"
	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	dispatcher       *fanout.Dispatcher
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, dispatcher *fanout.Dispatcher) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		dispatcher:       dispatcher,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:uid/follow", h.FollowUser)
	g.DELETE("/users/:uid/follow", h.UnfollowUser)
}

// FollowUser creates a follow edge and dispatches the follow-created event,
// which seeds the follower's feed and notifies the followed user.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetUID := c.Param("uid")
	if firebaseUID == targetUID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByUID(targetUID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	// Check if already following
	isFollowing, err := h.followRepository.IsFollowing(firebaseUID, targetUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.FollowRelation{
		FollowerID: firebaseUID,
		FollowedID: targetUID,
		CreatedAt:  time.Now(),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ev := fanout.Event{
		Kind:       fanout.EventFollowCreated,
		FollowerID: firebaseUID,
		FollowedID: targetUID,
		Timestamp:  follow.CreatedAt,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser removes a follow edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.followRepository.DeleteFollow(firebaseUID, c.Param("uid")); err != nil {
		if err.Error() == "follow relationship not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
