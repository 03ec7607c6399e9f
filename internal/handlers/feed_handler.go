package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
)

// FeedHandler serves a follower's cached feed index, the read side of the
// follow fan-out.
type FeedHandler struct {
	feedIndexRepository repositories.FeedIndexRepository
	contentRepository   repositories.ContentRepository
	userRepository      repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedIndexRepository, contentRepo repositories.ContentRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		feedIndexRepository: feedRepo,
		contentRepository:   contentRepo,
		userRepository:      userRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// FeedItem pairs a cached index entry with its hydrated content
type FeedItem struct {
	models.FeedIndexEntry
	Content *models.ContentItem `json:"content,omitempty"`
	Author  models.UserCompact  `json:"author"`
}

// GetFeed returns the current user's cached feed, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	entries, err := h.feedIndexRepository.GetByFollowerID(c.Request().Context(), firebaseUID, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]FeedItem, 0, len(entries))
	userCache := make(map[string]models.UserCompact)
	for _, entry := range entries {
		item := FeedItem{FeedIndexEntry: entry}

		// Stale index entries for deleted content are skipped, not errors
		content, err := h.contentRepository.GetContentByID(c.Request().Context(), entry.ContentID)
		if err != nil {
			continue
		}
		item.Content = content

		if author, ok := userCache[entry.OwnerID]; ok {
			item.Author = author
		} else if user, err := h.userRepository.GetUserByUID(entry.OwnerID); err == nil {
			compact := user.ToCompact()
			userCache[entry.OwnerID] = compact
			item.Author = compact
		}

		items = append(items, item)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"feed": items},
	})
}
