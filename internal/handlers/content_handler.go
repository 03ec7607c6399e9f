package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meddeck-app/backend/internal/fanout"
	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
)

// ContentHandler handles HTTP requests for posts, cases and their sub-resources.
// Every successful write feeds the fan-out dispatcher with the corresponding
// event, mirroring the platform's document triggers.
type ContentHandler struct {
	contentRepository  repositories.ContentRepository
	commentRepository  repositories.CommentRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	revisionRepository repositories.RevisionRepository
	dispatcher         *fanout.Dispatcher
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	contentRepo repositories.ContentRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	revisionRepo repositories.RevisionRepository,
	dispatcher *fanout.Dispatcher,
) *ContentHandler {
	return &ContentHandler{
		contentRepository:  contentRepo,
		commentRepository:  commentRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		revisionRepository: revisionRepo,
		dispatcher:         dispatcher,
	}
}

// RegisterContentRoutes registers content-related routes
func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.POST("/content", h.CreateContent)
	g.GET("/content/:id", h.GetContent)
	g.GET("/content/:id/comments", h.GetComments)
	g.POST("/content/:id/comments", h.CreateComment)
	g.POST("/content/:id/likes", h.LikeContent)
	g.DELETE("/content/:id/likes", h.UnlikeContent)
	g.POST("/cases/:id/revisions", h.CreateRevision)
	g.POST("/cases/:id/bookmark", h.BookmarkCase)
	g.DELETE("/cases/:id/bookmark", h.UnbookmarkCase)
}

// CreateContent publishes a new post or case
func (h *ContentHandler) CreateContent(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.ContentItem{
		OwnerID:   firebaseUID,
		Kind:      models.ContentKind(req.Kind),
		Privacy:   models.Privacy(req.Privacy),
		Title:     req.Title,
		Body:      req.Body,
		ImageURLs: req.ImageURLs,
	}
	if err := h.contentRepository.CreateContent(c.Request().Context(), item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, item)
}

// GetContent retrieves a content item by id
func (h *ContentHandler) GetContent(c echo.Context) error {
	item, err := h.contentRepository.GetContentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}
	return c.JSON(http.StatusOK, item)
}

// GetComments retrieves all comments of a content item
func (h *ContentHandler) GetComments(c echo.Context) error {
	comments, err := h.commentRepository.GetCommentsByContentID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": comments}})
}

// CreateComment adds a comment or reply to a content item and dispatches the
// comment-created event.
func (h *ContentHandler) CreateComment(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	contentID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify content exists
	if _, err := h.contentRepository.GetContentByID(c.Request().Context(), contentID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	// A reply's path is the locator of its parent comment
	if len(req.ParentPath) > 0 {
		if _, err := h.commentRepository.GetCommentByPath(c.Request().Context(), contentID, req.ParentPath); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
	}

	comment := &models.CommentEntry{
		ContentID: contentID,
		AuthorID:  firebaseUID,
		Body:      req.Body,
		Path:      req.ParentPath,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.contentRepository.IncrementCommentsCount(c.Request().Context(), contentID)

	ev := fanout.Event{
		Kind:      fanout.EventCommentCreated,
		ContentID: contentID,
		CommentID: comment.ID.Hex(),
		ActorID:   firebaseUID,
		Timestamp: comment.CreatedAt,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// LikeContent likes a content item, or a comment when a path is provided, and
// dispatches the like-created event.
func (h *ContentHandler) LikeContent(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	contentID := c.Param("id")

	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	// Verify content exists
	if _, err := h.contentRepository.GetContentByID(c.Request().Context(), contentID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	commentID := ""
	if len(req.Path) > 0 {
		comment, err := h.commentRepository.GetCommentByPath(c.Request().Context(), contentID, req.Path)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		commentID = comment.ID.Hex()
	}

	hasLiked, err := h.likeRepository.HasLiked(contentID, commentID, firebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Already liked")
	}

	like := &models.LikeEntry{
		ContentID: contentID,
		CommentID: commentID,
		ActorID:   firebaseUID,
		CreatedAt: time.Now(),
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if commentID == "" {
		go h.contentRepository.IncrementLikesCount(c.Request().Context(), contentID)
	}

	ev := fanout.Event{
		Kind:      fanout.EventLikeCreated,
		ContentID: contentID,
		Path:      req.Path,
		ActorID:   firebaseUID,
		Timestamp: like.CreatedAt,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeContent removes a like from a content item or comment
func (h *ContentHandler) UnlikeContent(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	contentID := c.Param("id")

	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	commentID := ""
	if len(req.Path) > 0 {
		commentID = req.Path[len(req.Path)-1]
	}

	if err := h.likeRepository.DeleteLike(contentID, commentID, firebaseUID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if commentID == "" {
		go h.contentRepository.DecrementLikesCount(c.Request().Context(), contentID)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateRevision appends a revision to an owned case and dispatches the
// case-revision event that fans out to bookmarkers.
func (h *ContentHandler) CreateRevision(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	caseID := c.Param("id")

	var req models.CreateRevisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.contentRepository.GetContentByID(c.Request().Context(), caseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}
	if item.Kind != models.ContentKindCase {
		return echo.NewHTTPError(http.StatusBadRequest, "Revisions can only be added to cases")
	}
	if item.OwnerID != firebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the case owner can add revisions")
	}

	revision := &models.CaseRevision{
		CaseID: caseID,
		Kind:   models.RevisionKind(req.Kind),
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := h.revisionRepository.CreateRevision(c.Request().Context(), revision); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ev := fanout.Event{
		Kind:         fanout.EventRevisionCreated,
		ContentID:    caseID,
		RevisionID:   revision.ID.Hex(),
		RevisionKind: revision.Kind,
		Timestamp:    revision.CreatedAt,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, revision)
}

// BookmarkCase saves a case to the user's bookmarks
func (h *ContentHandler) BookmarkCase(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	caseID := c.Param("id")

	if _, err := h.contentRepository.GetContentByID(c.Request().Context(), caseID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	bookmarked, err := h.bookmarkRepository.IsBookmarked(firebaseUID, caseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if bookmarked {
		return echo.NewHTTPError(http.StatusConflict, "Case already bookmarked")
	}

	bookmark := &models.Bookmark{UserID: firebaseUID, CaseID: caseID}
	if err := h.bookmarkRepository.SaveBookmark(bookmark); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, bookmark)
}

// UnbookmarkCase removes a case from the user's bookmarks
func (h *ContentHandler) UnbookmarkCase(c echo.Context) error {
	firebaseUID := getUIDFromContext(c)
	if firebaseUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.bookmarkRepository.RemoveBookmark(firebaseUID, c.Param("id")); err != nil {
		if err.Error() == "bookmark not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
