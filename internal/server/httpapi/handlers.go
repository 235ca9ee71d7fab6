package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avagulans/inkpost/internal/common"
	"github.com/avagulans/inkpost/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type blogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type blogResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

func toBlogResponse(b *models.Blog) blogResponse {
	return blogResponse{
		ID:             b.ID,
		Title:          b.Title,
		Content:        b.Content,
		AuthorID:       b.UserID,
		AuthorUsername: b.AuthorUsername,
		CreatedAt:      b.CreatedAt,
	}
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "inkpost"})
}

func (s *HTTPServer) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username or email already exists."})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			s.logger.Error(c.Request.Context(), "signup failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User created successfully."})
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password."})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if s.cookieAuth {
		s.setAuthCookie(c, token)
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *HTTPServer) handleLogout(c *gin.Context) {
	if s.cookieAuth {
		s.clearAuthCookie(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (s *HTTPServer) handleProtected(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome, %s! You have access to protected data.", user.Username),
	})
}

func (s *HTTPServer) handleMe(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (s *HTTPServer) handleCreateBlog(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	blog, err := s.blogs.Create(c.Request.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		s.logger.Error(c.Request.Context(), "blog create failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	blog.AuthorUsername = user.Username
	c.JSON(http.StatusOK, toBlogResponse(blog))
}

func (s *HTTPServer) handleListBlogs(c *gin.Context) {
	list, err := s.blogs.ListAll(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "blog list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	result := make([]blogResponse, 0, len(list))
	for _, b := range list {
		result = append(result, toBlogResponse(b))
	}
	c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleMyBlogs(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	list, err := s.blogs.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "blog list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	result := make([]blogResponse, 0, len(list))
	for _, b := range list {
		result = append(result, toBlogResponse(b))
	}
	c.JSON(http.StatusOK, result)
}
