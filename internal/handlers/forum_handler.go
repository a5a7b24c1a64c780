package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tbexpert/internal/repositories"
	"tbexpert/internal/services"
)

type ForumHandler struct {
	forum *services.ForumService
	users repositories.UserRepository
}

func NewForumHandler(forum *services.ForumService, users repositories.UserRepository) *ForumHandler {
	return &ForumHandler{forum: forum, users: users}
}

// @Summary      Страница форума
// @Description  Эксперты, контент выбранного эксперта и общий чат
// @Tags         Forum
// @Produce      json
// @Param        author_id  query  int  false  "ID эксперта; по умолчанию первый"
// @Success      200  {object}  services.ForumPage
// @Router       /forum [get]
func (h *ForumHandler) Page(c *gin.Context) {
	authorID, _ := strconv.ParseInt(c.Query("author_id"), 10, 64)
	page, err := h.forum.Page(authorID)
	if err != nil {
		log.Printf("[forum][page] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить форум"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Сообщение в чат
// @Tags         Forum
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Message
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /forum/messages [post]
func (h *ForumHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.forum.PostMessage(c.GetInt("user_id"), req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// @Summary      Вопрос эксперту
// @Tags         Forum
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Question
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /forum/questions [post]
func (h *ForumHandler) AskQuestion(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("user_id")
	userName := ""
	if user, err := h.users.GetByID(userID); err == nil && user != nil {
		userName = user.FullName
	}

	q, err := h.forum.AskQuestion(userID, userName, req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ваш вопрос был успешно добавлен.", "question": q})
}

// @Summary      Удаление своего вопроса
// @Tags         Forum
// @Produce      json
// @Param        id  path  int  true  "ID вопроса"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /forum/questions/{id} [delete]
func (h *ForumHandler) DeleteQuestion(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.forum.DeleteQuestion(id, c.GetInt("user_id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Вопрос не найден"})
			return
		}
		log.Printf("[forum][delete_question] id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить вопрос"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Вопрос удалён."})
}
