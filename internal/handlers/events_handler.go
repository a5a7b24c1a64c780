package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tbexpert/internal/services"
)

type EventsHandler struct {
	calendar *services.CalendarService
}

func NewEventsHandler(calendar *services.CalendarService) *EventsHandler {
	return &EventsHandler{calendar: calendar}
}

// @Summary      Мероприятия
// @Tags         Events
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (h *EventsHandler) List(c *gin.Context) {
	events, err := h.calendar.Events()
	if err != nil {
		log.Printf("[events][list] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить мероприятия"})
		return
	}
	categories, err := h.calendar.EventCategories()
	if err != nil {
		log.Printf("[events][list] categories err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить мероприятия"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "categories": categories})
}

// @Summary      Карточка мероприятия
// @Tags         Events
// @Produce      json
// @Param        id  path  int  true  "ID мероприятия"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *EventsHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	event, err := h.calendar.EventByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Мероприятие не найдено"})
			return
		}
		log.Printf("[events][detail] id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить мероприятие"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event, "is_past": event.IsPast(time.Now())})
}

// @Summary      Календарь мероприятий
// @Description  Сетка месяца с мероприятиями по дням
// @Tags         Events
// @Produce      json
// @Param        calendar_year   query  int     false  "Год"
// @Param        calendar_month  query  int     false  "Месяц 1..12"
// @Param        event_date      query  string  false  "Выбранный день YYYY-MM-DD"
// @Success      200  {object}  services.CalendarMonth
// @Router       /events/calendar [get]
func (h *EventsHandler) Calendar(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("calendar_year"))
	month, _ := strconv.Atoi(c.Query("calendar_month"))
	grid, err := h.calendar.Month(year, month, c.Query("event_date"), time.Now())
	if err != nil {
		log.Printf("[events][calendar] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить календарь"})
		return
	}
	c.JSON(http.StatusOK, grid)
}
