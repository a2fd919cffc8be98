package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"watchlist/internal/domain"
	"watchlist/internal/repository"
	"watchlist/internal/service"
)

const identityKey = "identity"

// Handler wires HTTP routes to domain services.
type Handler struct {
	movies    service.MovieService
	users     service.UserService
	guestbook service.GuestbookService
	sessions  *SessionManager
	logger    *logrus.Logger
}

func NewHandler(movies service.MovieService, users service.UserService, guestbook service.GuestbookService, sessions *SessionManager, logger *logrus.Logger) *Handler {
	return &Handler{
		movies:    movies,
		users:     users,
		guestbook: guestbook,
		sessions:  sessions,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(loadTemplates())
	router.Use(h.recovery(), h.resolveIdentity())

	router.GET("/", h.index)
	router.POST("/", h.createMovie)
	router.GET("/movie/edit/:id", h.requireLogin(), h.editMoviePage)
	router.POST("/movie/edit/:id", h.requireLogin(), h.updateMovie)
	router.POST("/movie/delete/:id", h.requireLogin(), h.deleteMovie)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.GET("/logout", h.requireLogin(), h.logout)
	router.GET("/settings", h.requireLogin(), h.settingsPage)
	router.POST("/settings", h.requireLogin(), h.updateSettings)
	router.GET("/guestbook", h.guestbookPage)
	router.POST("/guestbook", h.postMessage)

	router.NoRoute(h.notFound)
}

// resolveIdentity loads the user bound to the session token, if any,
// into the request context. Handlers read it through currentUser.
func (h *Handler) resolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := h.sessions.Identify(c); ok {
			if user, err := h.users.GetByID(c.Request.Context(), id); err == nil {
				c.Set(identityKey, user)
			}
		}
		c.Next()
	}
}

// requireLogin guards owner-only routes.
func (h *Handler) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			setFlash(c, flashLoginRequired)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Errorf("panic recovered: %v", r)
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
				c.Abort()
			}
		}()
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func (h *Handler) index(c *gin.Context) {
	movies, err := h.movies.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Movies": movies})
}

func (h *Handler) createMovie(c *gin.Context) {
	// Anonymous submissions bounce back to the list without a notice.
	if currentUser(c) == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	title := c.PostForm("title")
	year := c.PostForm("year")

	if _, err := h.movies.Create(c.Request.Context(), title, year); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			setFlash(c, flashBadFormat)
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, flashMovieCreated)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) editMoviePage(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		h.notFound(c)
		return
	}

	movie, err := h.movies.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit.html", gin.H{"Movie": movie})
}

func (h *Handler) updateMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		h.notFound(c)
		return
	}

	// Unknown ids are a 404 even when the submitted fields are bad too.
	if _, err := h.movies.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	title := c.PostForm("title")
	year := c.PostForm("year")

	if _, err := h.movies.Update(c.Request.Context(), id, title, year); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			setFlash(c, flashBadFormat)
			c.Redirect(http.StatusFound, "/movie/edit/"+strconv.FormatInt(id, 10))
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, flashMovieUpdated)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) deleteMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.movies.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, flashMovieDeleted)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Login(c.Request.Context(), username, password)
	switch {
	case errors.Is(err, service.ErrCredentialsRequired):
		setFlash(c, flashEmptyCredentials)
		c.Redirect(http.StatusFound, "/login")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		setFlash(c, flashBadCredentials)
		c.Redirect(http.StatusFound, "/login")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}

	setFlash(c, flashLoginOK)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Clear(c)
	setFlash(c, flashLogout)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) settingsPage(c *gin.Context) {
	h.render(c, http.StatusOK, "settings.html", nil)
}

func (h *Handler) updateSettings(c *gin.Context) {
	name := c.PostForm("name")

	if err := h.users.UpdateName(c.Request.Context(), currentUser(c).ID, name); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			setFlash(c, flashBadName)
			c.Redirect(http.StatusFound, "/settings")
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, flashNameUpdated)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) guestbookPage(c *gin.Context) {
	messages, err := h.guestbook.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "guestbook.html", gin.H{"Messages": messages})
}

func (h *Handler) postMessage(c *gin.Context) {
	name := c.PostForm("name")
	body := c.PostForm("body")

	if _, err := h.guestbook.Post(c.Request.Context(), name, body); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			setFlash(c, flashBadFormat)
			c.Redirect(http.StatusFound, "/guestbook")
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, flashMessageSent)
	c.Redirect(http.StatusFound, "/guestbook")
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", nil)
	c.Abort()
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	h.render(c, http.StatusInternalServerError, "500.html", nil)
	c.Abort()
}

// render fills in the data every page expects: the owner row for the
// site title, the logged-in flag and any pending flash notices.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	owner, err := h.users.Owner(c.Request.Context())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger.Warnf("load owner: %v", err)
	}
	data["Owner"] = owner
	data["LoggedIn"] = currentUser(c) != nil
	data["Flashes"] = takeFlash(c)

	c.HTML(status, name, data)
}

// movieID parses the :id path parameter. Non-numeric ids behave like
// missing entries.
func movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
