package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fellowship-server/internal/service"
	"fellowship-server/internal/session"
)

const sessionCookieName = "fellowship_session"

const (
	ctxUserIDKey    = "userID"
	ctxSessionIDKey = "sessionID"
)

// sessionClaims is the signed payload inside the session cookie. The session
// store stays authoritative: expiry and revocation are checked there, the
// token only proves the cookie was issued by us.
type sessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

func (h *Handler) issueSessionCookie(c *gin.Context, userID int64) error {
	sess := h.sessions.Create(userID)

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sess.ID,
			Subject:  strconv.FormatInt(userID, 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(time.Until(sess.ExpiresAt).Seconds()), "/", "", false, true)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

// resolveSession verifies the cookie token and resolves the live session.
func (h *Handler) resolveSession(c *gin.Context) (session.Session, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie == "" {
		return session.Session{}, false
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie, claims, func(*jwt.Token) (any, error) {
		return h.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return session.Session{}, false
	}

	sess, ok := h.sessions.Get(claims.ID)
	if !ok || sess.UserID != claims.UserID {
		return session.Session{}, false
	}
	return sess, true
}

// requireAuth is the gate in front of mutating and private endpoints.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.resolveSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Set(ctxUserIDKey, sess.UserID)
		c.Set(ctxSessionIDKey, sess.ID)
		c.Next()
	}
}

func (h *Handler) currentUserID(c *gin.Context) int64 {
	id, _ := c.MustGet(ctxUserIDKey).(int64)
	return id
}

type registerRequest struct {
	Username       string  `json:"username" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	DisplayName    string  `json:"displayName" binding:"required"`
	ProfilePicture *string `json:"profilePicture"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if err := h.issueSessionCookie(c, user.ID); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if err := h.issueSessionCookie(c, user.ID); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) logout(c *gin.Context) {
	if sessionID, ok := c.Get(ctxSessionIDKey); ok {
		if id, ok := sessionID.(string); ok {
			h.sessions.Destroy(id)
		}
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}
