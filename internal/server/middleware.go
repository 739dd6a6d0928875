package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"vehicle-auctions/internal/auth"
	"vehicle-auctions/services/helpers"
	"vehicle-auctions/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errForbiddenRole = errors.New("role not permitted")
	errRateLimited   = errors.New("too many bids")
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if userID := helpers.UserID(c); userID != "" {
		fields["user_id"] = userID
	}
	utils.Info("HTTP Request", fields)
}

// AuthMiddleware validates the bearer token and stores the caller's ID and
// role on the context. Websocket clients may pass the token as ?token=.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "authorization required")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, err, "invalid or expired token")
			return
		}

		c.Set(helpers.CtxUserID, claims.Subject)
		c.Set(helpers.CtxRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return c.Query("token")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole rejects callers whose role is not in roles. Admins pass every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles)+1)
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	allowed[auth.RoleAdmin] = struct{}{}

	return func(c *gin.Context) {
		role := c.GetString(helpers.CtxRole)
		if _, ok := allowed[role]; !ok {
			utils.Warn("RequireRole: forbidden", map[string]any{
				"user_id": helpers.UserID(c),
				"role":    role,
				"path":    c.Request.URL.Path,
			})
			utils.AbortWithError(c, http.StatusForbidden, errForbiddenRole, "not authorized")
			return
		}
		c.Next()
	}
}

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bidLimiter hands out one token bucket per buyer
type bidLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	lastGC   time.Time
}

func newBidLimiter(rps float64, burst int) *bidLimiter {
	return &bidLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastGC:   time.Now(),
	}
}

func (l *bidLimiter) allow(buyerID string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > limiterIdleTTL {
		for id, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.visitors, id)
			}
		}
		l.lastGC = now
	}

	v, ok := l.visitors[buyerID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[buyerID] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// BidRateLimiter limits how fast a single buyer can place bids. A
// non-positive rps disables the limit.
func BidRateLimiter(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := newBidLimiter(rps, burst)

	return func(c *gin.Context) {
		buyerID := helpers.UserID(c)
		if !limiter.allow(buyerID) {
			utils.Warn("BidRateLimiter: rate limited", map[string]any{"buyer_id": buyerID})
			utils.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "rate limit exceeded, slow down")
			return
		}
		c.Next()
	}
}
