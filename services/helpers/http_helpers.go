package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"vehicle-auctions/internal/auctionerrors"
	"vehicle-auctions/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err to a status, writes the error envelope and logs it
func HandleServiceError(c *gin.Context, handlerName, logMessage string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+logMessage, fields)
		return
	}
	utils.Warn(handlerName+": "+logMessage, fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrPurchaseNotFound):
		return http.StatusNotFound, "purchase not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, auctionerrors.ErrBuyerNotFound):
		return http.StatusNotFound, "buyer not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrNotAuthorized):
		return http.StatusForbidden, "not authorized for this auction"
	case errors.Is(err, auctionerrors.ErrBuyerBlocked):
		return http.StatusForbidden, "buyer is blocked from bidding"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrDeadlineNotPassed):
		return http.StatusConflict, "payment deadline has not passed yet"
	case errors.Is(err, auctionerrors.ErrPaymentAlreadyCompleted):
		return http.StatusConflict, "payment already completed"
	case errors.Is(err, auctionerrors.ErrPaymentDeadlinePassed):
		return http.StatusConflict, "payment deadline has passed"
	case errors.Is(err, auctionerrors.ErrAuctionNotApproved):
		return http.StatusConflict, "auction is not approved"
	case errors.Is(err, auctionerrors.ErrAuctionNotStarted):
		return http.StatusConflict, "auction has not started"
	case errors.Is(err, auctionerrors.ErrAuctionAlreadyStopped):
		return http.StatusConflict, "auction already stopped"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusConflict, "auction has ended"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrAuctionNotEnded):
		return http.StatusConflict, "auction has not ended"
	case errors.Is(err, auctionerrors.ErrAlreadyReauctioned):
		return http.StatusConflict, "auction already re-auctioned"
	case errors.Is(err, auctionerrors.ErrInvalidState):
		return http.StatusConflict, "invalid auction state"
	case errors.Is(err, auctionerrors.ErrPurchaseExists), errors.Is(err, auctionerrors.ErrVersionConflict):
		return http.StatusConflict, "auction was modified concurrently"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// Context keys set by the auth middleware
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// UserID returns the authenticated user's ID, or "" when the request is anonymous
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
