package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/application"
	"github.com/oksasatya/devconnector/internal/interface/middleware"
	"github.com/oksasatya/devconnector/pkg/helpers"
	"github.com/oksasatya/devconnector/pkg/response"
	"github.com/oksasatya/devconnector/pkg/validation"
)

const (
	msgUserExists        = "User already exists!"
	msgInvalidCreds      = "Invalid credentials"
	msgNoProfile         = "There's no profile for this user"
	msgProfileNotFound   = "Profile not found."
	msgMalformedOwner    = "Profile not found: invalid user id."
	msgIdentityNotFound  = "User not found"
	msgNoGithubProfile   = "No github profile found"
	msgGithubUnavailable = "GitHub is unavailable, try again later"
	msgNoToken           = "No token, authorization denied."
)

// writeError is the one place an application error becomes a response.
// Every branch writes exactly once; anything unrecognised is an opaque 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error, notFoundMsg string) {
	var fe *application.FieldError
	switch {
	case errors.As(err, &fe):
		response.Errors(c, response.Item{Msg: fe.Msg, Param: fe.Param, Location: validation.LocationBody})
	case errors.Is(err, application.ErrUnauthenticated):
		response.Unauthorized(c, msgNoToken)
	case errors.Is(err, application.ErrDuplicateIdentity):
		response.Errors(c, response.Item{Msg: msgUserExists})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Errors(c, response.Item{Msg: msgInvalidCreds})
	case errors.Is(err, application.ErrMalformedKey):
		response.Message(c, http.StatusNotFound, msgMalformedOwner)
	case errors.Is(err, application.ErrProfileNotFound):
		response.Message(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, application.ErrIdentityNotFound):
		response.Message(c, http.StatusNotFound, msgIdentityNotFound)
	case errors.Is(err, application.ErrUpstreamNotFound):
		response.Message(c, http.StatusNotFound, msgNoGithubProfile)
	case errors.Is(err, application.ErrUpstreamUnavailable):
		helpers.LogWarn(orStandard(logger), "upstream unavailable", err, requestFields(c))
		response.Message(c, http.StatusBadGateway, msgGithubUnavailable)
	default:
		helpers.LogError(orStandard(logger), "request failed", err, requestFields(c))
		response.ServerError(c)
	}
}

func orStandard(logger *logrus.Logger) *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
		"user_id":    c.GetString(middleware.CtxUserIDKey),
	}
}

// callerID returns the owner id put in place by middleware.Auth.
func callerID(c *gin.Context) (string, error) {
	if id, ok := middleware.UserIDFromContext(c.Request.Context()); ok {
		return id, nil
	}
	if id := c.GetString(middleware.CtxUserIDKey); id != "" {
		return id, nil
	}
	return "", application.ErrUnauthenticated
}
