package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerErrorText is the opaque body written for every unexpected failure.
const ServerErrorText = "Server error"

// Msg is the `{ "msg": ... }` body used for not-found and confirmation replies.
type Msg struct {
	Msg string `json:"msg"`
}

// Item is one entry of an `errors` array.
type Item struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// ErrorList is the `{ "errors": [ ... ] }` body used for 400 replies.
type ErrorList struct {
	Errors []Item `json:"errors"`
}

// ErrorObject is the `{ "errors": { "msg": ... } }` body used by the auth gate.
type ErrorObject struct {
	Errors Msg `json:"errors"`
}

// JSON writes data as-is with the given status.
func JSON(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Message writes `{ "msg": msg }`.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Msg{Msg: msg})
}

// Errors writes `{ "errors": items }` with status 400.
func Errors(c *gin.Context, items ...Item) {
	if items == nil {
		items = []Item{}
	}
	c.JSON(http.StatusBadRequest, ErrorList{Errors: items})
}

// Unauthorized aborts the chain with `{ "errors": { "msg": msg } }` and status 401.
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorObject{Errors: Msg{Msg: msg}})
}

// ServerError writes the opaque plain-text 500 body; internal detail never reaches the caller.
func ServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, ServerErrorText)
}
