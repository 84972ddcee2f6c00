// Message HTTP handlers.
//
// This file exposes the read-only message endpoints:
//   - GET /messages/random   (one random message, JSON or plain text)
//   - GET /messages          (every message for a category/tone pair)
//
// Handlers are transport-thin: they validate the query, call MessageService,
// and translate results into HTTP responses. Validation runs in a fixed order
// and only the first failure is reported.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/politely-failed/internal/domain"
)

//
// DTOs
//

// RandomMessageResponse is the JSON body of GET /messages/random.
type RandomMessageResponse struct {
	Message  string `json:"message" example:"Our servers are taking a quick nap. Please try again shortly."`
	Category string `json:"category" example:"network"`
	Tone     string `json:"tone" example:"casual"`
	// RFC 3339 UTC timestamp with milliseconds
	Timestamp string `json:"timestamp" example:"2025-01-02T03:04:05.678Z"`
}

// ListMessagesResponse is the JSON body of GET /messages.
type ListMessagesResponse struct {
	Category string   `json:"category" example:"auth"`
	Tone     string   `json:"tone" example:"professional"`
	Messages []string `json:"messages"`
	Count    int      `json:"count" example:"3"`
}

const (
	formatJSON = "json"
	formatText = "text"
)

//
// Helpers
//

// pairQuery validates category and tone. On failure it writes the 400
// response and returns valid=false.
func (h *Handlers) pairQuery(c *gin.Context) (category domain.Category, tone domain.Tone, valid bool) {
	cat := c.Query("category")
	switch {
	case cat == "":
		fail(c, http.StatusBadRequest, ErrCodeValidation, msgCategoryRequired)
		return "", "", false
	case !h.svc.IsValidCategory(cat):
		fail(c, http.StatusBadRequest, ErrCodeValidation, msgCategoryInvalid)
		return "", "", false
	}

	tn := c.Query("tone")
	switch {
	case tn == "":
		fail(c, http.StatusBadRequest, ErrCodeValidation, msgToneRequired)
		return "", "", false
	case !h.svc.IsValidTone(tn):
		fail(c, http.StatusBadRequest, ErrCodeValidation, msgToneInvalid)
		return "", "", false
	}

	return domain.Category(cat), domain.Tone(tn), true
}

// formatQuery returns the requested output format. A present but unknown
// value (including the empty string) is a validation error.
func formatQuery(c *gin.Context) (string, bool) {
	f, present := c.GetQuery("format")
	if !present {
		return formatJSON, true
	}
	if f != formatJSON && f != formatText {
		fail(c, http.StatusBadRequest, ErrCodeValidation, msgFormatInvalid)
		return "", false
	}
	return f, true
}

// serviceError maps a MessageService failure to a 500 envelope.
func serviceError(c *gin.Context, err error) {
	code := ErrCodeInternal
	if isNoMessages(err) {
		code = ErrCodeNoMessages
	}
	fail(c, http.StatusInternalServerError, code, errorMessage(err))
}

//
// Handlers
//

// RandomMessage godoc
// @ID          getRandomMessage
// @Summary     Get a random failure message
// @Description Returns one randomly chosen message for the category/tone pair.
// @Description With format=text the bare message is returned as text/plain.
// @Tags        Messages
// @Produce     json
// @Produce     plain
//
// @Param       category  query  string  true  "Failure category"  Enums(network, auth, database, validation, rate_limit, server_error, not_implemented)
// @Param       tone      query  string  true  "Message tone"      Enums(casual, professional, humorous)
// @Param       format    query  string  false "Response format"   Enums(json, text) default(json)
//
// @Success     200  {object}  handlers.RandomMessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse "No messages or catalog failure"
// @Router      /messages/random [get]
func (h *Handlers) RandomMessage(c *gin.Context) {
	category, tone, valid := h.pairQuery(c)
	if !valid {
		return
	}
	format, valid := formatQuery(c)
	if !valid {
		return
	}

	msg, err := h.svc.RandomMessage(c.Request.Context(), category, tone)
	if err != nil {
		serviceError(c, err)
		return
	}

	if format == formatText {
		text(c, http.StatusOK, msg)
		return
	}
	ok(c, http.StatusOK, RandomMessageResponse{
		Message:   msg,
		Category:  string(category),
		Tone:      string(tone),
		Timestamp: timestamp(),
	})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List all messages for a category and tone
// @Description Returns every stored message for the pair, in catalog order.
// @Tags        Messages
// @Produce     json
//
// @Param       category  query  string  true  "Failure category"  Enums(network, auth, database, validation, rate_limit, server_error, not_implemented)
// @Param       tone      query  string  true  "Message tone"      Enums(casual, professional, humorous)
//
// @Success     200  {object}  handlers.ListMessagesResponse
// @Failure     400  {object}  handlers.ErrorResponse "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse "Catalog failure"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	category, tone, valid := h.pairQuery(c)
	if !valid {
		return
	}

	msgs, err := h.svc.AllMessages(c.Request.Context(), category, tone)
	if err != nil {
		serviceError(c, err)
		return
	}
	if msgs == nil {
		msgs = []string{}
	}

	ok(c, http.StatusOK, ListMessagesResponse{
		Category: string(category),
		Tone:     string(tone),
		Messages: msgs,
		Count:    len(msgs),
	})
}
