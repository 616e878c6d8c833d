package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"kasjer/internal/database"
	"kasjer/internal/models"
	"kasjer/internal/queue"
	"kasjer/internal/validation"

	"github.com/google/uuid"
)

const wsEventMessage = "message"

type SendMessageRequest struct {
	UserEmail   string `json:"userEmail,omitempty" example:"player@example.com"`
	UserID      string `json:"userId,omitempty"`
	Username    string `json:"username,omitempty"`
	Title       string `json:"title" example:"Bonus unlocked"`
	Content     string `json:"content" example:"Your 20% reload bonus is ready."`
	MessageType string `json:"messageType,omitempty" example:"promotion"`
}

type BroadcastRequest struct {
	Title       string `json:"title" example:"Maintenance"`
	Content     string `json:"content" example:"The cashier is closed from 2 to 3 am."`
	MessageType string `json:"messageType,omitempty" example:"alert"`
}

type MarkReadRequest struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId,omitempty"`
}

type SendMessageResponse struct {
	Success bool            `json:"success" example:"true"`
	Message *models.Message `json:"message"`
}

type BroadcastResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Broadcast sent to 12 users"`
	Count   int    `json:"count" example:"12"`
}

type MessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// @Summary      Sends a message to one player
// @Description  The recipient is given either by userId and username or by userEmail.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sendMessageRequest  body      SendMessageRequest  true  "Message"
// @Success      200                 {object}  SendMessageResponse
// @Failure      400                 {object}  ErrorResponse
// @Failure      401                 {object}  ErrorResponse
// @Failure      403                 {object}  ErrorResponse
// @Failure      404                 {object}  ErrorResponse "User not found"
// @Router       /messages/send [post]
func (s *Server) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	kind, fields := validation.Message(req.Title, req.Content, req.MessageType)
	if fields != nil {
		writeValidation(w, "Invalid input", fields)
		return
	}

	userID := strings.TrimSpace(req.UserID)
	username := strings.TrimSpace(req.Username)
	if userID == "" && strings.TrimSpace(req.UserEmail) != "" {
		user, err := s.store.GetUserByEmail(r.Context(), strings.TrimSpace(req.UserEmail))
		if err != nil {
			writeStoreError(w, "resolve message recipient", err)
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, codeNotFound, "User not found")
			return
		}
		userID, username = user.ID, user.Username
	}

	if userID == "" || username == "" {
		missing := validation.Errors{}
		requireFields(missing, map[string]string{"userId": userID, "username": username})
		writeValidation(w, "User ID and username are required", missing)
		return
	}

	message, err := s.store.CreateMessage(r.Context(), database.CreateMessageParams{
		UserID:      userID,
		Username:    username,
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		MessageType: kind,
	})
	if err != nil {
		writeStoreError(w, "create message", err)
		return
	}

	log.Printf("INFO: message %s sent to user %s by %s", message.ID, message.UserID, senderName(r.Context()))
	messagesSentTotal.Inc()
	s.notify(message.UserID, wsEventMessage, message)
	s.publish(r.Context(), queue.EventMessageSent, message)

	writeJSON(w, http.StatusOK, SendMessageResponse{Success: true, Message: message})
}

// @Summary      Sends a message to every player
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        broadcastRequest  body      BroadcastRequest  true  "Message"
// @Success      200               {object}  BroadcastResponse
// @Failure      400               {object}  ErrorResponse
// @Failure      401               {object}  ErrorResponse
// @Failure      403               {object}  ErrorResponse
// @Failure      500               {object}  ErrorResponse
// @Router       /messages/broadcast [post]
func (s *Server) BroadcastHandler(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	kind, fields := validation.Message(req.Title, req.Content, req.MessageType)
	if fields != nil {
		writeValidation(w, "Invalid input", fields)
		return
	}

	sent, err := s.store.CreateBroadcast(r.Context(), database.BroadcastParams{
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		MessageType: kind,
	})
	if err != nil {
		writeStoreError(w, "broadcast message", err)
		return
	}

	log.Printf("INFO: broadcast %q sent to %d users by %s", req.Title, len(sent), senderName(r.Context()))
	messagesSentTotal.Add(float64(len(sent)))
	for i := range sent {
		s.notify(sent[i].UserID, wsEventMessage, &sent[i])
	}

	writeJSON(w, http.StatusOK, BroadcastResponse{
		Success: true,
		Message: fmt.Sprintf("Broadcast sent to %d users", len(sent)),
		Count:   len(sent),
	})
}

// @Summary      Lists a player's messages
// @Description  Newest first.
// @Tags         messages
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {object}  MessagesResponse
// @Failure      400     {object}  ErrorResponse "User ID is required"
// @Failure      500     {object}  ErrorResponse
// @Router       /messages [get]
func (s *Server) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeValidation(w, "User ID is required", validation.Errors{"userId": "Required"})
		return
	}

	messages, err := s.store.ListMessagesByUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "list messages", err)
		return
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
}

// @Summary      Counts a player's unread messages
// @Tags         messages
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {object}  UnreadCountResponse
// @Failure      400     {object}  ErrorResponse "User ID is required"
// @Failure      500     {object}  ErrorResponse
// @Router       /messages/unread-count [get]
func (s *Server) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeValidation(w, "User ID is required", validation.Errors{"userId": "Required"})
		return
	}

	count, err := s.store.CountUnreadMessages(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "count unread messages", err)
		return
	}

	writeJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// @Summary      Marks a message as read
// @Description  The first call stamps readAt, later calls leave it alone. With userId the message must belong to that user.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        markReadRequest  body      MarkReadRequest  true  "Message"
// @Success      200              {object}  SuccessResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      404              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /messages/read [post]
func (s *Server) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	messageID := strings.TrimSpace(req.MessageID)
	if messageID == "" {
		writeValidation(w, "Invalid input", validation.Errors{"messageId": "Required"})
		return
	}
	if _, err := uuid.Parse(messageID); err != nil {
		writeValidation(w, "Invalid input", validation.Errors{"messageId": "Invalid message id"})
		return
	}

	if _, err := s.store.MarkMessageRead(r.Context(), messageID, strings.TrimSpace(req.UserID)); err != nil {
		writeStoreError(w, "mark message read", err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
