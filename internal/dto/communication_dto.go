package dto

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityFeedRequest describes the incoming query for the activity feed.
type ActivityFeedRequest struct {
	Page     int
	PageSize int
}

// ActivityFeedItem represents a single activity entry.
type ActivityFeedItem struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityFeedResponse wraps paginated activity items.
type ActivityFeedResponse struct {
	Items      []ActivityFeedItem `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
	CacheHit   bool               `json:"cache_hit"`
}

// ChatSendRequest represents the payload sent from clients to post a chat message.
type ChatSendRequest struct {
	TeamID  string `json:"-" validate:"required,max=128"`
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// ChatHistoryQuery represents query filters for retrieving chat history.
type ChatHistoryQuery struct {
	TeamID string `validate:"required,max=128"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ChatMessageResponse is the serialized representation of a chat message.
type ChatMessageResponse struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"team_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Mine       bool      `json:"mine"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewActivityFeedItem converts a platform activity.
func NewActivityFeedItem(model models.Activity) ActivityFeedItem {
	return ActivityFeedItem{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorName:  model.ActorName,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Message:    model.Message,
		CreatedAt:  model.CreatedAt,
	}
}

// NewChatMessageResponse converts a chat message for the given viewer.
func NewChatMessageResponse(model models.ChatMessage, viewerID string) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         model.ID,
		TeamID:     model.TeamID,
		SenderID:   model.SenderID,
		SenderName: model.SenderName,
		Content:    model.Content,
		Mine:       viewerID != "" && model.SenderID == viewerID,
		CreatedAt:  model.CreatedAt,
	}
}

// NewChatMessageResponseSlice converts chat messages for the given viewer.
func NewChatMessageResponseSlice(messages []models.ChatMessage, viewerID string) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewChatMessageResponse(message, viewerID))
	}
	return responses
}
