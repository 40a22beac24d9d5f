package chat

// SendMessageRequest is the body of POST /v1/chat.
type SendMessageRequest struct {
	// ConversationID addresses an existing conversation; empty starts a new
	// one.
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// ListMessagesQuery carries the pagination parameters for message listing.
type ListMessagesQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
}
