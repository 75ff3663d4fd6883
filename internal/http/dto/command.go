package dto

type CommandRequest struct {
	Command        string `json:"command" binding:"required"`
	ConversationID int64  `json:"conversationId,string" binding:"required"`
	BoardID        *int64 `json:"boardId,string,omitempty"`
}

type NextCaseNumberResponse struct {
	NextCaseNumber int64  `json:"nextCaseNumber"`
	CaseNumber     string `json:"caseNumber"`
}
