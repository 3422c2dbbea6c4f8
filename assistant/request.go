package assistant

// RepoData identifies the analyzed repository
type RepoData struct {
	Name        string `json:"name,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Description string `json:"description,omitempty"`
}

// SelectedNode represents tree node selected in the UI
type SelectedNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	Outdated bool   `json:"outdated,omitempty"`
}

// ChatContext represents UI state sent along a chat message
type ChatContext struct {
	SelectedNode *SelectedNode `json:"selectedNode,omitempty"`
}

// Turn represents a prior conversation message
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat message about a repository
type ChatRequest struct {
	Message  string       `json:"message"`
	RepoData *RepoData    `json:"repoData,omitempty"`
	Context  *ChatContext `json:"context,omitempty"`
	History  []*Turn      `json:"history,omitempty"`
}

// ExplainRequest represents a file explanation request
type ExplainRequest struct {
	FilePath    string `json:"filePath"`
	FileContent string `json:"fileContent"`
	Detailed    bool   `json:"detailed"`
}
