package dto

type UploadResponse struct {
	TaskId     string `json:"task_id"`
	DocumentId string `json:"document_id"`
	SessionId  string `json:"session_id"`
	FileName   string `json:"file_name"`
	Status     string `json:"status"`
}

type TaskEvent struct {
	TaskId     string  `json:"task_id"`
	SessionId  string  `json:"session_id"`
	DocumentId string  `json:"document_id,omitempty"`
	Phase      string  `json:"phase"`
	Progress   float64 `json:"progress"`
	Message    string  `json:"message,omitempty"`
	Error      string  `json:"error,omitempty"`
	Warning    string  `json:"warning,omitempty"`
}
