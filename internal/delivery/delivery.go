package delivery

// Result reports the outcome of one delivery attempt. Remote rejections and
// transport errors are folded into the result instead of raised, so a failed
// send never aborts the pipeline.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}
