package entity

// Attachment is a named file carried by an EmailRequest. For "attachment" payloads the
// content is base64 encoded; for "htmlAttachment" payloads it is raw markup.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// EmailRequest is the mail-relay payload.
type EmailRequest struct {
	To             string      `json:"to"`
	Subject        string      `json:"subject"`
	Message        string      `json:"message"`
	Attachment     *Attachment `json:"attachment,omitempty"`
	HTMLAttachment *Attachment `json:"htmlAttachment,omitempty"`
}

// EmailResult is the success response of the mail relay.
type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Demo    bool   `json:"demo,omitempty"`
}
