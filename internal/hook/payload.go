// Package hook models the JSON payload Claude Code sends to hooks on stdin.
package hook

import "encoding/json"

// Payload mirrors the raw hook JSON. Fields not sent for a given event
// kind simply stay empty; nothing here is required except the event name.
type Payload struct {
	SessionID        string `json:"session_id"`
	CWD              string `json:"cwd"`
	HookEventName    string `json:"hook_event_name"`
	TranscriptPath   string `json:"transcript_path"`
	NotificationType string `json:"notification_type"`
	Message          string `json:"message"`
	Title            string `json:"title"`
	Prompt           string `json:"prompt"`
	PermissionMode   string `json:"permission_mode"`
	StopHookActive   bool   `json:"stop_hook_active"`
	Reason           string `json:"reason"`
}

// Event names as sent by Claude Code. Situations reference these
// literally in their trigger field.
const (
	EventSessionStart     = "SessionStart"
	EventUserPromptSubmit = "UserPromptSubmit"
	EventStop             = "Stop"
	EventSubagentStop     = "SubagentStop"
	EventNotification     = "Notification"
	EventSessionEnd       = "SessionEnd"
)

// notificationPermission marks a Notification payload as a pending
// permission prompt.
const notificationPermission = "permission_prompt"

// ParsePayload converts raw JSON bytes into a Payload. An unparseable
// payload or one without an event name yields ok=false; the caller
// treats that as a silent no-op.
func ParsePayload(data []byte) (Payload, bool) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, false
	}
	if p.HookEventName == "" {
		return Payload{}, false
	}
	return p, true
}

// IsPermissionPrompt reports whether this payload is a Notification for
// an unanswered permission request.
func (p Payload) IsPermissionPrompt() bool {
	return p.HookEventName == EventNotification && p.NotificationType == notificationPermission
}
