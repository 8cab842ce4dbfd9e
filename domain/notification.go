package domain

const (
	NotificationTypeApproverReminder         = "ApproverReminder"
	NotificationTypePendingApprovalsReminder = "PendingApprovalsReminder"
	NotificationTypeWorkflowResolved         = "WorkflowResolved"
	NotificationTypeDocumentExpiryReminder   = "DocumentExpiryReminder"
)

type NotificationMessage struct {
	Type      string                 `json:"type" yaml:"type"`
	Variables map[string]interface{} `json:"variables,omitempty" yaml:"variables,omitempty"`
}

type Notification struct {
	User    string              `json:"user" yaml:"user"`
	Message NotificationMessage `json:"message" yaml:"message"`
	Labels  map[string]string   `json:"labels,omitempty" yaml:"labels,omitempty"`
}
