package domain

// ApprovalAction is an approve/reject/revise request against one record's
// active workflow step, triggered by an external form.
type ApprovalAction struct {
	RecordID string         `json:"record_id" validate:"required"`
	Actor    string         `json:"actor" validate:"required"`
	Action   WorkflowAction `json:"action" validate:"required,oneof=approve reject revise"`
	Comment  string         `json:"comment"`
}
