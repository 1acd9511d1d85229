package domain

import "time"

// AuditAction identifies an admin mutation recorded in the audit trail.
type AuditAction string

const (
	AuditBan     AuditAction = "ban"
	AuditUnban   AuditAction = "unban"
	AuditApprove AuditAction = "approve_admin"
	AuditRevoke  AuditAction = "revoke_admin"
)

// AuditEntry records one admin mutation. TargetID is the sharding key, so
// entries for the same account are persisted in action order.
type AuditEntry struct {
	Action     AuditAction `json:"action"`
	ActorID    string      `json:"actor_id"`
	Actor      string      `json:"actor"`
	TargetID   string      `json:"target_id"`
	OccurredAt time.Time   `json:"occurred_at"`
}
