package types

// AuditAction identifies what an actor did to an entity.
type AuditAction string

const (
	AuditActionCreateOrder    AuditAction = "CREATE_ORDER"
	AuditActionDeleteOrder    AuditAction = "DELETE_ORDER"
	AuditActionApproveRenewal AuditAction = "APPROVE_RENEWAL"
	AuditActionRejectRenewal  AuditAction = "REJECT_RENEWAL"
)

// AuditEntity identifies the kind of entity an audit entry refers to.
type AuditEntity string

const (
	AuditEntityOrder   AuditEntity = "orders"
	AuditEntityPayment AuditEntity = "payments"
	AuditEntityLicense AuditEntity = "licenses"
)
