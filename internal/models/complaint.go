package models

import "time"

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// ValidStatuses lists every accepted status value, in lifecycle order.
var ValidStatuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}

// IsValid reports whether s is one of the enumerated status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Complaint represents one citizen submission against an Entity.
// Deleting an Entity cascades to its complaints so no orphaned rows remain.
type Complaint struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntityID    uint      `gorm:"not null;index" json:"entity_id"`
	Entity      Entity    `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE" json:"-"`
	Description string    `gorm:"not null" json:"description"`
	Status      Status    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OriginIP    string    `json:"origin_ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ComplaintWithEntity is a listing row annotated with the entity name,
// produced by a join rather than per-row lookups.
type ComplaintWithEntity struct {
	Complaint
	EntityName string `json:"entity_name"`
}

// EntityCount is one row of the per-entity aggregate report.
type EntityCount struct {
	EntityName string `json:"entity_name"`
	Count      int64  `json:"count"`
}

// StatusCount is one row of the per-status aggregate report.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// MonthCount is one row of the per-month aggregate report (YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Stats bundles every aggregate the reports endpoint serves.
type Stats struct {
	TotalComplaints int64         `json:"total_complaints"`
	TotalEntities   int64         `json:"total_entities"`
	PendingCount    int64         `json:"pending_count"`
	ByStatus        []StatusCount `json:"by_status"`
	ByEntity        []EntityCount `json:"by_entity"`
	ByMonth         []MonthCount  `json:"by_month"`
}
