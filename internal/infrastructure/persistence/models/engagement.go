package models

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/google/uuid"
)

// JobInActionModel is the row of the jobs_in_action table.
type JobInActionModel struct {
	AggregateModel
	JobID           uuid.UUID `gorm:"type:uuid;not null;index:idx_jobs_in_action_job_status,priority:1"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;index:idx_jobs_in_action_job_status,priority:2"`
	StatusChangedAt time.Time `gorm:"not null"`
	Active          bool      `gorm:"not null;default:true"`
}

func (JobInActionModel) TableName() string { return "jobs_in_action" }

func (m *JobInActionModel) ToDomain() *engagement.JobInAction {
	return &engagement.JobInAction{
		BaseAggregateRoot: m.toAggregate(),
		JobID:             m.JobID,
		ClientID:          m.ClientID,
		Status:            engagement.JobStatus(m.Status),
		StatusChangedAt:   m.StatusChangedAt,
		Active:            m.Active,
	}
}

func (m *JobInActionModel) FromDomain(ja *engagement.JobInAction) {
	m.fromAggregate(ja.BaseAggregateRoot)
	m.JobID = ja.JobID
	m.ClientID = ja.ClientID
	m.Status = string(ja.Status)
	m.StatusChangedAt = ja.StatusChangedAt
	m.Active = ja.Active
}

func JobInActionModelFromDomain(ja *engagement.JobInAction) *JobInActionModel {
	m := &JobInActionModel{}
	m.FromDomain(ja)
	return m
}

// HistoryEntryModel is the row of the job_history table.
type HistoryEntryModel struct {
	BaseModel
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index"`
	JobID         uuid.UUID `gorm:"type:uuid;not null;index"`
	JobInActionID uuid.UUID `gorm:"type:uuid;not null;index"`
	JobKind       string    `gorm:"type:varchar(20);not null"`
	RequestedAt   time.Time `gorm:"not null"`
	Comment       string    `gorm:"type:text;not null;default:''"`
	Active        bool      `gorm:"not null;default:true"`
}

func (HistoryEntryModel) TableName() string { return "job_history" }

func (m *HistoryEntryModel) ToDomain() *engagement.HistoryEntry {
	return &engagement.HistoryEntry{
		BaseEntity:    m.toEntity(),
		ClientID:      m.ClientID,
		JobID:         m.JobID,
		JobInActionID: m.JobInActionID,
		JobKind:       catalog.JobKind(m.JobKind),
		RequestedAt:   m.RequestedAt,
		Comment:       m.Comment,
		Active:        m.Active,
	}
}

func (m *HistoryEntryModel) FromDomain(h *engagement.HistoryEntry) {
	m.fromEntity(h.BaseEntity)
	m.ClientID = h.ClientID
	m.JobID = h.JobID
	m.JobInActionID = h.JobInActionID
	m.JobKind = string(h.JobKind)
	m.RequestedAt = h.RequestedAt
	m.Comment = h.Comment
	m.Active = h.Active
}

func HistoryEntryModelFromDomain(h *engagement.HistoryEntry) *HistoryEntryModel {
	m := &HistoryEntryModel{}
	m.FromDomain(h)
	return m
}
