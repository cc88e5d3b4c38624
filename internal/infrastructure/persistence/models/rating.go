package models

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/google/uuid"
)

// RatingModel is the row of the ratings table. The (client_id, job_id) pair
// is unique so a second rating by the same client fails at the store.
type RatingModel struct {
	AggregateModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ratings_client_job,priority:1"`
	JobID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ratings_client_job,priority:2;index"`
	JobKind  string    `gorm:"type:varchar(20);not null"`
	Score    int       `gorm:"not null;check:chk_ratings_score,score BETWEEN 1 AND 5"`
	RatedAt  time.Time `gorm:"not null"`
	Comment  string    `gorm:"type:text;not null;default:''"`
}

func (RatingModel) TableName() string { return "ratings" }

func (m *RatingModel) ToDomain() *rating.Rating {
	return &rating.Rating{
		BaseAggregateRoot: m.toAggregate(),
		ClientID:          m.ClientID,
		JobID:             m.JobID,
		JobKind:           catalog.JobKind(m.JobKind),
		Score:             m.Score,
		RatedAt:           m.RatedAt,
		Comment:           m.Comment,
	}
}

func (m *RatingModel) FromDomain(r *rating.Rating) {
	m.fromAggregate(r.BaseAggregateRoot)
	m.ClientID = r.ClientID
	m.JobID = r.JobID
	m.JobKind = string(r.JobKind)
	m.Score = r.Score
	m.RatedAt = r.RatedAt
	m.Comment = r.Comment
}

func RatingModelFromDomain(r *rating.Rating) *RatingModel {
	m := &RatingModel{}
	m.FromDomain(r)
	return m
}
