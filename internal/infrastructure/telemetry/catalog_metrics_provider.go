package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormCatalogMetricsProvider implements CatalogMetricsProvider over the jobs table.
type GormCatalogMetricsProvider struct {
	db *gorm.DB
}

// NewGormCatalogMetricsProvider creates a new GormCatalogMetricsProvider.
func NewGormCatalogMetricsProvider(db *gorm.DB) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db}
}

// CountActiveJobsByBucket groups active jobs into the catalog rating buckets.
func (p *GormCatalogMetricsProvider) CountActiveJobsByBucket(ctx context.Context) (map[string]int64, error) {
	type result struct {
		Bucket string `gorm:"column:bucket"`
		Total  int64  `gorm:"column:total"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("jobs").
		Select(`CASE
			WHEN average_rating < 3 THEN '0-3'
			WHEN average_rating < 3.5 THEN '3-3.5'
			WHEN average_rating < 4 THEN '3.5-4'
			WHEN average_rating < 4.5 THEN '4-4.5'
			ELSE '4.5-5' END AS bucket, COUNT(*) AS total`).
		Where("active = ?", true).
		Group("bucket").
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, r := range results {
		counts[r.Bucket] = r.Total
	}
	return counts, nil
}
