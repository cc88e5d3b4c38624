// Package models holds the GORM row types. Domain aggregates never carry
// persistence tags; each model converts with ToDomain and FromDomain.
package models
