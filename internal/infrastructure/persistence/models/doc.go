// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by all tables
// - project.go: projects and their employee lines
// - setting.go: key/value application settings
package models
