// Package store persists the user and project collections as whole-file
// snapshots: every mutation loads a full collection, rewrites it in memory
// and overwrites the previous snapshot. There is no locking and no change
// token, so deployments must guarantee at most a single writer; two
// processes racing on the same snapshot end in last-writer-wins with silent
// loss of the other's changes.
package store

import "trellomize/internal/models"

// Store defines snapshot access to the two top-level collections.
type Store interface {
	// LoadUsers returns the full user collection. A missing snapshot is an
	// empty collection, not an error.
	LoadUsers() ([]models.User, error)

	// SaveUsers overwrites the user collection.
	SaveUsers(users []models.User) error

	// LoadProjects returns the full project collection.
	LoadProjects() ([]models.Project, error)

	// SaveProjects overwrites the project collection.
	SaveProjects(projects []models.Project) error
}
