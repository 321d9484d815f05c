// Copyright (c) 2026 Cinerate. All rights reserved.

package schema

// MoviesTable represents the 'movies' table
type MoviesTable struct {
	Table          string
	ID             string
	Title          string
	Description    string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
	LastModifiedBy string
}

// Movies is the schema definition for the movies table
var Movies = MoviesTable{
	Table:          "movies",
	ID:             "id",
	Title:          "title",
	Description:    "description",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
	LastModifiedBy: "lastmodifiedby",
}

// Descriptor exposes the movies table to the generic repository.
func (t MoviesTable) Descriptor() Descriptor {
	return Descriptor{
		Table:     t.Table,
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
		Columns: []string{
			t.ID, t.Title, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt, t.LastModifiedBy,
		},
		Fields: map[string]string{
			"id":               t.ID,
			"title":            t.Title,
			"description":      t.Description,
			"created_at":       t.CreatedAt,
			"updated_at":       t.UpdatedAt,
			"last_modified_by": t.LastModifiedBy,
		},
	}
}
