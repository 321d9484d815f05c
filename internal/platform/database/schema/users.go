// Copyright (c) 2026 Cinerate. All rights reserved.

package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table          string
	ID             string
	Name           string
	Email          string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
	LastModifiedBy string
}

// Users is the schema definition for the users table
var Users = UsersTable{
	Table:          "users",
	ID:             "id",
	Name:           "name",
	Email:          "email",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
	LastModifiedBy: "lastmodifiedby",
}

// Descriptor exposes the users table to the generic repository.
func (t UsersTable) Descriptor() Descriptor {
	return Descriptor{
		Table:     t.Table,
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
		Columns: []string{
			t.ID, t.Name, t.Email, t.CreatedAt, t.UpdatedAt, t.DeletedAt, t.LastModifiedBy,
		},
		Fields: map[string]string{
			"id":               t.ID,
			"name":             t.Name,
			"email":            t.Email,
			"created_at":       t.CreatedAt,
			"updated_at":       t.UpdatedAt,
			"last_modified_by": t.LastModifiedBy,
		},
	}
}
