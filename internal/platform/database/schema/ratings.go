// Copyright (c) 2026 Cinerate. All rights reserved.

package schema

// RatingsTable represents the 'ratings' table
type RatingsTable struct {
	Table          string
	ID             string
	UserID         string
	MovieID        string
	Rating         string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
	LastModifiedBy string
}

// Ratings is the schema definition for the ratings table.
// The pair (userid, movieid) carries a partial unique index over live rows:
// at most one rating per user per movie.
var Ratings = RatingsTable{
	Table:          "ratings",
	ID:             "id",
	UserID:         "userid",
	MovieID:        "movieid",
	Rating:         "rating",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
	LastModifiedBy: "lastmodifiedby",
}

// Descriptor exposes the ratings table to the generic repository.
func (t RatingsTable) Descriptor() Descriptor {
	return Descriptor{
		Table:     t.Table,
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
		Columns: []string{
			t.ID, t.UserID, t.MovieID, t.Rating, t.CreatedAt, t.UpdatedAt, t.DeletedAt, t.LastModifiedBy,
		},
		Fields: map[string]string{
			"id":               t.ID,
			"user_id":          t.UserID,
			"movie_id":         t.MovieID,
			"rating":           t.Rating,
			"created_at":       t.CreatedAt,
			"updated_at":       t.UpdatedAt,
			"last_modified_by": t.LastModifiedBy,
		},
	}
}
