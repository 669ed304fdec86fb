package inits

import (
	"github.com/hashicorp/go-memdb"
)

// ArtifactTable holds one row per staged scratch artifact.
const ArtifactTable = "artifact"

// DBInit builds the in-memory registry that tracks live scratch files.
func DBInit() (*memdb.MemDB, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			ArtifactTable: {
				Name: ArtifactTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
						AllowMissing: false,
					},
					"input": {
						Name:         "input",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "InputPath"},
						AllowMissing: false,
					},
					"expiry": {
						Name:         "expiry",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "ExpiryKey"},
						AllowMissing: false,
					},
				},
			},
		},
	}

	return memdb.NewMemDB(schema)
}
