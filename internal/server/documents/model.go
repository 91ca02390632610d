// Package documents is the emulator's document store: one JSON document per
// path, holding a map of typed field values.
package documents

import (
	"encoding/json"
	"time"
)

// Document is a stored document. Fields maps field names to typed value
// objects such as {"stringValue": "Ada"}.
type Document struct {
	Name       string
	Fields     map[string]json.RawMessage
	CreateTime time.Time
	UpdateTime time.Time
}

// Name builds the resource name of a document in the default layout.
func Name(projectID, database, collection, docID string) string {
	return "projects/" + projectID + "/databases/" + database + "/documents/" + collection + "/" + docID
}
