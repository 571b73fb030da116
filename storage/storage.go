package storage

import (
	"errors"

	sent "github.com/revelaction/pairfeat/sentence"
)

var ErrNotFound = errors.New("doc not found")

// DocReader returns the resource bundle of a document.
type DocReader interface {
	// Read returns a document by id
	Read(id string) (sent.Doc, error)
}

// DocLister lists the ids of the documents in storage.
type DocLister interface {
	List() ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document with its sentences, trees and dependencies
	Write(doc sent.Doc) error
}

// DocRepository combines read and list operations
type DocRepository interface {
	DocReader
	DocLister
}
