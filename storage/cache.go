package storage

import (
	"container/list"
	"sync"

	sent "github.com/revelaction/pairfeat/sentence"
)

// Cache keeps the last used documents of a DocReader in memory. With
// capacity 1 a document is read again only when the requested id changes.
type Cache struct {
	r        DocReader
	capacity int

	mu    sync.Mutex
	order *list.List
	docs  map[string]*list.Element

	// Misses counts the reads passed to the underlying reader
	Misses int
}

var _ DocReader = (*Cache)(nil)

type entry struct {
	id  string
	doc sent.Doc
}

func NewCache(r DocReader, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		r:        r,
		capacity: capacity,
		order:    list.New(),
		docs:     map[string]*list.Element{},
	}
}

func (c *Cache) Read(id string) (sent.Doc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.docs[id]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry).doc, nil
	}

	c.Misses++
	doc, err := c.r.Read(id)
	if err != nil {
		return sent.Doc{}, err
	}

	c.docs[id] = c.order.PushFront(&entry{id: id, doc: doc})
	for c.order.Len() > c.capacity {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.docs, last.Value.(*entry).id)
	}

	return doc, nil
}
