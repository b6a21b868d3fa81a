package meshbvh

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/meshbvh/bvh"
)

// treeCache owns one lazily built tree per kind. Each slot moves from
// unbuilt to built exactly once per generation: concurrent first callers
// of the same kind funnel through a single build and all receive its
// tree, while distinct kinds build independently. Readers never observe a
// partially built tree.
type treeCache struct {
	mu    sync.RWMutex
	trees [numKinds]*bvh.Tree
	built [numKinds]bool

	group singleflight.Group
}

// ensure returns the slot's tree, running build exactly once if the slot
// is unbuilt. A nil tree is a valid build result (zero active elements)
// and is cached like any other.
func (c *treeCache) ensure(kind Kind, build func() (*bvh.Tree, error)) (*bvh.Tree, error) {
	c.mu.RLock()
	if c.built[kind] {
		tree := c.trees[kind]
		c.mu.RUnlock()
		return tree, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(kind.String(), func() (any, error) {
		// A build may have completed between the read check and Do.
		c.mu.RLock()
		if c.built[kind] {
			tree := c.trees[kind]
			c.mu.RUnlock()
			return tree, nil
		}
		c.mu.RUnlock()

		tree, err := build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.trees[kind] = tree
		c.built[kind] = true
		c.mu.Unlock()

		return tree, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*bvh.Tree), nil
}

// peek returns the slot's tree without triggering a build.
func (c *treeCache) peek(kind Kind) (*bvh.Tree, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trees[kind], c.built[kind]
}

// invalidate resets the slot to unbuilt, dropping its tree. The next
// ensure rebuilds from the current geometry.
func (c *treeCache) invalidate(kind Kind) {
	c.group.Forget(kind.String())

	c.mu.Lock()
	c.trees[kind] = nil
	c.built[kind] = false
	c.mu.Unlock()
}
