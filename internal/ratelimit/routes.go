// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// Dimension selects what a quota counts against.
type Dimension string

const (
	// DimensionIP keys counters on the client IP address.
	DimensionIP Dimension = "ip"

	// DimensionUser keys counters on the authenticated user, falling
	// back to the client IP for anonymous requests.
	DimensionUser Dimension = "user"
)

// Quota is a rate limit bound to a route pattern. Pattern segments
// wrapped in braces ({slug}) match any single path segment.
type Quota struct {
	Pattern   string
	Limit     int
	Window    time.Duration
	Dimension Dimension
}

// Table resolves request paths to quotas. Literal patterns win over
// placeholder patterns when both match a path.
type Table struct {
	exact map[string]Quota
	root  *patternNode
}

type patternNode struct {
	children map[string]*patternNode
	param    *patternNode
	quota    *Quota
}

// NewTable builds a Table from quotas. Registering the same pattern
// twice is an error.
func NewTable(quotas []Quota) (*Table, error) {
	t := &Table{
		exact: make(map[string]Quota),
		root:  &patternNode{},
	}
	for _, q := range quotas {
		if err := t.add(q); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(q Quota) error {
	if !strings.ContainsRune(q.Pattern, '{') {
		if _, dup := t.exact[q.Pattern]; dup {
			return fmt.Errorf("ratelimit: duplicate route pattern %q", q.Pattern)
		}
		t.exact[q.Pattern] = q
		return nil
	}

	node := t.root
	for _, seg := range splitPath(q.Pattern) {
		if isPlaceholder(seg) {
			if node.param == nil {
				node.param = &patternNode{}
			}
			node = node.param
			continue
		}
		if node.children == nil {
			node.children = make(map[string]*patternNode)
		}
		child, ok := node.children[seg]
		if !ok {
			child = &patternNode{}
			node.children[seg] = child
		}
		node = child
	}
	if node.quota != nil {
		return fmt.Errorf("ratelimit: duplicate route pattern %q", q.Pattern)
	}
	node.quota = &q
	return nil
}

// Match returns the quota for path, preferring an exact pattern over a
// placeholder one. The second return is false when no pattern matches.
func (t *Table) Match(path string) (Quota, bool) {
	if q, ok := t.exact[path]; ok {
		return q, true
	}
	if q := matchNode(t.root, splitPath(path)); q != nil {
		return *q, true
	}
	return Quota{}, false
}

// matchNode walks segments through the trie, trying the literal child
// before the placeholder child and backtracking when the literal branch
// dead-ends.
func matchNode(node *patternNode, segments []string) *Quota {
	if node == nil {
		return nil
	}
	if len(segments) == 0 {
		return node.quota
	}
	seg, rest := segments[0], segments[1:]
	if child, ok := node.children[seg]; ok {
		if q := matchNode(child, rest); q != nil {
			return q
		}
	}
	return matchNode(node.param, rest)
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func isPlaceholder(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}
