// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"fmt"
	"strings"
)

// Key builders are pure functions: identical parameters yield identical
// keys. The shapes below are a stable surface — write-path invalidation
// patterns match against them, so changing a shape silently orphans
// cached entries.

// ArticleDetail returns the cache key for a single article.
func ArticleDetail(slug string) string {
	return "article:detail:" + slug
}

// ArticleDetailForUser returns the cache key for a single article as seen
// by an authenticated user (per-user fields like "favorited" differ).
func ArticleDetailForUser(slug, username string) string {
	return "article:detail:" + slug + ":user:" + username
}

// ArticlesList returns the cache key for a filtered article listing.
// At most one filter applies, with fixed precedence tag > author >
// favorited; with no filter the segment is "all". The fixed ordering
// guarantees that different filter kinds never collide and identical
// filters always do.
func ArticlesList(page, limit int, tag, author, favorited string) string {
	parts := []string{"articles:list"}

	switch {
	case tag != "":
		parts = append(parts, "tag:"+tag)
	case author != "":
		parts = append(parts, "author:"+author)
	case favorited != "":
		parts = append(parts, "favorited:"+favorited)
	default:
		parts = append(parts, "all")
	}

	parts = append(parts, fmt.Sprintf("page:%d", page), fmt.Sprintf("limit:%d", limit))
	return strings.Join(parts, ":")
}

// ArticlesFeed returns the cache key for a user's followed-authors feed.
func ArticlesFeed(username string, page, limit int) string {
	return fmt.Sprintf("articles:list:feed:%s:page:%d:limit:%d", username, page, limit)
}

// UserProfile returns the cache key for a user profile.
func UserProfile(username string) string {
	return "user:profile:" + username
}

// UserFollowerCount returns the cache key for a profile's follower count.
func UserFollowerCount(username string) string {
	return "user:profile:" + username + ":follower_count"
}

// UserFollowingCount returns the cache key for a profile's following count.
func UserFollowingCount(username string) string {
	return "user:profile:" + username + ":following_count"
}

// CommentsList returns the cache key for one page of an article's comments.
func CommentsList(slug string, page, limit int) string {
	return fmt.Sprintf("comments:article:%s:page:%d:limit:%d", slug, page, limit)
}

// TagsAll returns the cache key for the global tag list.
func TagsAll() string {
	return "tags:all"
}

// Invalidation patterns. Each matches every key its builder family can
// produce, so a write path purges all variants in one pass.

// ArticleDetailPattern matches an article's detail keys, including the
// per-user variants.
func ArticleDetailPattern(slug string) string {
	return "article:detail:" + slug + "*"
}

// ArticlesListPattern matches every article listing page, feeds included.
func ArticlesListPattern() string {
	return "articles:list:*"
}

// UserProfilePattern matches a profile key and its count keys.
func UserProfilePattern(username string) string {
	return "user:profile:" + username + "*"
}

// CommentsPattern matches every comment page of an article.
func CommentsPattern(slug string) string {
	return "comments:article:" + slug + ":*"
}
