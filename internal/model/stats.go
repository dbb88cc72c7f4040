package model

// UserStatistics is the derived aggregate over one user's activity records.
// It is recomputed on demand from the activity log and never persisted as
// its own entity.
type UserStatistics struct {
	UserID        string `json:"user_id"`
	TotalPosts    int    `json:"total_posts"`
	TotalLikes    int    `json:"total_likes"`
	TotalComments int    `json:"total_comments"`

	// MaxLikes is the highest like count on any single post.
	MaxLikes int `json:"max_likes"`

	// VisitedRegions counts distinct region labels across the user's posts.
	VisitedRegions int `json:"visited_regions"`

	// MaxRegionPosts is the post count of the user's most-posted region.
	MaxRegionPosts int `json:"max_region_posts"`

	// MaxPostsInDay is the highest number of posts on a single calendar day.
	MaxPostsInDay int `json:"max_posts_in_day"`

	// LongestStreak is the longest run of consecutive calendar days with at
	// least one post.
	LongestStreak int `json:"longest_streak"`

	// Posts holds the user's own (non-seed) records for rule evaluation.
	// It is not serialized into API responses.
	Posts []*ActivityRecord `json:"-"`
}
