package userdata

import "time"

// Data is the per-user state search features read: watched and ignored tags
// for the feed and the ordered list of pinned snippet ids.
type Data struct {
	UserID      string    `json:"userId"`
	WatchedTags []string  `json:"watchedTags"`
	IgnoredTags []string  `json:"ignoredTags"`
	Pinned      []string  `json:"pinned"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
