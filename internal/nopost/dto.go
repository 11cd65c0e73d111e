package nopost

// UpsertNoPostListDTO carries the raw comma-separated room list. An empty
// string clears the list.
type UpsertNoPostListDTO struct {
	Items string `json:"items"`
}

type NoPostListsResponse struct {
	NoPostLists []*NoPostList `json:"no_post_lists"`
}
