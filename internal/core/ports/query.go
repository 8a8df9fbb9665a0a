package ports

// ListQuery carries offset pagination plus exact-match field filters for a
// list operation. An empty or nil Filters map means no filtering. Result
// order is store-native; callers must not rely on it being stable.
type ListQuery struct {
	Skip    int
	Limit   int
	Filters map[string]string
}
