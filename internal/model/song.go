package model

// Song represents one catalog entry. The id is generated by the backend's
// relational storage; the URLs point at public objects in the audio and
// cover buckets and must stay live until the row is deleted.
type Song struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	AudioURL string `json:"audio_url"`
	CoverURL string `json:"cover_url"`
}
