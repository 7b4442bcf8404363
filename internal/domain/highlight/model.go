package highlight

// Clip is one embeddable highlight video.
type Clip struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Embed string `json:"embed"`
}

// Video groups the clips published for one match.
type Video struct {
	Title        string `json:"title"`
	Competition  string `json:"competition"`
	MatchviewURL string `json:"matchviewUrl"`
	Thumbnail    string `json:"thumbnail"`
	Date         string `json:"date"`
	Videos       []Clip `json:"videos"`
}
