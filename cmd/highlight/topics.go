package highlight

import (
	"embed"
	"io/fs"
)

//go:embed topics/*.md
var topicFiles embed.FS

// helpTopics returns the embedded topics rooted at the topics folder
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return nil
	}
	return sub
}
