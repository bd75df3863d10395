package topics

// Renderer formats the content of a topic file for the terminal. ext is the
// file extension, dot included.
type Renderer interface {
	Render(content, ext string) string
}

// RendererFunc adapts a plain function to a Renderer
type RendererFunc func(content, ext string) string

// Render calls f
func (f RendererFunc) Render(content, ext string) string {
	return f(content, ext)
}

// verbatim writes topics as they are stored
var verbatim = RendererFunc(func(content, _ string) string { return content })
