package render

type Container struct {
	children []*Graphics
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) AddChild(g *Graphics) {
	c.children = append(c.children, g)
}

func (c *Container) Children() []*Graphics { return c.children }

// Renderer draws every visible child of a container, in insertion order.
type Renderer interface {
	Render(stage *Container) error
}
