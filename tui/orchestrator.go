package tui

// Priority determines render order; lower values render first
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityHill
	PriorityPanel
	PriorityUI
	PriorityOverlay
)

// Renderer draws one part of the frame from the view
type Renderer interface {
	Render(v *View, buf *Buffer)
}

// VisibilityToggle is optionally implemented to skip a renderer for the current view
type VisibilityToggle interface {
	IsVisible(v *View, buf *Buffer) bool
}

type rendererEntry struct {
	renderer Renderer
	priority Priority
	index    int
}

// Orchestrator runs registered renderers in priority order into one buffer
type Orchestrator struct {
	buffer    *Buffer
	renderers []rendererEntry
	regCount  int
}

// NewOrchestrator creates an orchestrator with the given dimensions
func NewOrchestrator(width, height int) *Orchestrator {
	return &Orchestrator{
		buffer:    NewBuffer(width, height),
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds r at priority; equal priorities keep registration order
func (o *Orchestrator) Register(r Renderer, priority Priority) {
	entry := rendererEntry{renderer: r, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority {
			pos = i
			break
		}
	}
	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize updates buffer dimensions
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
}

// Compose clears the buffer and runs every visible renderer
func (o *Orchestrator) Compose(v *View) *Buffer {
	o.buffer.Clear()
	for _, e := range o.renderers {
		if vt, ok := e.renderer.(VisibilityToggle); ok && !vt.IsVisible(v, o.buffer) {
			continue
		}
		e.renderer.Render(v, o.buffer)
	}
	return o.buffer
}

// RenderFrame composes v and flushes the changes to screen
func (o *Orchestrator) RenderFrame(v *View, screen ScreenWriter) {
	o.Compose(v).Flush(screen)
}
