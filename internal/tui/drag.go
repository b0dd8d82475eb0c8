package tui

// dragSensor turns the keyboard grab/drop gesture into a (source, target)
// pair. It knows nothing about list order; the store does the move.
type dragSensor struct {
	source string
}

func (d *dragSensor) active() bool { return d.source != "" }

// grab picks up id. Grabbing again while holding replaces the source.
func (d *dragSensor) grab(id string) { d.source = id }

// drop releases the held item over target and returns the pair.
// ok is false when nothing was held.
func (d *dragSensor) drop(target string) (source string, ok bool) {
	source, d.source = d.source, ""
	return source, source != ""
}

func (d *dragSensor) cancel() { d.source = "" }

func (d *dragSensor) holding(id string) bool { return d.source != "" && d.source == id }
