package dungeon

import (
	"github.com/zyedidia/generic/mapset"

	"dungeonmania/server/models"
)

// Subject is what observers can inspect when notified
type Subject interface {
	Position() models.Position
}

// Observer is notified synchronously whenever the subject moves
type Observer interface {
	Update(s Subject)
}

// Publisher keeps an ordered list of attached observers. The zero value is
// ready to use.
type Publisher struct {
	observers []Observer
	attached  mapset.Set[Observer]
}

// Attach appends an observer. Attaching the same observer twice is a no-op.
// Observers are identified by interface equality, so their dynamic type
// must be comparable (a pointer or a comparable struct); a func or map
// observer panics.
func (p *Publisher) Attach(o Observer) {
	if p.observers == nil {
		p.attached = mapset.New[Observer]()
	}
	if p.attached.Has(o) {
		return
	}
	p.attached.Put(o)
	p.observers = append(p.observers, o)
}

// Detach removes an observer; absent observers are ignored
func (p *Publisher) Detach(o Observer) {
	if p.observers == nil || !p.attached.Has(o) {
		return
	}
	p.attached.Remove(o)
	for i, existing := range p.observers {
		if existing == o {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the attached observers in attachment order
func (p *Publisher) Observers() []Observer {
	out := make([]Observer, len(p.observers))
	copy(out, p.observers)
	return out
}

// publish notifies a snapshot of the observer list in attachment order.
// Observers detached earlier in the same pass are skipped.
func (p *Publisher) publish(s Subject) {
	for _, o := range p.Observers() {
		if !p.attached.Has(o) {
			continue
		}
		o.Update(s)
	}
}
