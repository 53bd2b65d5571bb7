package nonrigid

import (
	"log"
	"sort"
	"sync"
	"time"
)

// Observer is notified around expensive sections of a registration run.
type Observer interface {
	Start(section string)
	Stop(section string)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) Start(string) {}
func (NopObserver) Stop(string)  {}

// sectionStats accumulates the timings of one named section.
type sectionStats struct {
	calls   int
	total   time.Duration
	started time.Time
}

// Profiler records wall clock time per section.
type Profiler struct {
	mu       sync.Mutex
	now      func() time.Time
	sections map[string]*sectionStats
	order    []string
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{
		now:      time.Now,
		sections: make(map[string]*sectionStats),
	}
}

func (p *Profiler) section(name string) *sectionStats {
	s, ok := p.sections[name]
	if !ok {
		s = &sectionStats{}
		p.sections[name] = s
		p.order = append(p.order, name)
	}
	return s
}

// Start marks the beginning of a section.
func (p *Profiler) Start(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.section(name).started = p.now()
}

// Stop adds the time elapsed since the matching Start. A Stop without Start is ignored.
func (p *Profiler) Stop(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.section(name)
	if s.started.IsZero() {
		return
	}
	s.total += p.now().Sub(s.started)
	s.calls++
	s.started = time.Time{}
}

// SectionTiming is the accumulated time of one section.
type SectionTiming struct {
	Name  string
	Calls int
	Total time.Duration
}

// Timings returns the sections in order of first use.
func (p *Profiler) Timings() []SectionTiming {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SectionTiming, 0, len(p.order))
	for _, name := range p.order {
		s := p.sections[name]
		out = append(out, SectionTiming{Name: name, Calls: s.calls, Total: s.total})
	}
	return out
}

// LogSummary writes one line per section, slowest first.
func (p *Profiler) LogSummary() {
	timings := p.Timings()
	sort.SliceStable(timings, func(i, j int) bool { return timings[i].Total > timings[j].Total })
	log.Println("Profiling summary:")
	for _, t := range timings {
		log.Printf("  %-28s %6d calls %12.3f s", t.Name, t.Calls, t.Total.Seconds())
	}
}
