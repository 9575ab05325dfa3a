package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultHeroInterval = 5 * time.Second

// every is a fixed-interval schedule. cron's own @every rounds up to whole
// seconds, which the hero does not need.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Carousel is the hero background slider. Auto-advance runs as a scheduled
// job owned by the carousel; manual moves shift the position but leave the
// cadence alone. After Stop nothing moves and onChange is never called.
type Carousel struct {
	mu       sync.Mutex
	index    int
	count    int
	stopped  bool
	sched    *cron.Cron
	onChange func(int)
}

func NewCarousel(count int, interval time.Duration, onChange func(int)) *Carousel {
	if interval <= 0 {
		interval = DefaultHeroInterval
	}
	c := &Carousel{
		count:    count,
		onChange: onChange,
		sched:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	c.sched.Schedule(every(interval), cron.FuncJob(c.tick))
	return c
}

// Start begins auto-advance. It never blocks.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.count < 2 {
		return
	}
	c.sched.Start()
}

// Stop cancels the scheduled job and waits for a running tick to finish.
func (c *Carousel) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()
	<-c.sched.Stop().Done()
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Count() int {
	return c.count
}

func (c *Carousel) tick() {
	c.move(func(i int) int { return (i + 1) % c.count })
}

func (c *Carousel) Next() {
	c.move(func(i int) int { return (i + 1) % c.count })
}

func (c *Carousel) Prev() {
	c.move(func(i int) int { return (i - 1 + c.count) % c.count })
}

// GoTo jumps straight to slide i (dot indicators).
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= c.count {
		return fmt.Errorf("slide %d out of range [0,%d)", i, c.count)
	}
	c.move(func(int) int { return i })
	return nil
}

func (c *Carousel) move(step func(int) int) {
	c.mu.Lock()
	if c.stopped || c.count == 0 {
		c.mu.Unlock()
		return
	}
	c.index = step(c.index)
	idx := c.index
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(idx)
	}
}
