package pacing

import (
	"math/rand"
	"time"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/logger"
)

// Rand is the source of randomness behind every drawn pause and scroll
type Rand interface {
	// IntN returns a random int in [0, n)
	IntN(n int) int
	// Float64 returns a random float64 in [0, 1)
	Float64() float64
}

// systemRand delegates to the shared math/rand source
type systemRand struct{}

func (systemRand) IntN(n int) int   { return rand.Intn(n) }
func (systemRand) Float64() float64 { return rand.Float64() }

// Target is the surface the pacer runs its scroll scripts against
type Target interface {
	Eval(script string, args ...interface{}) error
}

// Gesture tuning. These are fixed properties of the simulated reader,
// not run configuration.
const (
	minScrollPixels = 300
	maxScrollPixels = 1200

	stepPauseMin = 0.8
	stepPauseMax = 1.6

	topPauseMin = 0.5
	topPauseMax = 1.0
)

const (
	scrollByScript  = `(px) => window.scrollBy({ top: px, behavior: "smooth" })`
	scrollTopScript = `() => window.scrollTo(0, 0)`
)

// Pacer simulates a human reader: randomized pauses and a stepped
// scroll through the page followed by a return to the top
type Pacer struct {
	rng   Rand
	sleep func(time.Duration)
	log   logger.Logger
}

// New creates a Pacer backed by the system randomness source
func New() *Pacer {
	return &Pacer{
		rng:   systemRand{},
		sleep: time.Sleep,
		log:   logger.GetLogger(),
	}
}

// SetRand replaces the randomness source
func (p *Pacer) SetRand(rng Rand) {
	p.rng = rng
}

// SetSleep replaces the sleep function
func (p *Pacer) SetSleep(sleep func(time.Duration)) {
	p.sleep = sleep
}

// SetLogger replaces the logger
func (p *Pacer) SetLogger(log logger.Logger) {
	p.log = log
}

// Settle sleeps for a uniform random duration in [min, max] seconds
func (p *Pacer) Settle(min, max float64) {
	p.sleep(p.uniform(min, max))
}

// Scroll performs the reading gesture on the target page: a random
// number of scroll steps in [minSteps, maxSteps], each moving a random
// pixel delta with a pause after it, then one scroll back to the top
// with a final pause. Zero steps skips the downward scrolling but still
// returns to the top. The first failed script aborts the gesture.
func (p *Pacer) Scroll(t Target, minSteps, maxSteps int) error {
	if minSteps < 0 || maxSteps < minSteps {
		return errors.Newf(errors.KindConfig, "invalid scroll step range [%d, %d]", minSteps, maxSteps)
	}

	steps := p.intBetween(minSteps, maxSteps)
	p.log.DebugWithFields("Scrolling page", map[string]interface{}{
		"steps": steps,
	})

	for i := 0; i < steps; i++ {
		pixels := p.intBetween(minScrollPixels, maxScrollPixels)
		if err := t.Eval(scrollByScript, pixels); err != nil {
			return errors.Wrapf(errors.KindEval, err, "scroll step %d of %d", i+1, steps)
		}
		p.sleep(p.uniform(stepPauseMin, stepPauseMax))
	}

	if err := t.Eval(scrollTopScript); err != nil {
		return errors.Wrap(errors.KindEval, "scroll back to top", err)
	}
	p.sleep(p.uniform(topPauseMin, topPauseMax))

	return nil
}

// uniform draws a duration uniformly from [min, max] seconds
func (p *Pacer) uniform(min, max float64) time.Duration {
	seconds := min + p.rng.Float64()*(max-min)
	return time.Duration(seconds * float64(time.Second))
}

// intBetween draws an integer uniformly from the inclusive [min, max]
func (p *Pacer) intBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + p.rng.IntN(max-min+1)
}
