package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one top-level move search.
type SearchMetric struct {
	DepthLimit    int
	ProbThreshold float64
	CacheLimit    int
	Duration      time.Duration
	Tasks         int
	FailedTasks   int
	MoveNodes     int64
	ChanceNodes   int64
	Cutoffs       int64
	CacheLookups  int64
	CacheHits     int64
}

// TaskStats are the counters one root task gathers without synchronisation.
type TaskStats struct {
	MoveNodes    int64
	ChanceNodes  int64
	Cutoffs      int64
	CacheLookups int64
	CacheHits    int64
}

type MoveMetric struct {
	Step      int
	Direction string
	Moved     bool
	Score     int
	SearchMetric
}

type GameMetric struct {
	Agent          string
	Seed           uint64
	Score          int
	MaxTile        int
	Moves          int
	FoursSpawned   int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	MovesPerSecond float64
}

// Collector gathers search statistics. Start and Complete are called by the
// searching goroutine; AddTask and AddFailure may be called concurrently.
type Collector interface {
	Start(depthLimit int, probThreshold float64, cacheLimit int)
	AddTask(stats TaskStats)
	AddFailure()
	Complete() SearchMetric
}

type collector struct {
	depthLimit    int
	probThreshold float64
	cacheLimit    int
	startTime     time.Time
	tasks         atomic.Int32
	failedTasks   atomic.Int32
	moveNodes     atomic.Int64
	chanceNodes   atomic.Int64
	cutoffs       atomic.Int64
	cacheLookups  atomic.Int64
	cacheHits     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depthLimit int, probThreshold float64, cacheLimit int) {
	m.startTime = time.Now()
	m.depthLimit = depthLimit
	m.probThreshold = probThreshold
	m.cacheLimit = cacheLimit
}

func (m *collector) AddTask(stats TaskStats) {
	m.tasks.Add(1)
	m.moveNodes.Add(stats.MoveNodes)
	m.chanceNodes.Add(stats.ChanceNodes)
	m.cutoffs.Add(stats.Cutoffs)
	m.cacheLookups.Add(stats.CacheLookups)
	m.cacheHits.Add(stats.CacheHits)
}

func (m *collector) AddFailure() {
	m.failedTasks.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		DepthLimit:    m.depthLimit,
		ProbThreshold: m.probThreshold,
		CacheLimit:    m.cacheLimit,
		Duration:      time.Since(m.startTime),
		Tasks:         int(m.tasks.Load()),
		FailedTasks:   int(m.failedTasks.Load()),
		MoveNodes:     m.moveNodes.Load(),
		ChanceNodes:   m.chanceNodes.Load(),
		Cutoffs:       m.cutoffs.Load(),
		CacheLookups:  m.cacheLookups.Load(),
		CacheHits:     m.cacheHits.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depthLimit int, probThreshold float64, cacheLimit int) {}
func (m *dummyCollector) AddTask(stats TaskStats)                                    {}
func (m *dummyCollector) AddFailure()                                                {}
func (m *dummyCollector) Complete() SearchMetric                                     { return SearchMetric{} }
