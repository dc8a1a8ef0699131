package searcher

import (
	"sync/atomic"
	"time"
)

type MoveMetrics struct {
	StartTime      time.Time
	Duration       time.Duration
	Episodes       int64
	TerminalLeaves int64 // Episodes whose selected leaf ended the game
	TreeReused     bool
	TreeSize       int // Nodes reachable from the root after the move
	RootVisits     int
}

type MetricsCollector interface {
	Start()
	AddEpisode()
	AddTerminalLeaf()
	ReusedTree()
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime      time.Time
	episodes       atomic.Int64
	terminalLeaves atomic.Int64
	treeReused     atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.terminalLeaves.Store(0)
	m.treeReused.Store(false)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddTerminalLeaf() {
	m.terminalLeaves.Add(1)
}

func (m *metricsCollector) ReusedTree() {
	m.treeReused.Store(true)
}

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime:      m.startTime,
		Duration:       time.Since(m.startTime),
		Episodes:       m.episodes.Load(),
		TerminalLeaves: m.terminalLeaves.Load(),
		TreeReused:     m.treeReused.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                {}
func (m *noMetricsCollector) AddEpisode()           {}
func (m *noMetricsCollector) AddTerminalLeaf()      {}
func (m *noMetricsCollector) ReusedTree()           {}
func (m *noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }
