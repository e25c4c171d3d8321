package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-march/common"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	FPS         float64
	FrameTime   time.Duration
	HeapMB      float64
	AllocRateMB float64
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// LogValue renders the stats as a slog group.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("fps", s.FPS),
		slog.Duration("frame_time", s.FrameTime),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb_s", s.AllocRateMB),
		slog.Any("gc", s.NumGC),
		slog.Any("gc_last_pause_us", s.LastPauseUs),
		slog.Any("gc_max_pause_us", s.MaxPauseUs),
		slog.Float64("sys_mb", s.SysMB),
	)
}

// Profiler tracks frame rate and memory statistics and logs them once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now func() time.Time
}

// NewProfiler creates a new Profiler reporting every interval. Values <= 0 use one second.
//
// Parameters:
//   - interval: how often stats are computed and logged
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// Tick should be called once per presented frame.
// When the interval has elapsed it computes FPS, heap usage, allocation rate and GC pauses,
// logs them at info level and resets the window.
//
// Returns:
//   - bool: true if stats were computed this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		FrameTime: elapsed / time.Duration(p.frameCount),
		HeapMB:    float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:     float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:     p.memStats.NumGC,
	}
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	common.Logger().Info("profiler", "stats", s)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats from the most recent completed interval.
func (p *Profiler) Last() Stats {
	return p.last
}
