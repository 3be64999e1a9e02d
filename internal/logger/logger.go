// Package logger provides a process-wide, per-area leveled logger.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/YouDevIt/itl/internal/config"
)

// Level is one of the five severities a log line can carry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (lv Level) String() string {
	if lv < 0 || int(lv) >= len(levelNames) {
		return "?"
	}
	return levelNames[lv]
}

// Area groups log lines by the engine subsystem that produced them.
type Area string

const (
	AreaSplitter   Area = "splitter"
	AreaEvaluator  Area = "evaluator"
	AreaExecutor   Area = "executor"
	AreaDriver     Area = "driver"
	AreaForwardRef Area = "forwardref"
	AreaHost       Area = "host"
	AreaREPL       Area = "repl"
	AreaConfig     Area = "config"
)

var allAreas = [...]Area{
	AreaSplitter, AreaEvaluator, AreaExecutor, AreaDriver,
	AreaForwardRef, AreaHost, AreaREPL, AreaConfig,
}

// gate is the atomic enable/level/area check a log call makes before any
// string formatting happens: with logging disabled a call costs one int32
// load, and a call the gate rejects never formats its message.
type gate struct {
	enabled int32
	level   int32
	areas   map[Area]*int32
}

func newGate() *gate {
	g := &gate{areas: make(map[Area]*int32, len(allAreas))}
	for _, a := range allAreas {
		g.areas[a] = new(int32)
	}
	return g
}

func (g *gate) configure() {
	atomic.StoreInt32(&g.enabled, boolToInt32(config.GetBool("Debug", "enable_debug_logging", false)))
	atomic.StoreInt32(&g.level, int32(parseLevel(config.GetString("Debug", "log_level", "INFO"))))
	for area, flag := range g.areas {
		atomic.StoreInt32(flag, boolToInt32(config.GetBool("Debug", "log_"+string(area), false)))
	}
}

func (g *gate) pass(lv Level, a Area) bool {
	if atomic.LoadInt32(&g.enabled) == 0 {
		return false
	}
	if Level(atomic.LoadInt32(&g.level)) > lv {
		return false
	}
	flag, ok := g.areas[a]
	return ok && atomic.LoadInt32(flag) != 0
}

// sink owns the rotating log file. Kept separate from gate so a call
// that the gate rejects never touches the filesystem.
type sink struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	maxBytes int64
	backups  int
	size     int64
}

func newSink() *sink {
	return &sink{
		path:     config.GetString("Debug", "log_file", "itl-debug.log"),
		maxBytes: int64(config.GetInt("Debug", "max_log_size_mb", 10)) * 1024 * 1024,
		backups:  config.GetInt("Debug", "log_rotation_count", 3),
	}
}

func (s *sink) open() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	s.file = f
	if st, err := f.Stat(); err == nil {
		s.size = st.Size()
	}
	return nil
}

// rotate renames path, path.1, ... path.(backups-1) up by one slot,
// dropping the oldest, then opens a fresh empty file at path.
func (s *sink) rotate() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	for i := s.backups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", s.path, i)
		to := fmt.Sprintf("%s.%d", s.path, i+1)
		if i == s.backups-1 {
			os.Remove(to)
		}
		os.Rename(from, to)
	}
	os.Rename(s.path, s.path+".1")
	if f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644); err == nil {
		s.file = f
		s.size = 0
	}
}

func (s *sink) write(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return
	}
	n, err := s.file.WriteString(entry)
	if err != nil {
		return
	}
	s.size += int64(n)
	if s.size > s.maxBytes {
		s.rotate()
	}
}

func (s *sink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
}

// Logger is the process-wide structured logger: a gate deciding whether
// a call is live, and a sink persisting the ones that are.
type Logger struct {
	gate *gate
	sink *sink
}

var (
	global   *Logger
	initOnce sync.Once
)

// Initialize sets up the global logger from internal/config.
func Initialize() error {
	var err error
	initOnce.Do(func() { global, err = newLogger() })
	return err
}

func newLogger() (*Logger, error) {
	l := &Logger{gate: newGate(), sink: newSink()}
	l.gate.configure()
	if err := l.sink.open(); err != nil {
		return nil, err
	}
	return l, nil
}

// Tag scopes every call to one instance identifier, so callers stop
// hand-formatting an id into every log line. Several engine.Engine
// values can run in one process (spec.md §9's "Global state" note); a
// Tag is how their log lines are told apart in the shared stream, the
// way the teacher's logger tags a websocket session.
type Tag struct {
	l    *Logger
	name string
}

// For returns l's view scoped to instance id. Safe on a nil *Logger
// (e.g. before Initialize runs): every call on the returned Tag except
// Fatal is then a silent no-op instead of a filesystem write; Fatal
// still prints and terminates the process.
func (l *Logger) For(id string) Tag { return Tag{l: l, name: id} }

// For scopes the global logger to instance id.
func For(id string) Tag { return Tag{l: global, name: id} }

func (t Tag) log(lv Level, area Area, format string, args ...interface{}) {
	if t.l == nil || !t.l.gate.pass(lv, area) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	_, file, line, _ := runtime.Caller(2)
	entry := fmt.Sprintf("[%s] %s [%s:%d] [%s/%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		lv, filepath.Base(file), line, t.name, strings.ToUpper(string(area)), msg)
	t.l.sink.write(entry)
	if lv >= WARN {
		log.Printf("[%s] [%s/%s] %s", lv, t.name, strings.ToUpper(string(area)), msg)
	}
}

func (t Tag) Debug(area Area, format string, args ...interface{}) { t.log(DEBUG, area, format, args...) }
func (t Tag) Info(area Area, format string, args ...interface{})  { t.log(INFO, area, format, args...) }
func (t Tag) Warn(area Area, format string, args ...interface{})  { t.log(WARN, area, format, args...) }
func (t Tag) Error(area Area, format string, args ...interface{}) { t.log(ERROR, area, format, args...) }

// Fatal logs at FATAL unconditionally (gate state does not apply to a
// fatal line) and then terminates the process.
func (t Tag) Fatal(area Area, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if t.l != nil {
		t.l.sink.write(fmt.Sprintf("[%s] FATAL [%s/%s] %s\n",
			time.Now().Format("2006-01-02 15:04:05.000"), t.name, strings.ToUpper(string(area)), msg))
	}
	log.Fatalf("[FATAL] [%s/%s] %s", t.name, strings.ToUpper(string(area)), msg)
}

// Debug, Info, Warn, Error, and Fatal log against the global logger with
// no instance tag, for call sites (the host, the REPL, config loading)
// that run outside any one engine.Engine.
func Debug(area Area, format string, args ...interface{}) { For("").Debug(area, format, args...) }
func Info(area Area, format string, args ...interface{})  { For("").Info(area, format, args...) }
func Warn(area Area, format string, args ...interface{})  { For("").Warn(area, format, args...) }
func Error(area Area, format string, args ...interface{}) { For("").Error(area, format, args...) }
func Fatal(area Area, format string, args ...interface{}) { For("").Fatal(area, format, args...) }

// Close flushes and closes the global logger's file. Safe to call when
// Initialize was never invoked.
func Close() {
	if global != nil {
		global.sink.close()
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}
