package debug

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type debug struct {
	Wire     bool
	Assemble bool
	Mutate   bool
	Collect  bool
	Select   bool
}

var (
	d *debug

	mu  sync.RWMutex
	log *zap.SugaredLogger
)

func init() {
	d = &debug{}
	d.Wire = boolEnv("DAWM_DEBUG_WIRE")
	d.Assemble = boolEnv("DAWM_DEBUG_ASSEMBLE")
	d.Mutate = boolEnv("DAWM_DEBUG_MUTATE")
	d.Collect = boolEnv("DAWM_DEBUG_COLLECT")
	d.Select = boolEnv("DAWM_DEBUG_SELECT")
	log = newLogger().Sugar()
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func newLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("dawm")
}

func Wire() bool {
	return d.Wire
}
func Assemble() bool {
	return d.Assemble
}
func Mutate() bool {
	return d.Mutate
}
func Collect() bool {
	return d.Collect
}
func Select() bool {
	return d.Select
}

// Logger returns the logger debug output is written to.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.Desugar()
}

// SetLogger replaces the debug logger; a nil logger discards output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	log = l.Sugar()
}

func Logf(msg string, args ...any) {
	mu.RLock()
	l := log
	mu.RUnlock()
	l.Debugf(strings.TrimSuffix(msg, "\n"), args...)
}

// LogAny logs v as JSON, falling back to %v when it does not marshal.
func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		Logf("%v", v)
		return
	}
	Logf("%s", d)
}
