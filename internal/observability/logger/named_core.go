package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// namedLevelCore lets entries below the base level through when the logger
// name matches one of the debug prefixes. A prefix matches the name itself or
// any dotted child, so "sales" covers "sales.service".
type namedLevelCore struct {
	zapcore.Core
	base     zapcore.Level
	prefixes []string
}

func NewNamedLevelCore(core zapcore.Core, base zapcore.Level, prefixes []string) zapcore.Core {
	return &namedLevelCore{Core: core, base: base, prefixes: prefixes}
}

func (c *namedLevelCore) Enabled(lvl zapcore.Level) bool {
	return c.Core.Enabled(lvl)
}

func (c *namedLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return &namedLevelCore{Core: c.Core.With(fields), base: c.base, prefixes: c.prefixes}
}

func (c *namedLevelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level < c.base && !c.debugFor(ent.LoggerName) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

func (c *namedLevelCore) debugFor(name string) bool {
	for _, prefix := range c.prefixes {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			return true
		}
	}
	return false
}
