package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newSampledCore samples each below-error level with its own budget from
// cfg.Levels. Levels without a budget, and Error and above, pass through.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled {
		return core
	}

	sampled := make(map[zapcore.Level]bool, len(cfg.Levels))
	cores := make([]zapcore.Core, 0, len(cfg.Levels)+1)

	for lvl, budget := range cfg.Levels {
		if lvl >= zapcore.ErrorLevel {
			continue
		}
		sampled[lvl] = true
		exact := lvl
		cores = append(cores, zapcore.NewSamplerWithOptions(
			&levelFilterCore{
				Core:   core,
				accept: zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == exact }),
			},
			cfg.Tick.Duration(),
			budget.Initial,
			budget.Thereafter,
		))
	}

	cores = append(cores, &levelFilterCore{
		Core:   core,
		accept: zap.LevelEnablerFunc(func(l zapcore.Level) bool { return !sampled[l] }),
	})

	return zapcore.NewTee(cores...)
}

// levelFilterCore passes through only the levels accept allows.
type levelFilterCore struct {
	zapcore.Core
	accept zapcore.LevelEnabler
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return c.accept.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), accept: c.accept}
}

func (c *levelFilterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}
