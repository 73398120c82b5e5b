package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

// ConsoleHandler is a slog.Handler that prints one colored line per record.
type ConsoleHandler struct {
	l     *log.Logger
	level slog.Level
	attrs []slog.Attr
	// group is the dotted prefix for keys of attrs added later.
	group string
}

func NewConsoleHandler(out io.Writer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{
		l:     log.New(out, "", 0),
		level: level,
	}
}

// New builds a logger for the named level and installs it as the slog default.
func New(out io.Writer, levelName string) *slog.Logger {
	l := slog.New(NewConsoleHandler(out, ParseLevel(levelName)))
	slog.SetDefault(l)
	return l
}

func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.HiBlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	var b strings.Builder
	for _, a := range c.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, qualify(c.group, a))
		return true
	})

	c.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		strings.TrimSpace(b.String()),
	)
	return nil
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			writeAttr(b, qualify(a.Key, member))
		}
		return
	}
	if a.Key == "" {
		return
	}
	b.WriteString(color.GreenString(a.Key))
	b.WriteByte('=')
	b.WriteString(fmt.Sprint(a.Value.Any()))
	b.WriteByte(' ')
}

func qualify(group string, a slog.Attr) slog.Attr {
	if group != "" && a.Key != "" {
		a.Key = group + "." + a.Key
	}
	return a
}

func (c *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	for _, a := range attrs {
		merged = append(merged, qualify(c.group, a))
	}
	return &ConsoleHandler{l: c.l, level: c.level, attrs: merged, group: c.group}
}

func (c *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	group := name
	if c.group != "" {
		group = c.group + "." + name
	}
	return &ConsoleHandler{l: c.l, level: c.level, attrs: c.attrs, group: group}
}

func (c *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}
