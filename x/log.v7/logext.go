package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Ilog 是 SDK 内部使用的日志接口，调用方可以通过 SetLogger 替换为自己的实现
type Ilog interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

const (
	Ldebug = iota
	Linfo
	Lwarn
	Lerror
	Lpanic
	Lfatal
)

const (
	Lshortfile = stdlog.Lshortfile
	LstdFlags  = stdlog.LstdFlags | stdlog.Lmicroseconds
)

const timeFormat = "2006/01/02 15:04:05.000000"

// timestampHook 以纳秒精度写入时间，不依赖全局的 zerolog.TimeFieldFormat
type timestampHook struct{}

func (timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(time.RFC3339Nano))
}

type Logger struct {
	Level int

	prefix string
	flags  int
	zl     zerolog.Logger
}

// New 创建一个写入 out 的 Logger，默认级别为 Linfo
func New(out io.Writer, prefix string, flags int) *Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: timeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}
	ctx := zerolog.New(w).Hook(timestampHook{}).With()
	if prefix != "" {
		ctx = ctx.Str("prefix", prefix)
	}
	if flags&Lshortfile != 0 {
		ctx = ctx.CallerWithSkipFrameCount(4)
	}
	return &Logger{Level: Linfo, prefix: prefix, flags: flags, zl: ctx.Logger()}
}

func (l *Logger) Prefix() string {
	return l.prefix
}

func (l *Logger) Flags() int {
	return l.flags
}

func (l *Logger) SetOutputLevel(level int) {
	l.Level = level
}

func (l *Logger) output(level int, msg string) {
	if level < l.Level {
		return
	}
	var e *zerolog.Event
	switch level {
	case Ldebug:
		e = l.zl.Debug()
	case Linfo:
		e = l.zl.Info()
	case Lwarn:
		e = l.zl.Warn()
	case Lerror:
		e = l.zl.Error()
	case Lpanic:
		e = l.zl.WithLevel(zerolog.PanicLevel)
	default:
		e = l.zl.WithLevel(zerolog.FatalLevel)
	}
	e.Msg(msg)
}

func sprintln(v ...interface{}) string {
	s := fmt.Sprintln(v...)
	return s[:len(s)-1]
}

func (l *Logger) Debug(v ...interface{}) { l.output(Ldebug, sprintln(v...)) }

func (l *Logger) Debugf(format string, v ...interface{}) { l.output(Ldebug, fmt.Sprintf(format, v...)) }

func (l *Logger) Info(v ...interface{}) { l.output(Linfo, sprintln(v...)) }

func (l *Logger) Infof(format string, v ...interface{}) { l.output(Linfo, fmt.Sprintf(format, v...)) }

func (l *Logger) Warn(v ...interface{}) { l.output(Lwarn, sprintln(v...)) }

func (l *Logger) Warnf(format string, v ...interface{}) { l.output(Lwarn, fmt.Sprintf(format, v...)) }

func (l *Logger) Error(v ...interface{}) { l.output(Lerror, sprintln(v...)) }

func (l *Logger) Errorf(format string, v ...interface{}) { l.output(Lerror, fmt.Sprintf(format, v...)) }

func (l *Logger) Fatal(v ...interface{}) {
	l.output(Lfatal, sprintln(v...))
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(Lfatal, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// --------------------------------------------------------------------

var Std = New(os.Stderr, "", LstdFlags)

func SetOutputLevel(level int) { Std.SetOutputLevel(level) }

// ParseLevel 将 debug/info/warn/error 转换为日志级别，未知值返回 Linfo
func ParseLevel(s string) int {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return Linfo
	}
	switch lvl {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return Ldebug
	case zerolog.WarnLevel:
		return Lwarn
	case zerolog.ErrorLevel:
		return Lerror
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return Lfatal
	}
	return Linfo
}

func Debug(v ...interface{})                 { Std.output(Ldebug, sprintln(v...)) }
func Debugf(format string, v ...interface{}) { Std.output(Ldebug, fmt.Sprintf(format, v...)) }
func Info(v ...interface{})                  { Std.output(Linfo, sprintln(v...)) }
func Infof(format string, v ...interface{})  { Std.output(Linfo, fmt.Sprintf(format, v...)) }
func Warn(v ...interface{})                  { Std.output(Lwarn, sprintln(v...)) }
func Warnf(format string, v ...interface{})  { Std.output(Lwarn, fmt.Sprintf(format, v...)) }
func Error(v ...interface{})                 { Std.output(Lerror, sprintln(v...)) }
func Errorf(format string, v ...interface{}) { Std.output(Lerror, fmt.Sprintf(format, v...)) }
