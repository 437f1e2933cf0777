package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New membangun root logger aplikasi. Level diambil dari konfigurasi
// (debug/info/warn/error), default info jika tidak dikenali.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
