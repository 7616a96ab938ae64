package logging

import (
	"log/slog"
	"strings"
)

// LevelFromString parses "DEBUG", "INFO", "WARN" or "ERROR" (any case, with
// an optional offset like "INFO+2"). Missing or unknown values give INFO.
func LevelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(*str))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func FormatFromString(str *string) LogAttrFormat {
	if str != nil && strings.EqualFold(*str, string(LogAttrFormatText)) {
		return LogAttrFormatText
	}
	return LogAttrFormatJSON
}
