package docmodel

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/reoring/docmodel/codec"
)

// DefaultTimeLayout renders UTC timestamps with millisecond precision, e.g.
// 2025-01-02T03:04:05.006Z.
const DefaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// TimeMode selects how SetTime stores a timestamp.
type TimeMode int

const (
	TimeNative TimeMode = iota // time.Time value
	TimeString                 // string formatted with Settings.TimeLayout
	TimeUnix                   // int64 seconds since Settings.Epoch
)

func (m TimeMode) String() string {
	switch m {
	case TimeString:
		return "string"
	case TimeUnix:
		return "unix"
	default:
		return "native"
	}
}

// UnmarshalText lets TimeMode be read from configuration.
func (m *TimeMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "native", "":
		*m = TimeNative
	case "string":
		*m = TimeString
	case "unix":
		*m = TimeUnix
	default:
		return fmt.Errorf("unknown time mode %q", b)
	}
	return nil
}

// EnumMode selects how SetEnum stores an enumerated tag.
type EnumMode int

const (
	EnumNative  EnumMode = iota // Enum value
	EnumString                  // member name
	EnumInteger                 // member ordinal as int32
)

func (m EnumMode) String() string {
	switch m {
	case EnumString:
		return "string"
	case EnumInteger:
		return "integer"
	default:
		return "native"
	}
}

// UnmarshalText lets EnumMode be read from configuration.
func (m *EnumMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "native", "":
		*m = EnumNative
	case "string":
		*m = EnumString
	case "integer":
		*m = EnumInteger
	default:
		return fmt.Errorf("unknown enum mode %q", b)
	}
	return nil
}

// Settings holds the coercion defaults. Construct it once at startup and hand
// it to New via WithSettings; documents only read it.
type Settings struct {
	TimeLayout string    `env:"DOCMODEL_TIME_LAYOUT" envDefault:"2006-01-02T15:04:05.000Z07:00"`
	TimeMode   TimeMode  `env:"DOCMODEL_TIME_MODE" envDefault:"native"`
	EnumMode   EnumMode  `env:"DOCMODEL_ENUM_MODE" envDefault:"native"`
	Epoch      time.Time `env:"DOCMODEL_EPOCH" envDefault:"1970-01-01T00:00:00Z"`
}

// ErrParsingSettings is returned when the environment holds invalid values.
var ErrParsingSettings = errors.New("docmodel: failed to parse settings from environment")

var defaultSettings = DefaultSettings()

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		TimeLayout: DefaultTimeLayout,
		TimeMode:   TimeNative,
		EnumMode:   EnumNative,
		Epoch:      time.Unix(0, 0).UTC(),
	}
}

// LoadSettings reads settings from the environment. Any envFiles are loaded
// first with godotenv; variables already set in the process win.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, errors.Join(ErrParsingSettings, err)
	}
	return s, nil
}

func (s *Settings) orDefault() *Settings {
	if s == nil {
		return defaultSettings
	}
	return s
}

func (s *Settings) timeString() codec.Codec[string, time.Time] {
	return codec.TimeString(s.orDefault().TimeLayout)
}

func (s *Settings) timeUnix() codec.Codec[int64, time.Time] {
	return codec.TimeUnix(s.orDefault().Epoch)
}

func (s *Settings) formatTime(t time.Time) string {
	out, _ := s.timeString().Encode(t)
	return out
}
